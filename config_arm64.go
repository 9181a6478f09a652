package nrf24l01

// Configuration for Raspberry Pi with the radio on SPI0.

const (
	spiDevice = "/dev/spidev0.0"
	spiSpeed  = 8000000 // Hz
	csnPin    = 8
	cePin     = 25
)
