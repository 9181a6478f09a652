package nrf24l01

// Configuration for Intel Edison in 64-bit mode with the radio on the
// breakout board's SPI header.

const (
	spiDevice = "/dev/spidev5.1"
	spiSpeed  = 8000000 // Hz
	csnPin    = 110
	cePin     = 14
)
