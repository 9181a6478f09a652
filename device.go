package nrf24l01

import (
	"io"
	"log"

	"github.com/ecc1/gpio"
	"github.com/ecc1/radio"
	"github.com/ecc1/spi"
)

const (
	verbose    = false
	verboseSPI = false
)

func init() {
	if verbose || verboseSPI {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.LUTC)
	}
}

// Open opens the radio on the SPI device and GPIO pins configured for this
// platform (see config_*.go) and returns a driver for it. The chip is not
// configured yet; call Configure before use.
func Open(channel, payloadSize byte) (*Radio, error) {
	dev, err := spi.Open(spiDevice, spiSpeed, 0)
	if err != nil {
		return nil, busErr("open "+spiDevice, err)
	}
	csn, err := gpio.Output(csnPin, false, true)
	if err != nil {
		_ = dev.Close()
		return nil, gpioErr("CSN", err)
	}
	ce, err := gpio.Output(cePin, false, false)
	if err != nil {
		_ = dev.Close()
		return nil, gpioErr("CE", err)
	}
	return New(dev, csn, ce, channel, payloadSize)
}

// Close closes the underlying bus, if it supports closing.
func (r *Radio) Close() error {
	if c, ok := r.bus.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Name returns the radio's name.
func (r *Radio) Name() string {
	return "nRF24L01"
}

// Device returns the pathname of the radio's SPI device.
func (r *Radio) Device() string {
	return spiDevice
}

// Statistics returns the byte and packet counts for the radio device.
func (r *Radio) Statistics() radio.Statistics {
	return r.stats
}

// Hardware returns the radio's hardware information.
func (r *Radio) Hardware() *radio.Hardware {
	panic("unimplemented")
}
