// Package nrf24l01 drives a Nordic nRF24L01(+) 2.4GHz transceiver attached
// over SPI, with dedicated chip-select (CSN, active low) and chip-enable
// (CE, active high) lines owned by the driver.
package nrf24l01

import (
	"log"
	"time"

	"github.com/ecc1/radio"
)

// Bus is the SPI transport used to reach the chip. *spi.Device from
// github.com/ecc1/spi satisfies it. The bus must capture data on the first
// clock edge with idle-low clock polarity (SPI mode 0).
type Bus interface {
	// Write sends data to the chip, discarding anything clocked back.
	Write(data []byte) error
	// Transfer sends data and overwrites it in place with the bytes
	// clocked back.
	Transfer(data []byte) error
}

// OutputPin is a digital output line. gpio.OutputPin from
// github.com/ecc1/gpio satisfies it.
type OutputPin interface {
	Write(value bool) error
}

// Radio represents an nRF24L01 transceiver. It owns its bus and pins
// exclusively; all methods are synchronous and must be called from a
// single goroutine.
type Radio struct {
	bus Bus
	csn OutputPin
	ce  OutputPin

	channel     byte // RF channel, 0-125
	payloadSize byte // fixed payload width; 0 selects dynamic payloads

	// transmitting is true from the start of a transmission until its
	// completion status (TX_DS or MAX_RT) has been observed.
	transmitting bool

	stats radio.Statistics
}

// New returns a driver for a radio reachable through the given bus and
// pins. It drives CE low and CSN high (both idle) but does not touch the
// chip's registers; call Configure before use. payloadSize is the fixed
// payload width in bytes, or 0 to use the chip's dynamic payload length
// feature.
func New(bus Bus, csn, ce OutputPin, channel, payloadSize byte) (*Radio, error) {
	r := &Radio{
		bus:         bus,
		csn:         csn,
		ce:          ce,
		channel:     channel,
		payloadSize: payloadSize,
	}
	if err := r.ceLow(); err != nil {
		return nil, err
	}
	if err := r.csnHigh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Free consumes the driver and returns ownership of the bus and the CSN
// and CE pins to the caller.
func (r *Radio) Free() (Bus, OutputPin, OutputPin) {
	return r.bus, r.csn, r.ce
}

// Configure performs first-time radio setup: channel, payload width mode,
// power-up into receive mode, and an RX FIFO flush. It is idempotent and
// must also be called again after PowerDown.
func (r *Radio) Configure() error {
	if verbose {
		log.Printf("configure: channel %d, payload size %d", r.channel, r.payloadSize)
	}
	if err := r.writeRegister(RF_CH, r.channel); err != nil {
		return err
	}
	if r.dynamicPayload() {
		if err := r.writeRegister(FEATURE, 1<<EN_DPL); err != nil {
			return err
		}
		if err := r.writeRegister(DYNPD, 1<<DPL_P0|1<<DPL_P1); err != nil {
			return err
		}
	} else {
		if err := r.writeRegister(RX_PW_P0, r.payloadSize); err != nil {
			return err
		}
		if err := r.writeRegister(RX_PW_P1, r.payloadSize); err != nil {
			return err
		}
	}
	if err := r.powerUpRx(); err != nil {
		return err
	}
	return r.command("FLUSH_RX", FLUSH_RX)
}

func (r *Radio) dynamicPayload() bool { return r.payloadSize == 0 }

func (r *Radio) csnLow() error  { return gpioErr("CSN", r.csn.Write(false)) }
func (r *Radio) csnHigh() error { return gpioErr("CSN", r.csn.Write(true)) }
func (r *Radio) ceLow() error   { return gpioErr("CE", r.ce.Write(false)) }
func (r *Radio) ceHigh() error  { return gpioErr("CE", r.ce.Write(true)) }

func (r *Radio) busWrite(op string, data []byte) error {
	if verboseSPI {
		log.Printf("%s: write % X", op, data)
	}
	return busErr(op, r.bus.Write(data))
}

func (r *Radio) busTransfer(op string, data []byte) error {
	err := r.bus.Transfer(data)
	if verboseSPI {
		log.Printf("%s: xfer -> % X", op, data)
	}
	return busErr(op, err)
}

// command issues a single-byte instruction as its own CSN-framed
// transaction.
func (r *Radio) command(op string, instr Instruction) error {
	if err := r.csnLow(); err != nil {
		return err
	}
	if err := r.busWrite(op, []byte{byte(instr)}); err != nil {
		return err
	}
	return r.csnHigh()
}

func (r *Radio) writeRegister(reg byte, value byte) error {
	if err := r.csnLow(); err != nil {
		return err
	}
	op := "W_REGISTER"
	if err := r.busWrite(op, []byte{byte(W_REGISTER | REGISTER_MASK&Instruction(reg))}); err != nil {
		return err
	}
	if err := r.busWrite(op, []byte{value}); err != nil {
		return err
	}
	return r.csnHigh()
}

func (r *Radio) readRegister(reg byte) (byte, error) {
	if err := r.csnLow(); err != nil {
		return 0, err
	}
	op := "R_REGISTER"
	if err := r.busWrite(op, []byte{byte(R_REGISTER | REGISTER_MASK&Instruction(reg))}); err != nil {
		return 0, err
	}
	buf := []byte{0}
	if err := r.busTransfer(op, buf); err != nil {
		return 0, err
	}
	if err := r.csnHigh(); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadRegister returns the value of a single-byte register.
func (r *Radio) ReadRegister(reg byte) (byte, error) {
	return r.readRegister(reg)
}

func (r *Radio) writeAddressRegister(reg byte, addr []byte) error {
	if err := r.csnLow(); err != nil {
		return err
	}
	op := "W_REGISTER"
	if err := r.busWrite(op, []byte{byte(W_REGISTER | REGISTER_MASK&Instruction(reg))}); err != nil {
		return err
	}
	if err := r.busWrite(op, addr); err != nil {
		return err
	}
	return r.csnHigh()
}

func (r *Radio) readAddressRegister(reg byte) ([]byte, error) {
	if err := r.csnLow(); err != nil {
		return nil, err
	}
	op := "R_REGISTER"
	if err := r.busWrite(op, []byte{byte(R_REGISTER | REGISTER_MASK&Instruction(reg))}); err != nil {
		return nil, err
	}
	addr := make([]byte, AddressLength)
	if err := r.busTransfer(op, addr); err != nil {
		return nil, err
	}
	if err := r.csnHigh(); err != nil {
		return nil, err
	}
	return addr, nil
}

// powerUpRx puts the chip in receive mode and starts it listening.
// TX_DS and MAX_RT are write-1-to-clear, so writing them back acknowledges
// any completed transmission.
func (r *Radio) powerUpRx() error {
	r.transmitting = false
	if err := r.ceLow(); err != nil {
		return err
	}
	if err := r.writeRegister(CONFIG, baseConfig|1<<PWR_UP|1<<PRIM_RX); err != nil {
		return err
	}
	if err := r.ceHigh(); err != nil {
		return err
	}
	return r.writeRegister(STATUS, 1<<TX_DS|1<<MAX_RT)
}

// powerUpTx puts the chip in transmit mode. CE is left to the send path:
// raising it is what starts the transmission.
func (r *Radio) powerUpTx() error {
	r.transmitting = true
	return r.writeRegister(CONFIG, baseConfig|1<<PWR_UP)
}

// PowerDown drops CE and powers the chip down to conserve energy. The
// radio is unusable until Configure is called again.
func (r *Radio) PowerDown() error {
	if err := r.ceLow(); err != nil {
		return err
	}
	return r.writeRegister(CONFIG, baseConfig)
}

// SetReceiveAddress sets the pipe-1 receive address. CE is dropped for the
// write and raised again afterwards: RX_ADDR_P1 must not change while the
// radio is listening.
func (r *Radio) SetReceiveAddress(addr []byte) error {
	if err := r.ceLow(); err != nil {
		return err
	}
	if err := r.writeAddressRegister(RX_ADDR_P1, addr); err != nil {
		return err
	}
	return r.ceHigh()
}

// SetTransmitAddress sets the transmit address. The same address goes into
// RX_ADDR_P0 so that auto-acknowledgements from the receiver are picked up.
func (r *Radio) SetTransmitAddress(addr []byte) error {
	if err := r.writeAddressRegister(RX_ADDR_P0, addr); err != nil {
		return err
	}
	return r.writeAddressRegister(TX_ADDR, addr)
}

// TransmitAddress returns the current contents of the TX_ADDR register.
func (r *Radio) TransmitAddress() ([]byte, error) {
	return r.readAddressRegister(TX_ADDR)
}

// GetStatus reads the STATUS register.
func (r *Radio) GetStatus() (Status, error) {
	v, err := r.readRegister(STATUS)
	return Status(v), err
}

// Send queues data for transmission and starts it. In fixed payload mode
// data must be exactly the configured payload size; in dynamic mode at
// most MaxPayload bytes. Neither is checked here.
//
// If a previous transmission is still unresolved, Send first polls the
// status register until the chip reports completion, with no timeout: an
// unresponsive chip blocks forever. Use SendTimeout for a bounded wait.
// Send returns as soon as the transmission has started; poll Sending for
// completion.
func (r *Radio) Send(data []byte) error {
	return r.send(data, 0)
}

// SendTimeout is Send with a bounded wait for the previous transmission:
// if it does not resolve within timeout, SendTimeout returns
// ErrSendTimeout without transmitting, leaving the pending state intact.
func (r *Radio) SendTimeout(data []byte, timeout time.Duration) error {
	return r.send(data, timeout)
}

func (r *Radio) send(data []byte, timeout time.Duration) error {
	// Mirf-derived drivers issue a status read here before touching the
	// TX path; the chip may depend on it, so keep the exchange.
	if _, err := r.GetStatus(); err != nil {
		return err
	}
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for r.transmitting {
		status, err := r.GetStatus()
		if err != nil {
			return err
		}
		if status.DataSent() || status.MaxRetransmits() {
			r.transmitting = false
			break
		}
		if timeout > 0 && time.Now().After(deadline) {
			return ErrSendTimeout
		}
	}

	if err := r.ceLow(); err != nil {
		return err
	}
	if err := r.powerUpTx(); err != nil {
		return err
	}
	if err := r.command("FLUSH_TX", FLUSH_TX); err != nil {
		return err
	}

	if err := r.csnLow(); err != nil {
		return err
	}
	op := "W_TX_PAYLOAD"
	if err := r.busWrite(op, []byte{byte(W_TX_PAYLOAD)}); err != nil {
		return err
	}
	if err := r.busWrite(op, data); err != nil {
		return err
	}
	if err := r.csnHigh(); err != nil {
		return err
	}

	// Raising CE starts the over-the-air transmission.
	if err := r.ceHigh(); err != nil {
		return err
	}
	if verbose {
		log.Printf("sent %d-byte payload % X", len(data), data)
	}
	r.stats.Packets.Sent++
	r.stats.Bytes.Sent += len(data)
	return nil
}

// Sending reports whether a transmission is still in flight. It never
// blocks: a single status read decides. Once the chip reports TX_DS or
// MAX_RT the driver returns to receive mode and Sending returns false;
// the two outcomes are not distinguished here, inspect GetStatus before
// calling if that matters.
func (r *Radio) Sending() (bool, error) {
	if !r.transmitting {
		return false, nil
	}
	status, err := r.GetStatus()
	if err != nil {
		return false, err
	}
	if status.DataSent() || status.MaxRetransmits() {
		if err := r.powerUpRx(); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// DataReady reports whether a received payload is waiting to be read.
// It checks the RX_DR status bit and falls back to the FIFO status, which
// catches payloads still queued after RX_DR has been cleared by an
// earlier read.
func (r *Radio) DataReady() (bool, error) {
	status, err := r.GetStatus()
	if err != nil {
		return false, err
	}
	if status.DataReady() {
		return true, nil
	}
	empty, err := r.rxFIFOEmpty()
	if err != nil {
		return false, err
	}
	return !empty, nil
}

func (r *Radio) rxFIFOEmpty() (bool, error) {
	v, err := r.readRegister(FIFO_STATUS)
	if err != nil {
		return false, err
	}
	return FIFOStatus(v).RxEmpty(), nil
}

// Receive reads one payload from the RX FIFO into buf and returns its
// length. In dynamic payload mode the length is queried from the chip
// first; otherwise it is the configured payload size. Returns
// ErrShortBuffer if buf cannot hold the payload. The RX_DR status bit is
// cleared afterwards to acknowledge consumption.
func (r *Radio) Receive(buf []byte) (int, error) {
	n := int(r.payloadSize)
	if r.dynamicPayload() {
		if err := r.csnLow(); err != nil {
			return 0, err
		}
		op := "R_RX_PL_WID"
		if err := r.busWrite(op, []byte{byte(R_RX_PL_WID)}); err != nil {
			return 0, err
		}
		width := []byte{0}
		if err := r.busTransfer(op, width); err != nil {
			return 0, err
		}
		if err := r.csnHigh(); err != nil {
			return 0, err
		}
		n = int(width[0])
	}
	if n > len(buf) {
		return 0, ErrShortBuffer
	}

	if err := r.csnLow(); err != nil {
		return 0, err
	}
	op := "R_RX_PAYLOAD"
	if err := r.busWrite(op, []byte{byte(R_RX_PAYLOAD)}); err != nil {
		return 0, err
	}
	if err := r.busTransfer(op, buf[:n]); err != nil {
		return 0, err
	}
	if err := r.csnHigh(); err != nil {
		return 0, err
	}
	if err := r.writeRegister(STATUS, 1<<RX_DR); err != nil {
		return 0, err
	}
	if verbose {
		log.Printf("received %d-byte payload % X", n, buf[:n])
	}
	r.stats.Packets.Received++
	r.stats.Bytes.Received += n
	return n, nil
}
