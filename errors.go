package nrf24l01

import (
	"errors"
	"fmt"
)

// BusError wraps a failure reported by the SPI transport. The driver never
// retries; the caller decides whether to retry the whole operation.
type BusError struct {
	Op  string // the driver operation or SPI command that failed
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("nrf24l01: %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// GPIOError wraps a failure to drive the CSN or CE line.
type GPIOError struct {
	Pin string // "CSN" or "CE"
	Err error
}

func (e *GPIOError) Error() string {
	return fmt.Sprintf("nrf24l01: %s: %v", e.Pin, e.Err)
}

func (e *GPIOError) Unwrap() error { return e.Err }

// ErrLateCollision is reserved for higher layers; no driver operation
// returns it.
var ErrLateCollision = errors.New("nrf24l01: late collision")

// ErrShortBuffer is returned by Receive when the caller's buffer cannot
// hold the incoming payload.
var ErrShortBuffer = errors.New("nrf24l01: buffer shorter than payload")

// ErrSendTimeout is returned by SendTimeout when a previous transmission
// does not resolve within the deadline.
var ErrSendTimeout = errors.New("nrf24l01: transmission still pending")

func busErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BusError{Op: op, Err: err}
}

func gpioErr(pin string, err error) error {
	if err == nil {
		return nil
	}
	return &GPIOError{Pin: pin, Err: err}
}
