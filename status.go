package nrf24l01

import "strconv"

// Status is the value of the STATUS register.
type Status byte

// DataReady reports whether a payload is waiting in the RX FIFO.
func (s Status) DataReady() bool { return s&(1<<RX_DR) != 0 }

// DataSent reports whether the last transmission completed (and, with
// auto-ack enabled, was acknowledged).
func (s Status) DataSent() bool { return s&(1<<TX_DS) != 0 }

// MaxRetransmits reports whether the last transmission gave up after the
// maximum number of retransmits.
func (s Status) MaxRetransmits() bool { return s&(1<<MAX_RT) != 0 }

// TxFull reports whether the TX FIFO is full.
func (s Status) TxFull() bool { return s&(1<<TX_FULL) != 0 }

// RxPipe returns the pipe number of the payload at the head of the RX FIFO,
// or -1 if the RX FIFO is empty.
func (s Status) RxPipe() int {
	n := int(s) & 0x0E
	if n == 0x0E {
		return -1
	}
	return n >> 1
}

func (s Status) String() string {
	return flags("RxDR+ TxDS+ MaxRT+ TxFull+ RxPipe:", 0x71, byte(s)) +
		strconv.Itoa(s.RxPipe())
}

// FIFOStatus is the value of the FIFO_STATUS register.
type FIFOStatus byte

// RxEmpty reports whether the RX FIFO holds no payloads.
func (f FIFOStatus) RxEmpty() bool { return f&(1<<RX_EMPTY) != 0 }

// RxFull reports whether the RX FIFO is full.
func (f FIFOStatus) RxFull() bool { return f&(1<<RX_FULL) != 0 }

// TxEmpty reports whether the TX FIFO holds no payloads.
func (f FIFOStatus) TxEmpty() bool { return f&(1<<TX_EMPTY) != 0 }

func (f FIFOStatus) String() string {
	return flags("TxEmpty+ RxFull+ RxEmpty+", 0x13, byte(f))
}

// flags renders the set bits of b selected by mask into the template f,
// replacing each '+' with '+' or '-' for the next mask bit, high to low.
func flags(f string, mask, b byte) string {
	buf := make([]byte, len(f))
	m := byte(0x80)
	for i := range buf {
		if f[i] == '+' {
			for mask&m == 0 {
				m >>= 1
			}
			if b&m == 0 {
				buf[i] = '-'
			} else {
				buf[i] = '+'
			}
			m >>= 1
		} else {
			buf[i] = f[i]
		}
	}
	return string(buf)
}
