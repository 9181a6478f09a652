package nrf24l01

// nRF24L01 register map. See the Nordic data sheet, section 9 (register map
// table). All registers are one byte except the address registers
// (RX_ADDR_P0, RX_ADDR_P1, TX_ADDR), which hold AddressLength bytes.
const (
	CONFIG      = 0x00 // Configuration register
	EN_AA       = 0x01 // Enable auto acknowledgment per pipe
	EN_RXADDR   = 0x02 // Enabled RX addresses
	SETUP_AW    = 0x03 // Address width setup
	SETUP_RETR  = 0x04 // Automatic retransmission setup
	RF_CH       = 0x05 // RF channel (0-125)
	RF_SETUP    = 0x06 // RF data rate and output power
	STATUS      = 0x07 // Status register
	OBSERVE_TX  = 0x08 // Lost/retransmitted packet counters
	CD          = 0x09 // Carrier detect
	RX_ADDR_P0  = 0x0A // Receive address, pipe 0
	RX_ADDR_P1  = 0x0B // Receive address, pipe 1
	RX_ADDR_P2  = 0x0C
	RX_ADDR_P3  = 0x0D
	RX_ADDR_P4  = 0x0E
	RX_ADDR_P5  = 0x0F
	TX_ADDR     = 0x10 // Transmit address
	RX_PW_P0    = 0x11 // Payload width, pipe 0
	RX_PW_P1    = 0x12 // Payload width, pipe 1
	RX_PW_P2    = 0x13
	RX_PW_P3    = 0x14
	RX_PW_P4    = 0x15
	RX_PW_P5    = 0x16
	FIFO_STATUS = 0x17 // FIFO status register
	DYNPD       = 0x1C // Dynamic payload length enable per pipe
	FEATURE     = 0x1D // Feature register
)

// Bit positions within the registers above.
const (
	// CONFIG
	PRIM_RX = 0 // 1: primary receiver, 0: primary transmitter
	PWR_UP  = 1
	CRCO    = 2
	EN_CRC  = 3

	// STATUS (TX_DS and MAX_RT are write-1-to-clear)
	TX_FULL = 0
	MAX_RT  = 4 // Maximum number of retransmits reached
	TX_DS   = 5 // Data sent
	RX_DR   = 6 // Data ready in RX FIFO

	// FIFO_STATUS
	RX_EMPTY = 0
	RX_FULL  = 1
	TX_EMPTY = 4

	// FEATURE
	EN_DYN_ACK = 0
	EN_ACK_PAY = 1
	EN_DPL     = 2 // Enable dynamic payload length

	// DYNPD
	DPL_P0 = 0
	DPL_P1 = 1
)

// Instruction represents an SPI command understood by the nRF24L01.
// Every command byte shifts the STATUS register back on MISO.
type Instruction byte

// SPI instruction set. R_REGISTER and W_REGISTER are OR'd with the
// register address masked by REGISTER_MASK.
const (
	R_REGISTER    Instruction = 0x00
	W_REGISTER    Instruction = 0x20
	REGISTER_MASK Instruction = 0x1F
	R_RX_PL_WID   Instruction = 0x60 // Read payload width for top RX FIFO entry
	R_RX_PAYLOAD  Instruction = 0x61
	W_TX_PAYLOAD  Instruction = 0xA0
	FLUSH_TX      Instruction = 0xE1
	FLUSH_RX      Instruction = 0xE2
	REUSE_TX_PL   Instruction = 0xE3
	NOP           Instruction = 0xFF
)

// AddressLength is the width in bytes of the RX/TX address registers.
const AddressLength = 5

// baseConfig is the CONFIG value common to every power state: CRC enabled,
// one-byte CRC, all interrupt masks clear. Power and RX/TX mode bits are
// OR'd in by the power transitions.
const baseConfig = 1 << EN_CRC

// MaxPayload is the capacity of one TX or RX FIFO entry.
const MaxPayload = 32
