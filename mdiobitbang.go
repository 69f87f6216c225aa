package miim

import "errors"

var _ Miim = (*BitBang)(nil) // compile time guarantee of interface implementation.

const (
	bbOpRead  = 0b10
	bbOpWrite = 0b01
)

// BitBang is a software defined (bit-banged) MDIO/MDC management
// interface acting as the management station (STA) toward Clause 22
// PHYs. MDC is the clock line, MDIO the bidirectional data line; the
// three callbacks form the pin-level HAL:
//
//	sendBit: set MDIO to the bit value, pulse MDC high then low
//	getBit:  pulse MDC high, sample MDIO, pull MDC low
//	setDir:  configure the MDIO pin direction (true = output)
//
// Each callback must respect the MDIO turnaround time (~340ns between
// MDC edges); BitBang performs no delays of its own.
type BitBang struct {
	_sendBit func(bit bool)
	_getBit  func() (inputBit bool)
	_setDir  func(output bool)
}

// Configure initializes the bit-bang interface with the given pin
// control callbacks and releases the bus.
func (m *BitBang) Configure(sendBit func(bit bool), getBit func() bool, setDir func(setOut bool)) error {
	if sendBit == nil || getBit == nil || setDir == nil {
		return ErrInvalidConfig
	}
	m._sendBit = sendBit
	m._getBit = getBit
	m._setDir = setDir
	// Setting direction to output releases the bus.
	m.setDir(true)
	return nil
}

// Read implements [Miim] with Clause 22 framing.
func (m *BitBang) Read(phyAddr, regAddr uint8) (uint16, error) {
	if phyAddr > 31 {
		return 0, ErrBadPHYAddr
	} else if regAddr > 31 {
		return 0, ErrBadRegAddr
	}
	m.cmd(bbOpRead, phyAddr, regAddr)
	m.setDir(false)
	// Turnaround: the PHY should drive the first bit low.
	if m.getBit() {
		// No PHY drove the bus. Flush the frame so a present-but-slow
		// device does not desynchronize the next transaction.
		for i := 0; i < 32; i++ {
			m.getBit()
		}
		return 0xffff, errors.New("PHY did not drive turnaround low")
	}
	ret := m.getNum(16)
	m.getBit()
	return ret, nil
}

// Write implements [Miim] with Clause 22 framing.
func (m *BitBang) Write(phyAddr, regAddr uint8, value uint16) error {
	if phyAddr > 31 {
		return ErrBadPHYAddr
	} else if regAddr > 31 {
		return ErrBadRegAddr
	}
	m.cmd(bbOpWrite, phyAddr, regAddr)
	// Send turnaround (10).
	m.sendBit(true)
	m.sendBit(false)
	m.sendNum(value, 16)
	m.setDir(false)
	m.getBit()
	return nil
}

func (m *BitBang) cmd(op uint16, phy, reg uint8) {
	m.setDir(true)
	// Preamble, 32 bits of 1.
	for i := 0; i < 32; i++ {
		m.sendBit(true)
	}
	// Start of frame: 01, then the 2-bit opcode.
	m.sendBit(false)
	m.sendBit(true)
	m.sendBit((op>>1)&1 != 0)
	m.sendBit((op>>0)&1 != 0)
	m.sendNum(uint16(phy), 5)
	m.sendNum(uint16(reg), 5)
}

func (m *BitBang) sendNum(val uint16, bits int) {
	for i := bits - 1; i >= 0; i-- {
		m.sendBit((val>>i)&1 != 0)
	}
}

func (m *BitBang) getNum(bits int) (ret uint16) {
	for i := bits - 1; i >= 0; i-- {
		ret <<= 1
		if m.getBit() {
			ret |= 1
		}
	}
	return ret
}

func (m *BitBang) setDir(outWrite bool) { m._setDir(outWrite) }
func (m *BitBang) sendBit(b bool)       { m._sendBit(b) }
func (m *BitBang) getBit() bool         { return m._getBit() }
