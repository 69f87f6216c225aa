// Package miimtest provides a simulated MDIO bus with Clause 22 PHY
// register banks for exercising register sequences without hardware.
// The bus records every transaction so tests can assert on operation
// ordering, not just final register contents.
package miimtest

// Op records a single bus transaction in the order it occurred.
type Op struct {
	Write   bool
	PhyAddr uint8
	RegAddr uint8
	Value   uint16
}

const (
	regBMCR   = 0x00
	bmcrReset = 0x8000
)

// Bank simulates the register file of a single Clause 22 PHY.
// The zero value is a PHY with all registers zeroed and no paging.
type Bank struct {
	// Regs is the core 32-register file.
	Regs [32]uint16
	// PageSelectReg enables a vendor paged window when nonzero: a write
	// to this register selects the page backing accesses to registers
	// above it, as long as the selected page is nonzero. Page 0 aliases
	// the core register file, matching vendor parts whose low pages
	// mirror the standard registers.
	PageSelectReg uint8
	// ResetLatency is the number of BMCR reads the self-clearing reset
	// bit survives after being written. Zero clears on the first read.
	ResetLatency int

	page           uint16
	ext            map[uint32]uint16
	resetCountdown int
}

// SetExt preloads a paged register value.
func (b *Bank) SetExt(page uint16, reg uint8, value uint16) {
	if b.ext == nil {
		b.ext = make(map[uint32]uint16)
	}
	b.ext[uint32(page)<<8|uint32(reg)] = value
}

// Ext returns the current value of a paged register.
func (b *Bank) Ext(page uint16, reg uint8) uint16 {
	return b.ext[uint32(page)<<8|uint32(reg)]
}

// Page returns the currently selected page.
func (b *Bank) Page() uint16 { return b.page }

func (b *Bank) isPaged(reg uint8) bool {
	return b.PageSelectReg != 0 && b.page != 0 && reg > b.PageSelectReg
}

func (b *Bank) read(reg uint8) uint16 {
	if b.isPaged(reg) {
		return b.Ext(b.page, reg)
	}
	v := b.Regs[reg]
	if reg == regBMCR && v&bmcrReset != 0 {
		if b.resetCountdown > 0 {
			b.resetCountdown--
		} else {
			b.Regs[regBMCR] &^= bmcrReset
			v = b.Regs[regBMCR]
		}
	}
	return v
}

func (b *Bank) write(reg uint8, value uint16) {
	if b.PageSelectReg != 0 && reg == b.PageSelectReg {
		b.page = value
		b.Regs[reg] = value
		return
	}
	if b.isPaged(reg) {
		b.SetExt(b.page, reg, value)
		return
	}
	b.Regs[reg] = value
	if reg == regBMCR && value&bmcrReset != 0 {
		b.resetCountdown = b.ResetLatency
	}
}

// Bus is a simulated MDIO bus. Reads of addresses with no attached bank
// return 0xffff (floating bus); writes to them are discarded.
type Bus struct {
	// Ops is the ordered log of all transactions seen by the bus.
	Ops []Op
	// ReadErr, when set, is returned by every Read.
	ReadErr error
	// WriteErr, when set, is returned by every Write.
	WriteErr error

	banks map[uint8]*Bank
}

// Attach places a PHY register bank at the given bus address.
func (bus *Bus) Attach(phyAddr uint8, bank *Bank) {
	if bus.banks == nil {
		bus.banks = make(map[uint8]*Bank)
	}
	bus.banks[phyAddr] = bank
}

// Read implements the Miim transport contract.
func (bus *Bus) Read(phyAddr, regAddr uint8) (uint16, error) {
	if bus.ReadErr != nil {
		return 0, bus.ReadErr
	}
	bank, attached := bus.banks[phyAddr]
	value := uint16(0xffff)
	if attached {
		value = bank.read(regAddr)
	}
	bus.Ops = append(bus.Ops, Op{PhyAddr: phyAddr, RegAddr: regAddr, Value: value})
	return value, nil
}

// Write implements the Miim transport contract.
func (bus *Bus) Write(phyAddr, regAddr uint8, value uint16) error {
	if bus.WriteErr != nil {
		return bus.WriteErr
	}
	bus.Ops = append(bus.Ops, Op{Write: true, PhyAddr: phyAddr, RegAddr: regAddr, Value: value})
	if bank, attached := bus.banks[phyAddr]; attached {
		bank.write(regAddr, value)
	}
	return nil
}

// Writes returns only the write transactions from the op log.
func (bus *Bus) Writes() []Op {
	var w []Op
	for _, op := range bus.Ops {
		if op.Write {
			w = append(w, op)
		}
	}
	return w
}

// ClearOps discards the op log, keeping register state.
func (bus *Bus) ClearOps() { bus.Ops = bus.Ops[:0] }
