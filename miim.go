// Package miim provides typed access to an Ethernet PHY's management
// registers over the MDIO/MDC two-wire management bus (MIIM), as defined
// by IEEE 802.3 Clause 22, along with the multi-step register protocols
// built on top of it: reset, autonegotiation advertisement exchange and
// vendor paged-register addressing.
package miim

import (
	"errors"
	"time"
)

// Miim is a HAL for the synchronous two-wire management bus (MDIO/MDC)
// used to access PHY registers. Implementations perform one blocking bus
// transaction per call with Clause 22 framing.
//
// The bus is a shared medium: several PHYs may answer on one Miim, each
// at its own 5-bit address. Callers performing multi-step register
// sequences require exclusive use of the bus for the whole sequence;
// Miim implementations are not expected to serialize anything beyond a
// single transaction.
type Miim interface {
	// Read reads a 16-bit register from the PHY at phyAddr.
	Read(phyAddr, regAddr uint8) (value uint16, err error)
	// Write writes a 16-bit value to a register of the PHY at phyAddr.
	Write(phyAddr, regAddr uint8, value uint16) error
}

// FindPHYs scans all 32 Clause 22 addresses on the bus and writes the
// addresses of responding PHYs to dst, returning the number found.
// Returns an error only if no PHY answered at any address.
func FindPHYs(bus Miim, dst []uint8) (n int, err error) {
	const maxAddr = 31
	if len(dst) < maxAddr+1 {
		return -1, ErrShortBuffer
	}
	n = 0
	for addr := uint8(0); addr <= maxAddr; addr++ {
		val, err := bus.Read(addr, AddrBMSR)
		if err != nil {
			continue
		}
		// BMSR has bits that must read as both zero and one, so an
		// all-ones (floating bus) or all-zeroes value is a bad address.
		if val != 0xffff && val != 0x0000 {
			dst[n] = addr
			n++
		}
		time.Sleep(150 * time.Microsecond)
	}
	if n <= 0 {
		err = errors.New("no PHY found")
	}
	return n, err
}
