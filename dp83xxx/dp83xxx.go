// Package dp83xxx controls Texas Instruments DP83xxx series 10/100
// Ethernet PHYs over MIIM: the DP83848 and the DP83640 with its
// hardware IEEE 1588 (PTP) timestamp clock.
//
// The DP83xxx vendor register space exceeds the 32-register Clause 22
// window; extended registers are addressed as (page, offset) pairs
// multiplexed through a page-select register. The selected page lives
// on the device, not in this package: nothing else on the bus is
// obligated to preserve it, so every extended access re-asserts the
// page immediately before the target operation.
package dp83xxx

import (
	miim "github.com/j4ger/ieee802-3-miim"
)

// ExtAddr addresses a register in the vendor extended space as a
// (page, offset) pair.
type ExtAddr struct {
	Page   uint16
	Offset uint8
}

// Page select register multiplexing the extended register space.
const regPageSelect uint8 = 0x13

// PHYSTS mirrors the current negotiated link parameters.
type PHYSTS uint16

const (
	AddrPHYSTS uint8 = 0x19

	PHYSTSLink       PHYSTS = 1 << 0 // Link is established
	PHYSTSSpeed10    PHYSTS = 1 << 1 // Operating at 10Mbps (else 100Mbps)
	PHYSTSFullDuplex PHYSTS = 1 << 2 // Operating in full duplex
)

// LinkMode decodes the current link parameters. Returns LinkDown when
// no link is established.
func (s PHYSTS) LinkMode() miim.LinkMode {
	if s&PHYSTSLink == 0 {
		return miim.LinkDown
	}
	switch s & (PHYSTSFullDuplex | PHYSTSSpeed10) {
	case PHYSTSFullDuplex | PHYSTSSpeed10:
		return miim.Link10FDX
	case PHYSTSFullDuplex:
		return miim.Link100FDX
	case PHYSTSSpeed10:
		return miim.Link10HDX
	}
	return miim.Link100HDX
}

// Interrupt control/status register in the extended space.
var regInterrupt = ExtAddr{Page: 0x00, Offset: 0x1b}

const (
	intEnLinkChange uint16 = 1 << 5
	// IntLinkChange is the mask for determining if the link status
	// change interrupt occurred.
	IntLinkChange uint16 = 1 << 13
)

// device is the common DP83xxx behavior both variants embed.
type device struct {
	miim.Device
}

// DP83848 is a 10/100 Ethernet PHY.
type DP83848 struct {
	device
}

// DP83640 is a 10/100 Ethernet PHY with hardware PTP timestamping.
type DP83640 struct {
	device
}

var (
	_ miim.PHY      = (*DP83848)(nil)
	_ miim.PHY      = (*DP83640)(nil)
	_ miim.PTPClock = (*DP83640)(nil)
)

// WriteExt writes a register in the vendor extended space. The
// page-select write and the target write form one sequence requiring
// exclusive use of the bus: an interleaved page-select from another bus
// user corrupts the operation.
func (d *device) WriteExt(addr ExtAddr, value uint16) error {
	err := d.WriteRegister(regPageSelect, uint16(addr.Page))
	if err != nil {
		return err
	}
	return d.WriteRegister(addr.Offset, value)
}

// ReadExt reads a register in the vendor extended space. Same bus
// exclusivity requirement as WriteExt.
func (d *device) ReadExt(addr ExtAddr) (uint16, error) {
	err := d.WriteRegister(regPageSelect, uint16(addr.Page))
	if err != nil {
		return 0, err
	}
	return d.ReadRegister(addr.Offset)
}

// BestAdvertisement returns the full 10/100 technology set the DP83xxx
// family supports. Never touches the bus.
func (d *device) BestAdvertisement() (miim.AutoNegotiationAdvertisement, error) {
	ad := miim.DefaultAdvertisement()
	ad.HD10BaseT = true
	ad.FD10BaseT = true
	ad.HD100BaseTX = true
	ad.FD100BaseTX = true
	ad.Base100T4 = true
	return ad, nil
}

// ESR is not implemented on the 10/100-only DP83xxx family; ok is
// always false.
func (d *device) ESR() (miim.ESR, bool, error) {
	return 0, false, nil
}

// ExtendedStatus is not implemented on the 10/100-only DP83xxx family;
// ok is always false.
func (d *device) ExtendedStatus() (miim.ExtendedPhyStatus, bool, error) {
	return miim.ExtendedPhyStatus{}, false, nil
}

// EnableLinkChangeInterrupt enables the link status change interrupt.
func (d *device) EnableLinkChangeInterrupt() error {
	return d.WriteExt(regInterrupt, intEnLinkChange)
}

// InterruptStatus reads the interrupt register. Compare against
// [IntLinkChange] to detect a link status change.
func (d *device) InterruptStatus() (uint16, error) {
	return d.ReadExt(regInterrupt)
}

// Link returns the link parameters the PHY is currently operating at,
// or LinkDown if no link is established.
func (d *device) Link() (miim.LinkMode, error) {
	raw, err := d.ReadRegister(AddrPHYSTS)
	return PHYSTS(raw).LinkMode(), err
}

// LinkEstablished returns true once autonegotiation has completed and
// the link is up.
func (d *device) LinkEstablished() (bool, error) {
	stat, err := d.BasicStatus()
	if err != nil {
		return false, err
	}
	return stat.AutoNegotiationComplete() && stat.LinkUp(), nil
}
