package miim

import (
	"errors"
	"time"
)

// PHY is an IEEE 802.3 compatible PHY reachable over a Miim bus.
//
// Device implements every operation for a generic Clause 22 PHY; vendor
// device types embed it and shadow only the operations their silicon
// does differently (see the dp83xxx package).
//
// Operations gated on an optional capability bit return ok=false when
// the PHY lacks the capability. That is a normal outcome callers must
// branch on, not a failure: the underlying registers hold garbage on
// such devices and are never read.
type PHY interface {
	// PHYAddr returns the PHY address on the bus (0-31).
	PHYAddr() uint8
	// BestAdvertisement returns the largest advertisement this PHY
	// can send out.
	BestAdvertisement() (AutoNegotiationAdvertisement, error)
	// Reset sets the self-clearing reset bit. It does not wait.
	Reset() error
	// BlockingReset resets and polls until the reset bit clears.
	BlockingReset() error
	// Status reads the BMSR and derives the capability snapshot.
	Status() (PhyStatus, error)
	// ExtendedStatus reads the gigabit capabilities. ok is false if the
	// PHY reports no extended status register.
	ExtendedStatus() (ExtendedPhyStatus, bool, error)
	// Ident reads the vendor identifier. ok is false if the PHY lacks
	// the extended register set.
	Ident() (PhyIdent, bool, error)
	// SetAdvertisement writes the advertisement and restarts
	// autonegotiation. No-op if the PHY lacks the extended register set.
	SetAdvertisement(ad AutoNegotiationAdvertisement) error
	// Advertisement reads back the local advertisement register. ok is
	// false if the PHY lacks the extended register set.
	Advertisement() (AutoNegotiationAdvertisement, bool, error)
	// PartnerAdvertisement reads the link partner ability register. ok
	// is false if the PHY lacks the extended register set.
	PartnerAdvertisement() (AutoNegotiationAdvertisement, bool, error)
}

// Device is a generic IEEE 802.3 Clause 22 PHY on a Miim bus. It is the
// default PHY implementation which vendor device types build on.
//
// Device keeps no register state of its own: every query goes to the
// bus, and multi-step operations assume exclusive use of the bus until
// they return (see Miim).
type Device struct {
	bus  Miim
	addr uint8
}

var _ PHY = (*Device)(nil) // compile time guarantee of interface implementation.

// Configure resets all state of the device to address a PHY at phyAddr
// over bus.
func (d *Device) Configure(bus Miim, phyAddr uint8) error {
	if phyAddr > 31 {
		return ErrBadPHYAddr
	} else if bus == nil {
		return ErrInvalidConfig
	}
	d.bus = bus
	d.addr = phyAddr
	return nil
}

// PHYAddr returns the PHY address on the bus (0-31).
func (d *Device) PHYAddr() uint8 { return d.addr }

// ReadRegister reads a 16-bit PHY register over the bus.
func (d *Device) ReadRegister(regAddr uint8) (uint16, error) {
	return d.bus.Read(d.addr, regAddr)
}

// WriteRegister writes a 16-bit value to a PHY register over the bus.
func (d *Device) WriteRegister(regAddr uint8, value uint16) error {
	return d.bus.Write(d.addr, regAddr, value)
}

// BasicControl reads the Basic Mode Control Register (register 0).
func (d *Device) BasicControl() (BMCR, error) {
	ctl, err := d.ReadRegister(AddrBMCR)
	return BMCR(ctl), err
}

// ModifyBasicControl applies f to the current BMCR value and writes the
// result back, one read-modify-write cycle.
func (d *Device) ModifyBasicControl(f func(BMCR) BMCR) error {
	ctl, err := d.BasicControl()
	if err != nil {
		return err
	}
	return d.WriteRegister(AddrBMCR, uint16(f(ctl)))
}

// BasicStatus reads the Basic Mode Status Register (register 1).
func (d *Device) BasicStatus() (BMSR, error) {
	stat, err := d.ReadRegister(AddrBMSR)
	return BMSR(stat), err
}

// Status reads the BMSR and derives the capability snapshot from it.
func (d *Device) Status() (PhyStatus, error) {
	stat, err := d.BasicStatus()
	return stat.PhyStatus(), err
}

// BestAdvertisement derives the largest supportable advertisement from
// the status register. Selector and pause are left at their defaults.
func (d *Device) BestAdvertisement() (AutoNegotiationAdvertisement, error) {
	status, err := d.Status()
	return status.BestAdvertisement(), err
}

// IsResetting returns true while a previously requested reset is still
// in progress.
func (d *Device) IsResetting() (bool, error) {
	ctl, err := d.BasicControl()
	return ctl.IsResetting(), err
}

// Reset requests a software reset by setting the self-clearing reset
// bit. It does not wait; poll IsResetting or use BlockingReset.
func (d *Device) Reset() error {
	return d.ModifyBasicControl(func(c BMCR) BMCR {
		return c | BMCRReset
	})
}

// BlockingReset resets the PHY and re-reads the control register until
// the reset bit clears. The loop is unbounded: IEEE 802.3 allows up to
// 500ms for a reset, and a caller needing a bound must impose it
// externally (e.g. run BlockingReset from a goroutine it abandons).
func (d *Device) BlockingReset() error {
	err := d.Reset()
	if err != nil {
		return err
	}
	for {
		ctl, err := d.BasicControl()
		if err != nil {
			return err
		}
		if !ctl.IsResetting() {
			return nil
		}
	}
}

// LinkUp returns true if the PHY reports an established link.
func (d *Device) LinkUp() (bool, error) {
	stat, err := d.BasicStatus()
	return stat.LinkUp(), err
}

// AutoNegotiationComplete returns true once autonegotiation has finished.
func (d *Device) AutoNegotiationComplete() (bool, error) {
	stat, err := d.BasicStatus()
	return stat.AutoNegotiationComplete(), err
}

// LinkSpeed reads the configured speed-select bits of the BMCR.
func (d *Device) LinkSpeed() (LinkSpeed, error) {
	ctl, err := d.BasicControl()
	return ctl.LinkSpeed(), err
}

// SetLinkSpeed forces the speed-select bits of the BMCR.
// Panics on SpeedIllegal (see LinkSpeed.BMCR).
func (d *Device) SetLinkSpeed(ls LinkSpeed) error {
	bits := ls.BMCR()
	return d.ModifyBasicControl(func(c BMCR) BMCR {
		return c&^bmcrSpeedMask | bits
	})
}

// SetLoopback enables or disables near-end loopback mode, routing TX
// data back to RX internally.
func (d *Device) SetLoopback(enable bool) error {
	return d.ModifyBasicControl(func(c BMCR) BMCR {
		if enable {
			return c | BMCRLoopback
		}
		return c &^ BMCRLoopback
	})
}

// ESR reads the raw Extended Status Register. ok is false when the BMSR
// reports no extended status, in which case register 15 is not read.
func (d *Device) ESR() (esr ESR, ok bool, err error) {
	status, err := d.Status()
	if err != nil || !status.ExtendedStatus {
		return 0, false, err
	}
	raw, err := d.ReadRegister(AddrESR)
	return ESR(raw), err == nil, err
}

// ExtendedStatus reads the gigabit capability snapshot. ok is false when
// the BMSR reports no extended status register.
func (d *Device) ExtendedStatus() (ExtendedPhyStatus, bool, error) {
	esr, ok, err := d.ESR()
	if !ok {
		return ExtendedPhyStatus{}, false, err
	}
	return esr.ExtendedPhyStatus(), true, nil
}

// Ident reads the two identifier words at registers 2 and 3. ok is
// false when the PHY lacks the extended register set.
func (d *Device) Ident() (id PhyIdent, ok bool, err error) {
	status, err := d.Status()
	if err != nil || !status.ExtendedCaps {
		return PhyIdent{}, false, err
	}
	id1, err := d.ReadRegister(AddrPhyID1)
	if err != nil {
		return PhyIdent{}, false, err
	}
	id2, err := d.ReadRegister(AddrPhyID2)
	if err != nil {
		return PhyIdent{}, false, err
	}
	return PhyIdent{ID1: id1, ID2: id2}, true, nil
}

// SetAdvertisement writes the local advertisement register and restarts
// autonegotiation. The written technology bits are the intersection of
// the requested bits and what the status register reports as supported:
// a caller cannot advertise a capability the hardware lacks. Selector
// and pause bits are written as requested.
//
// The advertisement register is written strictly before the restart
// pulse, so the restarted negotiation sends the new code word. Both
// writes must complete without another bus user in between; there is no
// rollback if the second write fails.
//
// No-op if the PHY lacks the extended register set.
func (d *Device) SetAdvertisement(ad AutoNegotiationAdvertisement) error {
	status, err := d.Status()
	if err != nil {
		return err
	}
	if !status.ExtendedCaps {
		return nil
	}

	var ana ANAR
	if ad.HD10BaseT && status.HD10Mbps {
		ana |= ANAR10Half
	}
	if ad.FD10BaseT && status.FD10Mbps {
		ana |= ANAR10Full
	}
	if ad.HD100BaseTX && status.HD100BaseX {
		ana |= ANAR100Half
	}
	if ad.FD100BaseTX && status.FD100BaseX {
		ana |= ANAR100Full
	}
	if ad.Base100T4 && status.Base100T4 {
		ana |= ANAR100BaseT4
	}
	ana |= ad.Selector.ANAR()
	ana |= ad.Pause.ANAR()

	err = d.WriteRegister(AddrANAR, uint16(ana))
	if err != nil {
		return err
	}
	return d.ModifyBasicControl(func(c BMCR) BMCR {
		return c | BMCRANEnable | BMCRANRestart
	})
}

// Advertisement reads back the local advertisement register. ok is
// false when the PHY lacks the extended register set.
func (d *Device) Advertisement() (AutoNegotiationAdvertisement, bool, error) {
	return d.readAdvertisement(AddrANAR)
}

// PartnerAdvertisement reads the capabilities received from the link
// partner. ok is false when the PHY lacks the extended register set.
func (d *Device) PartnerAdvertisement() (AutoNegotiationAdvertisement, bool, error) {
	return d.readAdvertisement(AddrANLPAR)
}

func (d *Device) readAdvertisement(regAddr uint8) (AutoNegotiationAdvertisement, bool, error) {
	status, err := d.Status()
	if err != nil || !status.ExtendedCaps {
		return AutoNegotiationAdvertisement{}, false, err
	}
	raw, err := d.ReadRegister(regAddr)
	if err != nil {
		return AutoNegotiationAdvertisement{}, false, err
	}
	return ANAR(raw).Advertisement(), true, nil
}

// Expansion reads the Auto-Negotiation Expansion Register. ok is false
// when the PHY lacks the extended register set.
func (d *Device) Expansion() (ANER, bool, error) {
	status, err := d.Status()
	if err != nil || !status.ExtendedCaps {
		return 0, false, err
	}
	raw, err := d.ReadRegister(AddrANER)
	return ANER(raw), err == nil, err
}

// NegotiatedLink resolves the link mode agreed on by both partners:
// the highest priority mode in the intersection of the local and
// partner advertisements, per IEEE 802.3 Annex 28B.3.
func (d *Device) NegotiatedLink() (LinkMode, error) {
	stat, err := d.BasicStatus()
	if err != nil {
		return LinkDown, err
	}
	if !stat.AutoNegotiationComplete() {
		return LinkDown, errors.New("auto-negotiation not complete")
	}
	local, err := d.ReadRegister(AddrANAR)
	if err != nil {
		return LinkDown, err
	}
	partner, err := d.ReadRegister(AddrANLPAR)
	if err != nil {
		return LinkDown, err
	}
	common := ANAR(local) & ANAR(partner)
	return common.LinkMode(), nil
}

// WaitForLink polls the status register until the PHY reports link up
// or the deadline passes. If autonegotiation is enabled it waits for
// completion first, since link parameters are invalid before that.
// Returns true if link is up, false if the deadline was exceeded.
func (d *Device) WaitForLink(deadline time.Time) (bool, error) {
	const pollInterval = 50 * time.Millisecond
	// Link is impossible while the PHY is isolated or powered down.
	ctl, err := d.BasicControl()
	if err != nil {
		return false, err
	} else if ctl.IsIsolated() {
		return false, errors.New("PHY isolated from MII")
	} else if ctl.IsPoweredDown() {
		return false, errors.New("PHY powered down")
	}

	// First read clears latched-low bits (LinkStatus, ANComplete) so
	// subsequent reads report current state.
	_, _ = d.BasicStatus()
	anEnabled := ctl.AutoNegotiationEnabled()
	for time.Now().Before(deadline) {
		stat, err := d.BasicStatus()
		if err != nil {
			return false, err
		}
		if anEnabled && !stat.AutoNegotiationComplete() {
			time.Sleep(pollInterval)
			continue
		}
		if stat.LinkUp() {
			return true, nil
		}
		time.Sleep(pollInterval)
	}

	stat, err := d.BasicStatus()
	if err != nil {
		return false, err
	}
	return stat.LinkUp(), nil
}
