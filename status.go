package miim

// LinkSpeed is a basic link speed selected through the BMCR speed-select
// bits. SpeedIllegal represents both speed-select bits set at once, a
// state that can be read back from hardware but never written.
type LinkSpeed uint8

const (
	Speed10      LinkSpeed = iota // 10M
	Speed100                      // 100M
	Speed1000                     // 1000M
	SpeedIllegal                  // illegal
)

// Mbps returns the link speed in megabits per second, or 0 for SpeedIllegal.
func (ls LinkSpeed) Mbps() int {
	switch ls {
	case Speed10:
		return 10
	case Speed100:
		return 100
	case Speed1000:
		return 1000
	}
	return 0
}

func (ls LinkSpeed) String() string {
	switch ls {
	case Speed10:
		return "10M"
	case Speed100:
		return "100M"
	case Speed1000:
		return "1000M"
	case SpeedIllegal:
		return "illegal"
	}
	return "unknown"
}

// LinkSpeed decodes the 2-bit speed-select field of the control register.
func (c BMCR) LinkSpeed() LinkSpeed {
	switch c & bmcrSpeedMask {
	case BMCRSpeed1000 | BMCRSpeed100:
		return SpeedIllegal
	case BMCRSpeed1000:
		return Speed1000
	case BMCRSpeed100:
		return Speed100
	}
	return Speed10
}

// BMCR returns the speed-select bits encoding ls.
// Panics on SpeedIllegal: no valid bit pattern represents it, and
// silently substituting a speed would misconfigure the link.
func (ls LinkSpeed) BMCR() BMCR {
	switch ls {
	case Speed1000:
		return BMCRSpeed1000
	case Speed100:
		return BMCRSpeed100
	case Speed10:
		return 0
	}
	panic("cannot convert illegal link speed to BMCR bits")
}

// PhyStatus describes what a PHY is capable of, as reported by its
// status register. It is recomputed from a fresh BMSR read on every
// status query and never cached.
type PhyStatus struct {
	// The PHY supports 100BASE-T4.
	Base100T4 bool
	// The PHY supports 100BASE-X full duplex.
	FD100BaseX bool
	// The PHY supports 100BASE-X half duplex.
	HD100BaseX bool
	// The PHY supports 10 Mbps full duplex.
	FD10Mbps bool
	// The PHY supports 10 Mbps half duplex.
	HD10Mbps bool
	// The PHY has extended status data in register 15.
	ExtendedStatus bool
	// The PHY supports unidirectional communication.
	Unidirectional bool
	// The PHY accepts management frames not preceded by the preamble.
	PreambleSuppression bool
	// The PHY can perform autonegotiation.
	AutoNegotiation bool
	// The PHY supports the extended register set (registers 2 and up).
	ExtendedCaps bool
}

// PhyStatus decodes the capability flags of the status register.
func (s BMSR) PhyStatus() PhyStatus {
	return PhyStatus{
		Base100T4:           s&BMSR100Base4 != 0,
		FD100BaseX:          s&BMSR100Full != 0,
		HD100BaseX:          s&BMSR100Half != 0,
		FD10Mbps:            s&BMSR10Full != 0,
		HD10Mbps:            s&BMSR10Half != 0,
		ExtendedStatus:      s&BMSRExtStatus != 0,
		Unidirectional:      s&BMSRUnidirectional != 0,
		PreambleSuppression: s&BMSRNoPreamble != 0,
		AutoNegotiation:     s&BMSRANCap != 0,
		ExtendedCaps:        s&BMSRExtCap != 0,
	}
}

// BestAdvertisement returns the largest advertisement the hardware
// supports: every technology bit the status register reports is enabled.
// Selector is left at its IEEE 802.3 default and pause is unset; callers
// wanting flow control must set Pause explicitly.
func (ps PhyStatus) BestAdvertisement() AutoNegotiationAdvertisement {
	ad := DefaultAdvertisement()
	ad.Base100T4 = ps.Base100T4
	ad.FD100BaseTX = ps.FD100BaseX
	ad.HD100BaseTX = ps.HD100BaseX
	ad.FD10BaseT = ps.FD10Mbps
	ad.HD10BaseT = ps.HD10Mbps
	return ad
}

// ExtendedPhyStatus describes the gigabit capabilities reported by the
// extended status register. Only meaningful when PhyStatus.ExtendedStatus
// is true.
type ExtendedPhyStatus struct {
	// The PHY supports 1000BASE-X full duplex.
	FD1000BaseX bool
	// The PHY supports 1000BASE-X half duplex.
	HD1000BaseX bool
	// The PHY supports 1000BASE-T full duplex.
	FD1000BaseT bool
	// The PHY supports 1000BASE-T half duplex.
	HD1000BaseT bool
}

// ExtendedPhyStatus decodes the gigabit capability flags of the ESR.
func (e ESR) ExtendedPhyStatus() ExtendedPhyStatus {
	return ExtendedPhyStatus{
		FD1000BaseX: e&ESR1000FullX != 0,
		HD1000BaseX: e&ESR1000HalfX != 0,
		FD1000BaseT: e&ESR1000FullT != 0,
		HD1000BaseT: e&ESR1000HalfT != 0,
	}
}

// PhyIdent is the vendor identifier of a PHY, composed from the two
// identifier words at registers 2 and 3.
// Reference: IEEE 802.3 Clause 22.2.4.3
type PhyIdent struct {
	// ID1 is the identifier word at register 2: OUI bits 3 through 18.
	ID1 uint16
	// ID2 is the identifier word at register 3: OUI bits 19 through 24,
	// model number and revision.
	ID2 uint16
}

// Uint32 returns both identifier words packed as ID1<<16 | ID2.
func (id PhyIdent) Uint32() uint32 {
	return uint32(id.ID1)<<16 | uint32(id.ID2)
}

// OUI returns the organizationally unique identifier of the PHY vendor.
func (id PhyIdent) OUI() uint32 {
	return uint32(id.ID1)<<6 | uint32(id.ID2)>>10
}

// ModelNumber returns the 6-bit vendor model number.
func (id PhyIdent) ModelNumber() uint8 {
	return uint8(id.ID2>>4) & 0x3f
}

// Revision returns the 4-bit vendor revision number.
func (id PhyIdent) Revision() uint8 {
	return uint8(id.ID2) & 0x0f
}
