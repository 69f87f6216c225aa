package miim

// Pause is the flow control capability advertised during autonegotiation,
// encoded in the two pause bits of the ANAR.
// Reference: IEEE 802.3 Annex 28B.2, Table 28B-2
type Pause uint8

const (
	// PauseNone advertises no pause capability.
	PauseNone Pause = iota
	// PauseAsymmetricPartner advertises asymmetric pause toward the
	// link partner.
	PauseAsymmetricPartner
	// PauseSymmetric advertises symmetric pause.
	PauseSymmetric
	// PauseSymmetricAndAsymmetricLocal advertises both symmetric pause
	// and asymmetric pause toward the local device.
	PauseSymmetricAndAsymmetricLocal
)

func (p Pause) String() string {
	switch p {
	case PauseNone:
		return "none"
	case PauseAsymmetricPartner:
		return "asymmetric-partner"
	case PauseSymmetric:
		return "symmetric"
	case PauseSymmetricAndAsymmetricLocal:
		return "symmetric+asymmetric-local"
	}
	return "unknown"
}

// Pause decodes the two pause bits. The mapping is total: every bit
// combination has a Pause value and vice versa.
func (a ANAR) Pause() Pause {
	asym := a&ANARPauseAsym != 0
	sym := a&ANARPause != 0
	switch {
	case asym && sym:
		return PauseSymmetricAndAsymmetricLocal
	case asym:
		return PauseAsymmetricPartner
	case sym:
		return PauseSymmetric
	}
	return PauseNone
}

// ANAR returns the pause bits encoding p.
func (p Pause) ANAR() ANAR {
	switch p {
	case PauseAsymmetricPartner:
		return ANARPauseAsym
	case PauseSymmetric:
		return ANARPause
	case PauseSymmetricAndAsymmetricLocal:
		return ANARPauseAsym | ANARPause
	}
	return 0
}

// SelectorField describes the family of autonegotiation message carried
// in a link code word. In practice Selector8023 is used almost
// exclusively. SelectorNone represents a reserved or unrecognized
// selector value; it has no bit encoding.
type SelectorField uint8

const (
	SelectorNone         SelectorField = iota // none
	Selector8023                              // IEEE 802.3
	Selector8029Islan16t                      // IEEE 802.9 ISLAN-16T
	Selector8025                              // IEEE 802.5
	Selector1394                              // IEEE 1394
)

func (sf SelectorField) String() string {
	switch sf {
	case SelectorNone:
		return "none"
	case Selector8023:
		return "IEEE 802.3"
	case Selector8029Islan16t:
		return "IEEE 802.9 ISLAN-16T"
	case Selector8025:
		return "IEEE 802.5"
	case Selector1394:
		return "IEEE 1394"
	}
	return "unknown"
}

// SelectorField decodes the 5-bit selector field. The decode demands an
// exact match of all five bits after masking; the XOR leaves a nonzero
// residue for any extra or missing bit, so a reserved pattern yields
// SelectorNone rather than the nearest known value.
func (a ANAR) SelectorField() SelectorField {
	sel := a & ANARSelector
	switch {
	case sel^ANARSelector8023 == 0:
		return Selector8023
	case sel^ANARSelector8025 == 0:
		return Selector8025
	case sel^ANARSelector8029Islan == 0:
		return Selector8029Islan16t
	case sel^ANARSelector1394 == 0:
		return Selector1394
	}
	return SelectorNone
}

// ANAR returns the selector field bits encoding sf.
// SelectorNone contributes no bits.
func (sf SelectorField) ANAR() ANAR {
	switch sf {
	case Selector8023:
		return ANARSelector8023
	case Selector8029Islan16t:
		return ANARSelector8029Islan
	case Selector8025:
		return ANARSelector8025
	case Selector1394:
		return ANARSelector1394
	}
	return 0
}

// AutoNegotiationAdvertisement is the capability vector a PHY advertises
// to, or receives from, its link partner during autonegotiation.
// An unset technology bit means "not advertised", not "unsupported".
type AutoNegotiationAdvertisement struct {
	// Selector is the message family of the link code word.
	Selector SelectorField
	// The PHY advertises 10BASE-T half duplex.
	HD10BaseT bool
	// The PHY advertises 10BASE-T full duplex.
	FD10BaseT bool
	// The PHY advertises 100BASE-TX half duplex.
	HD100BaseTX bool
	// The PHY advertises 100BASE-TX full duplex.
	FD100BaseTX bool
	// The PHY advertises 100BASE-T4.
	Base100T4 bool
	// Pause is the advertised flow control capability.
	Pause Pause
}

// DefaultAdvertisement returns an empty advertisement with the selector
// at its IEEE 802.3 default.
func DefaultAdvertisement() AutoNegotiationAdvertisement {
	return AutoNegotiationAdvertisement{Selector: Selector8023}
}

// Advertisement decodes the ANAR (or ANLPAR, same layout) into an
// advertisement.
func (a ANAR) Advertisement() AutoNegotiationAdvertisement {
	return AutoNegotiationAdvertisement{
		Selector:    a.SelectorField(),
		HD10BaseT:   a&ANAR10Half != 0,
		FD10BaseT:   a&ANAR10Full != 0,
		HD100BaseTX: a&ANAR100Half != 0,
		FD100BaseTX: a&ANAR100Full != 0,
		Base100T4:   a&ANAR100BaseT4 != 0,
		Pause:       a.Pause(),
	}
}

// ANAR encodes the advertisement into register bits.
func (ad AutoNegotiationAdvertisement) ANAR() (a ANAR) {
	a = ad.Selector.ANAR()
	if ad.HD10BaseT {
		a |= ANAR10Half
	}
	if ad.FD10BaseT {
		a |= ANAR10Full
	}
	if ad.HD100BaseTX {
		a |= ANAR100Half
	}
	if ad.FD100BaseTX {
		a |= ANAR100Full
	}
	if ad.Base100T4 {
		a |= ANAR100BaseT4
	}
	a |= ad.Pause.ANAR()
	return a
}

// LinkMode represents a negotiated or force-set Ethernet link speed and
// duplex mode.
//
// Naming convention:
//   - HDX: Half-duplex (one direction at a time)
//   - FDX: Full-duplex (simultaneous bidirectional)
//   - T4: 100BASE-T4 (100Mbps over 4 twisted pairs, legacy)
type LinkMode uint8

const (
	LinkDown    LinkMode = iota // down
	Link10HDX                   // 10M-H
	Link10FDX                   // 10M-F
	Link100HDX                  // 100M-H
	Link100FDX                  // 100M-F
	Link100T4                   // 100M-T4
	Link1000HDX                 // 1000M-H
	Link1000FDX                 // 1000M-F
)

func (lm LinkMode) String() string {
	switch lm {
	case LinkDown:
		return "down"
	case Link10HDX:
		return "10M-H"
	case Link10FDX:
		return "10M-F"
	case Link100HDX:
		return "100M-H"
	case Link100FDX:
		return "100M-F"
	case Link100T4:
		return "100M-T4"
	case Link1000HDX:
		return "1000M-H"
	case Link1000FDX:
		return "1000M-F"
	}
	return "unknown"
}

// SpeedMbps returns the link speed in megabits per second.
func (lm LinkMode) SpeedMbps() int {
	switch lm {
	case Link10HDX, Link10FDX:
		return 10
	case Link100HDX, Link100FDX, Link100T4:
		return 100
	case Link1000HDX, Link1000FDX:
		return 1000
	}
	return 0
}

// IsFullDuplex returns true if the link mode is full duplex.
func (lm LinkMode) IsFullDuplex() bool {
	switch lm {
	case Link10FDX, Link100FDX, Link1000FDX:
		return true
	}
	return false
}

// LinkMode returns the highest priority LinkMode from the ANAR
// technology bits, per IEEE 802.3 Annex 28B.3 priority resolution.
// Returns LinkDown if no technology bits are set.
func (a ANAR) LinkMode() LinkMode {
	switch {
	case a&ANAR100Full != 0:
		return Link100FDX
	case a&ANAR100BaseT4 != 0:
		return Link100T4
	case a&ANAR100Half != 0:
		return Link100HDX
	case a&ANAR10Full != 0:
		return Link10FDX
	case a&ANAR10Half != 0:
		return Link10HDX
	}
	return LinkDown
}
