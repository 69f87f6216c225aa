package miim

// Fixed Clause 22 register addresses. Registers 16-31 are vendor specific.
const (
	AddrBMCR   uint8 = 0x00 // Basic Mode Control Register.
	AddrBMSR   uint8 = 0x01 // Basic Mode Status Register.
	AddrPhyID1 uint8 = 0x02 // PHY Identifier word 1.
	AddrPhyID2 uint8 = 0x03 // PHY Identifier word 2.
	AddrANAR   uint8 = 0x04 // Auto-Negotiation Advertisement Register.
	AddrANLPAR uint8 = 0x05 // Auto-Negotiation Link Partner Ability Register.
	AddrANER   uint8 = 0x06 // Auto-Negotiation Expansion Register.
	AddrESR    uint8 = 0x0f // Extended Status Register.
)

// BMCR represents the Basic Mode Control Register at address 0x00.
// Reference: IEEE 802.3 Clause 22.2.4.1
type BMCR uint16

const (
	BMCRSpeed1000  BMCR = 0x0040 // MSB of speed select (1000Mbps)
	BMCRCollision  BMCR = 0x0080 // Collision test
	BMCRFullDuplex BMCR = 0x0100 // Full duplex mode
	BMCRANRestart  BMCR = 0x0200 // Restart auto-negotiation (self-clearing)
	BMCRIsolate    BMCR = 0x0400 // Isolate PHY from MII
	BMCRPowerDown  BMCR = 0x0800 // Power down PHY
	BMCRANEnable   BMCR = 0x1000 // Enable auto-negotiation
	BMCRSpeed100   BMCR = 0x2000 // LSB of speed select (100Mbps)
	BMCRLoopback   BMCR = 0x4000 // Enable TXD loopback
	BMCRReset      BMCR = 0x8000 // Software reset (self-clearing)

	bmcrSpeedMask BMCR = BMCRSpeed1000 | BMCRSpeed100
)

// IsResetting returns true while the self-clearing reset bit is still set.
func (c BMCR) IsResetting() bool { return c&BMCRReset != 0 }

// AutoNegotiationEnabled returns true if the PHY is configured to
// autonegotiate its link parameters.
func (c BMCR) AutoNegotiationEnabled() bool { return c&BMCRANEnable != 0 }

// IsIsolated returns true if the PHY is electrically isolated from the MII.
func (c BMCR) IsIsolated() bool { return c&BMCRIsolate != 0 }

// IsPoweredDown returns true if the PHY is in low-power mode.
func (c BMCR) IsPoweredDown() bool { return c&BMCRPowerDown != 0 }

// BMSR represents the Basic Mode Status Register at address 0x01.
// Reference: IEEE 802.3 Clause 22.2.4.2
type BMSR uint16

const (
	BMSRExtCap         BMSR = 0x0001 // Extended register set capability
	BMSRJabber         BMSR = 0x0002 // Jabber detected
	BMSRLinkStatus     BMSR = 0x0004 // Link status (1=up, latched low)
	BMSRANCap          BMSR = 0x0008 // Auto-negotiation capable
	BMSRRemoteFault    BMSR = 0x0010 // Remote fault detected
	BMSRANComplete     BMSR = 0x0020 // Auto-negotiation complete
	BMSRNoPreamble     BMSR = 0x0040 // Preamble suppression capable
	BMSRUnidirectional BMSR = 0x0080 // Unidirectional transmission capable
	BMSRExtStatus      BMSR = 0x0100 // Extended status in register 15
	BMSR100Half2       BMSR = 0x0200 // 100BASE-T2 half-duplex capable
	BMSR100Full2       BMSR = 0x0400 // 100BASE-T2 full-duplex capable
	BMSR10Half         BMSR = 0x0800 // 10Mbps half-duplex capable
	BMSR10Full         BMSR = 0x1000 // 10Mbps full-duplex capable
	BMSR100Half        BMSR = 0x2000 // 100BASE-X half-duplex capable
	BMSR100Full        BMSR = 0x4000 // 100BASE-X full-duplex capable
	BMSR100Base4       BMSR = 0x8000 // 100BASE-T4 capable
)

// LinkUp returns true if the PHY reports an established link.
// The underlying bit is latched low: after a link failure a first read
// returns false and a second read returns the current status.
func (s BMSR) LinkUp() bool { return s&BMSRLinkStatus != 0 }

// AutoNegotiationComplete returns true once the autonegotiation process
// has finished and link parameters are valid.
func (s BMSR) AutoNegotiationComplete() bool { return s&BMSRANComplete != 0 }

// ANAR represents the Auto-Negotiation Advertisement Register at address
// 0x04. ANLPAR (Link Partner Ability Register at 0x05) shares the layout.
// Reference: IEEE 802.3 Clause 28.2.4.1, Annex 28A, Annex 28B
type ANAR uint16

const (
	ANARSelector          ANAR = 0x001f // Selector field mask
	ANARSelector8023      ANAR = 0x0001 // IEEE 802.3 selector value
	ANARSelector8029Islan ANAR = 0x0002 // IEEE 802.9 ISLAN-16T selector value
	ANARSelector8025      ANAR = 0x0003 // IEEE 802.5 selector value
	ANARSelector1394      ANAR = 0x0005 // IEEE 1394 selector value
	ANAR10Half            ANAR = 0x0020 // 10BASE-T half-duplex
	ANAR10Full            ANAR = 0x0040 // 10BASE-T full-duplex
	ANAR100Half           ANAR = 0x0080 // 100BASE-TX half-duplex
	ANAR100Full           ANAR = 0x0100 // 100BASE-TX full-duplex
	ANAR100BaseT4         ANAR = 0x0200 // 100BASE-T4
	ANARPause             ANAR = 0x0400 // Symmetric pause capability
	ANARPauseAsym         ANAR = 0x0800 // Asymmetric pause capability
	ANARRemoteFault       ANAR = 0x2000 // Remote fault
	ANARAck               ANAR = 0x4000 // Acknowledge (ANLPAR only)
	ANARNextPage          ANAR = 0x8000 // Next page capable

	// Convenience masks
	ANARTechMask  ANAR = ANAR10Half | ANAR10Full | ANAR100Half | ANAR100Full | ANAR100BaseT4
	ANARPauseMask ANAR = ANARPause | ANARPauseAsym
)

// ANER represents the Auto-Negotiation Expansion Register at address 0x06.
// Reference: IEEE 802.3 Clause 28.2.4.1.5
type ANER uint16

const (
	ANERPartnerANCap       ANER = 0x0001 // Link partner is auto-negotiation able
	ANERPageReceived       ANER = 0x0002 // A new link code word page has been received
	ANERNextPageCap        ANER = 0x0004 // Local device is next page able
	ANERPartnerNextPageCap ANER = 0x0008 // Link partner is next page able
	ANERParallelFault      ANER = 0x0010 // Parallel detection fault
)

// ESR represents the Extended Status Register at address 0x0f, present
// only when BMSRExtStatus is set in the BMSR.
// Reference: IEEE 802.3 Clause 22.2.4.4
type ESR uint16

const (
	ESR1000HalfT ESR = 0x1000 // 1000BASE-T half-duplex capable
	ESR1000FullT ESR = 0x2000 // 1000BASE-T full-duplex capable
	ESR1000HalfX ESR = 0x4000 // 1000BASE-X half-duplex capable
	ESR1000FullX ESR = 0x8000 // 1000BASE-X full-duplex capable
)
