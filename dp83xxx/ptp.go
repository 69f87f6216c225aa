package dp83xxx

// PTPCTL is the hardware clock control register of the DP83640.
type PTPCTL uint16

const (
	PTPCTLReset     PTPCTL = 1 << 0 // Reset the PTP clock
	PTPCTLDisable   PTPCTL = 1 << 1 // Disable the PTP clock
	PTPCTLEnable    PTPCTL = 1 << 2 // Enable the PTP clock
	PTPCTLLoadClock PTPCTL = 1 << 4 // Load the time register into the clock
	PTPCTLReadClock PTPCTL = 1 << 5 // Latch the clock into the time register
)

// Hardware clock registers, all on the same vendor page.
var (
	regPTPCTL   = ExtAddr{Page: 0b100, Offset: 0x14}
	regPTPTime  = ExtAddr{Page: 0b100, Offset: 0x15}
	regPTPRateL = ExtAddr{Page: 0b100, Offset: 0x18}
	regPTPRateH = ExtAddr{Page: 0b100, Offset: 0x19}
)

func (d *DP83640) ptpctl() (PTPCTL, error) {
	raw, err := d.ReadExt(regPTPCTL)
	return PTPCTL(raw), err
}

// Started reports whether the hardware clock is enabled.
func (d *DP83640) Started() (bool, error) {
	ctl, err := d.ptpctl()
	return ctl&PTPCTLEnable != 0, err
}

func (d *DP83640) modifyPTPCTL(set PTPCTL) error {
	ctl, err := d.ptpctl()
	if err != nil {
		return err
	}
	return d.WriteExt(regPTPCTL, uint16(ctl|set))
}

// StartPTP enables the hardware clock.
func (d *DP83640) StartPTP() error {
	return d.modifyPTPCTL(PTPCTLEnable)
}

// StopPTP disables the hardware clock.
func (d *DP83640) StopPTP() error {
	return d.modifyPTPCTL(PTPCTLDisable)
}

// ResetClock resets the hardware clock.
func (d *DP83640) ResetClock() error {
	return d.modifyPTPCTL(PTPCTLReset)
}

// SetClock loads value into the hardware clock. The load bit is
// composed into the control word alongside all preserved bits and
// written as a single write after the time register, which the device
// requires for the load to take effect.
func (d *DP83640) SetClock(value uint16) error {
	ctl, err := d.ptpctl()
	if err != nil {
		return err
	}
	err = d.WriteExt(regPTPTime, value)
	if err != nil {
		return err
	}
	return d.WriteExt(regPTPCTL, uint16(ctl|PTPCTLLoadClock))
}

// ReadClock latches the running clock into the time register and reads
// it back.
func (d *DP83640) ReadClock() (uint16, error) {
	err := d.modifyPTPCTL(PTPCTLReadClock)
	if err != nil {
		return 0, err
	}
	return d.ReadExt(regPTPTime)
}

// SetRateControl sets the 32-bit clock rate adjustment, split across
// the high and low rate registers. The two writes are independent: a
// reader observing the pair between them sees a torn value. The device
// register layout offers no latch to make the update atomic.
func (d *DP83640) SetRateControl(rate uint32) error {
	err := d.WriteExt(regPTPRateH, uint16(rate>>16))
	if err != nil {
		return err
	}
	return d.WriteExt(regPTPRateL, uint16(rate))
}
