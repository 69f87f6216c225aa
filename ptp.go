package miim

// PTPClock is the contract for PHYs with a hardware IEEE 1588 (PTP)
// timestamp clock controlled through management registers.
//
// Every operation is a multi-step register sequence over the Miim bus
// and requires exclusive use of the bus until it returns.
type PTPClock interface {
	// StartPTP enables the hardware clock.
	StartPTP() error
	// StopPTP disables the hardware clock.
	StopPTP() error
	// Started reports whether the hardware clock is enabled.
	Started() (bool, error)
	// ResetClock resets the hardware clock.
	ResetClock() error
	// SetClock loads a raw value into the time register.
	SetClock(value uint16) error
	// ReadClock latches and reads the time register.
	ReadClock() (uint16, error)
	// SetRateControl sets the 32-bit clock rate adjustment value.
	SetRateControl(rate uint32) error
}
