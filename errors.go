package miim

type errValue uint8

// Errors common to PHY management. These perform no allocations.
const (
	_                errValue = iota // non-initialized err
	ErrShortBuffer                   // buffer too short
	ErrBadPHYAddr                    // PHY address exceeds 31
	ErrBadRegAddr                    // register address exceeds 31
	ErrInvalidConfig                 // invalid configuration
)

func (err errValue) Error() string {
	switch err {
	case ErrShortBuffer:
		return "buffer too short"
	case ErrBadPHYAddr:
		return "PHY address exceeds 31"
	case ErrBadRegAddr:
		return "register address exceeds 31"
	case ErrInvalidConfig:
		return "invalid configuration"
	}
	return "unknown miim error"
}
