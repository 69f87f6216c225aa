package miim

import (
	"log/slog"

	"github.com/j4ger/ieee802-3-miim/internal"
)

// LevelTrace is the level at which Tracer logs individual bus
// transactions, below [slog.LevelDebug].
const LevelTrace = internal.LevelTrace

var _ Miim = (*Tracer)(nil) // compile time guarantee of interface implementation.

// Tracer wraps a Miim and logs every register access at [LevelTrace].
// Useful when debugging multi-step register sequences against real
// hardware. A nil logger disables logging entirely.
type Tracer struct {
	bus Miim
	log *slog.Logger
}

// Configure resets the tracer to forward to bus and log to logger.
// logger may be nil, in which case the tracer is a transparent wrapper.
func (t *Tracer) Configure(bus Miim, logger *slog.Logger) error {
	if bus == nil {
		return ErrInvalidConfig
	}
	t.bus = bus
	t.log = logger
	return nil
}

// Read implements [Miim].
func (t *Tracer) Read(phyAddr, regAddr uint8) (uint16, error) {
	value, err := t.bus.Read(phyAddr, regAddr)
	if internal.LogEnabled(t.log, LevelTrace) {
		attrs := []slog.Attr{
			slog.Int("phy", int(phyAddr)),
			slog.Int("reg", int(regAddr)),
			slog.Uint64("value", uint64(value)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("err", err.Error()))
		}
		internal.LogAttrs(t.log, LevelTrace, "miim:read", attrs...)
	}
	return value, err
}

// Write implements [Miim].
func (t *Tracer) Write(phyAddr, regAddr uint8, value uint16) error {
	err := t.bus.Write(phyAddr, regAddr, value)
	if internal.LogEnabled(t.log, LevelTrace) {
		attrs := []slog.Attr{
			slog.Int("phy", int(phyAddr)),
			slog.Int("reg", int(regAddr)),
			slog.Uint64("value", uint64(value)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("err", err.Error()))
		}
		internal.LogAttrs(t.log, LevelTrace, "miim:write", attrs...)
	}
	return err
}
