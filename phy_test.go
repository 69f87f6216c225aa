package miim

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/j4ger/ieee802-3-miim/internal/miimtest"
)

const testPhyAddr = 1

func newTestPHY(t *testing.T, bmsr BMSR) (*Device, *miimtest.Bus, *miimtest.Bank) {
	t.Helper()
	bank := &miimtest.Bank{}
	bank.Regs[AddrBMSR] = uint16(bmsr)
	bus := &miimtest.Bus{}
	bus.Attach(testPhyAddr, bank)
	var d Device
	err := d.Configure(bus, testPhyAddr)
	if err != nil {
		t.Fatal(err)
	}
	return &d, bus, bank
}

func TestConfigureBadArgs(t *testing.T) {
	var d Device
	if err := d.Configure(&miimtest.Bus{}, 32); err != ErrBadPHYAddr {
		t.Errorf("got %v, want %v", err, ErrBadPHYAddr)
	}
	if err := d.Configure(nil, 0); err != ErrInvalidConfig {
		t.Errorf("got %v, want %v", err, ErrInvalidConfig)
	}
}

func TestGatingWithoutExtendedCaps(t *testing.T) {
	// BMSR reports capabilities but no extended register set. The
	// registers beyond BMSR hold garbage and must never be read.
	d, bus, bank := newTestPHY(t, BMSR10Half|BMSR100Full|BMSRANCap)
	bank.Regs[AddrPhyID1] = 0xdead
	bank.Regs[AddrPhyID2] = 0xbeef
	bank.Regs[AddrANAR] = 0xffff
	bank.Regs[AddrANLPAR] = 0xffff

	if _, ok, err := d.Ident(); ok || err != nil {
		t.Errorf("Ident: ok=%v err=%v, want not applicable", ok, err)
	}
	if _, ok, err := d.Advertisement(); ok || err != nil {
		t.Errorf("Advertisement: ok=%v err=%v, want not applicable", ok, err)
	}
	if _, ok, err := d.PartnerAdvertisement(); ok || err != nil {
		t.Errorf("PartnerAdvertisement: ok=%v err=%v, want not applicable", ok, err)
	}
	if _, ok, err := d.Expansion(); ok || err != nil {
		t.Errorf("Expansion: ok=%v err=%v, want not applicable", ok, err)
	}
	err := d.SetAdvertisement(DefaultAdvertisement())
	if err != nil {
		t.Errorf("SetAdvertisement: %v, want silent no-op", err)
	}
	if w := bus.Writes(); len(w) != 0 {
		t.Errorf("gated operations performed %d writes: %+v", len(w), w)
	}
	for _, op := range bus.Ops {
		if op.RegAddr != AddrBMSR {
			t.Errorf("gated operation read register %d", op.RegAddr)
		}
	}
}

func TestSetAdvertisementIntersection(t *testing.T) {
	// Hardware supports 10BASE-T half and 100BASE-TX full only.
	d, bus, bank := newTestPHY(t, BMSRExtCap|BMSRANCap|BMSR10Half|BMSR100Full)

	ad := DefaultAdvertisement()
	ad.HD10BaseT = true
	ad.FD10BaseT = true // unsupported, must be dropped
	ad.FD100BaseTX = true
	ad.Pause = PauseSymmetric
	err := d.SetAdvertisement(ad)
	if err != nil {
		t.Fatal(err)
	}

	writes := bus.Writes()
	if len(writes) != 2 {
		t.Fatalf("expected 2 writes (ANAR, BMCR), got %+v", writes)
	}
	// Capability register is written strictly before the restart pulse.
	if writes[0].RegAddr != AddrANAR {
		t.Fatalf("first write went to register %d, want ANAR", writes[0].RegAddr)
	}
	wantANAR := ANARSelector8023 | ANAR10Half | ANAR100Full | ANARPause
	if got := ANAR(writes[0].Value); got != wantANAR {
		t.Errorf("ANAR: got %#04x, want %#04x", uint16(got), uint16(wantANAR))
	}
	if writes[1].RegAddr != AddrBMCR {
		t.Fatalf("second write went to register %d, want BMCR", writes[1].RegAddr)
	}
	ctl := BMCR(writes[1].Value)
	if ctl&BMCRANEnable == 0 || ctl&BMCRANRestart == 0 {
		t.Errorf("BMCR write %#04x lacks autoneg enable/restart", uint16(ctl))
	}
	if got := ANAR(bank.Regs[AddrANAR]); got != wantANAR {
		t.Errorf("ANAR register: got %#04x, want %#04x", uint16(got), uint16(wantANAR))
	}
}

func TestReadBackAdvertisements(t *testing.T) {
	d, _, bank := newTestPHY(t, BMSRExtCap|BMSRANCap)
	local := ANARSelector8023 | ANAR10Half | ANARPause
	partner := ANARSelector8023 | ANAR10Half | ANAR10Full
	bank.Regs[AddrANAR] = uint16(local)
	bank.Regs[AddrANLPAR] = uint16(partner)

	ad, ok, err := d.Advertisement()
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got := ad.ANAR(); got != local {
		t.Errorf("local: got %#04x, want %#04x", uint16(got), uint16(local))
	}
	pad, ok, err := d.PartnerAdvertisement()
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got := pad.ANAR(); got != partner {
		t.Errorf("partner: got %#04x, want %#04x", uint16(got), uint16(partner))
	}
}

func TestIdent(t *testing.T) {
	d, _, bank := newTestPHY(t, BMSRExtCap)
	bank.Regs[AddrPhyID1] = 0x2000
	bank.Regs[AddrPhyID2] = 0b0000_0011_0101_0110
	id, ok, err := d.Ident()
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if id.ID1 != 0x2000 || id.ModelNumber() != 53 || id.Revision() != 6 {
		t.Errorf("got %+v model=%d rev=%d", id, id.ModelNumber(), id.Revision())
	}
}

func TestExtendedStatusGating(t *testing.T) {
	d, bus, bank := newTestPHY(t, BMSR10Half)
	bank.Regs[AddrESR] = 0xffff
	if _, ok, err := d.ExtendedStatus(); ok || err != nil {
		t.Fatalf("ok=%v err=%v, want not applicable", ok, err)
	}
	for _, op := range bus.Ops {
		if op.RegAddr == AddrESR {
			t.Error("ESR read despite missing extended status capability")
		}
	}

	d2, _, bank2 := newTestPHY(t, BMSRExtStatus)
	bank2.Regs[AddrESR] = uint16(ESR1000FullT | ESR1000HalfX)
	es, ok, err := d2.ExtendedStatus()
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	want := ExtendedPhyStatus{FD1000BaseT: true, HD1000BaseX: true}
	if es != want {
		t.Errorf("got %+v, want %+v", es, want)
	}
}

func TestBlockingReset(t *testing.T) {
	d, bus, bank := newTestPHY(t, BMSRANCap)
	bank.ResetLatency = 3
	err := d.BlockingReset()
	if err != nil {
		t.Fatal(err)
	}
	if bank.Regs[AddrBMCR]&uint16(BMCRReset) != 0 {
		t.Error("reset bit still set after BlockingReset")
	}
	var polls int
	for _, op := range bus.Ops {
		if !op.Write && op.RegAddr == AddrBMCR {
			polls++
		}
	}
	// One read for the read-modify-write plus at least latency+1 polls.
	if polls < 4 {
		t.Errorf("expected several BMCR polls, got %d", polls)
	}
}

func TestSetLinkSpeed(t *testing.T) {
	d, _, bank := newTestPHY(t, 0)
	bank.Regs[AddrBMCR] = uint16(BMCRANEnable | BMCRSpeed100)
	err := d.SetLinkSpeed(Speed1000)
	if err != nil {
		t.Fatal(err)
	}
	got := BMCR(bank.Regs[AddrBMCR])
	if got.LinkSpeed() != Speed1000 {
		t.Errorf("speed bits: got %s", got.LinkSpeed())
	}
	if got&BMCRANEnable == 0 {
		t.Error("unrelated BMCR bits were not preserved")
	}
}

func TestNegotiatedLink(t *testing.T) {
	d, _, bank := newTestPHY(t, BMSRExtCap|BMSRANCap|BMSRANComplete)
	bank.Regs[AddrANAR] = uint16(ANARSelector8023 | ANAR10Full | ANAR100Full)
	bank.Regs[AddrANLPAR] = uint16(ANARSelector8023 | ANAR10Full)
	lm, err := d.NegotiatedLink()
	if err != nil {
		t.Fatal(err)
	}
	if lm != Link10FDX {
		t.Errorf("got %s, want %s", lm, Link10FDX)
	}

	// Not complete yet: no register beyond BMSR may be consulted.
	d2, _, bank2 := newTestPHY(t, BMSRANCap)
	bank2.Regs[AddrANLPAR] = 0xffff
	_, err = d2.NegotiatedLink()
	if err == nil {
		t.Error("expected error while autonegotiation incomplete")
	}
}

func TestFindPHYs(t *testing.T) {
	bus := &miimtest.Bus{}
	for _, addr := range []uint8{3, 17} {
		bank := &miimtest.Bank{}
		bank.Regs[AddrBMSR] = uint16(BMSRANCap | BMSR10Half)
		bus.Attach(addr, bank)
	}
	var dst [32]uint8
	n, err := FindPHYs(bus, dst[:])
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || dst[0] != 3 || dst[1] != 17 {
		t.Errorf("got n=%d addrs=%v", n, dst[:n])
	}

	if _, err = FindPHYs(bus, dst[:10]); err != ErrShortBuffer {
		t.Errorf("short buffer: got %v", err)
	}
	if _, err = FindPHYs(&miimtest.Bus{}, dst[:]); err == nil {
		t.Error("empty bus: expected error")
	}
}

func TestTracer(t *testing.T) {
	_, bus, bank := newTestPHY(t, BMSRANCap)
	bank.Regs[AddrBMSR] = uint16(BMSRANCap)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	var tr Tracer
	err := tr.Configure(bus, logger)
	if err != nil {
		t.Fatal(err)
	}
	var d Device
	if err := d.Configure(&tr, testPhyAddr); err != nil {
		t.Fatal(err)
	}
	stat, err := d.BasicStatus()
	if err != nil {
		t.Fatal(err)
	}
	if stat != BMSRANCap {
		t.Errorf("traced read altered value: %#04x", uint16(stat))
	}
	if !bytes.Contains(buf.Bytes(), []byte("miim:read")) {
		t.Errorf("trace output missing read record: %q", buf.String())
	}
}
