package emu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"m6502/hw"
)

func powerUpDefault(tb testing.TB) *Machine {
	tb.Helper()

	m, err := PowerUp(DefaultConfig())
	if err != nil {
		tb.Fatalf("PowerUp(): %v", err)
	}
	return m
}

func TestPowerUp(t *testing.T) {
	m := powerUpDefault(t)

	want := []hw.TableRow{
		{Name: "RAM", Kind: hw.RAM, Start: 0x0000, End: 0x3FFF},
		{Name: "IO", Kind: hw.MMIO, Start: 0x4000, End: 0x7FFF},
		{Name: "ROM", Kind: hw.ROM, Start: 0x8000, End: 0xFFFF},
	}
	if diff := cmp.Diff(want, m.Mem.Table()); diff != "" {
		t.Errorf("memory map mismatch (-want +got):\n%s", diff)
	}
}

func TestPowerUpOverlap(t *testing.T) {
	cfg := Config{
		Devices: []DeviceConfig{
			{Name: "RAM", Kind: "ram", Size: 0x4000, Base: 0x0000},
			{Name: "More RAM", Kind: "ram", Size: 0x4000, Base: 0x2000},
		},
	}
	if _, err := PowerUp(cfg); !errors.Is(err, hw.ErrOverlap) {
		t.Fatalf("PowerUp() error = %v, want ErrOverlap", err)
	}
}

func TestPowerUpUnknownKind(t *testing.T) {
	cfg := Config{
		Devices: []DeviceConfig{
			{Name: "TAPE", Kind: "tape", Size: 0x4000, Base: 0x0000},
		},
	}
	if _, err := PowerUp(cfg); err == nil {
		t.Fatal("PowerUp() should fail on unknown device kind")
	}
}

func TestWarmReset(t *testing.T) {
	m := powerUpDefault(t)

	m.CPU.A = 0x12
	m.CPU.PC = 0x8000
	if err := m.Mem.Write(0x0000, 0x42); err != nil {
		t.Fatal(err)
	}

	m.WarmReset()

	if m.CPU.A != 0 || m.CPU.PC != 0 {
		t.Errorf("WarmReset() left CPU %+v, want all zero", *m.CPU)
	}
	if got, _ := m.Mem.Read(0x0000); got != 0x42 {
		t.Errorf("WarmReset() touched RAM: Read(0x0000) = 0x%02X, want 0x42", got)
	}
}

func TestColdReset(t *testing.T) {
	m := powerUpDefault(t)

	m.CPU.A = 0x12
	if err := m.Mem.Write(0x0000, 0x42); err != nil {
		t.Fatal(err)
	}
	if err := m.Mem.Lookup("ROM").Load([]byte{0xEA, 0xEA}); err != nil {
		t.Fatal(err)
	}

	m.ColdReset()

	if m.CPU.A != 0 {
		t.Errorf("ColdReset() left CPU %+v, want all zero", *m.CPU)
	}
	if got, _ := m.Mem.Read(0x0000); got != 0 {
		t.Errorf("ColdReset() left RAM: Read(0x0000) = 0x%02X, want 0x00", got)
	}
	// ROM content survives a cold reset.
	if got, _ := m.Mem.Read(0x8000); got != 0xEA {
		t.Errorf("ColdReset() cleared ROM: Read(0x8000) = 0x%02X, want 0xEA", got)
	}
}

func TestLoadImage(t *testing.T) {
	m := powerUpDefault(t)

	path := filepath.Join(t.TempDir(), "prog.bin")
	if err := os.WriteFile(path, []byte{0x12, 0x34, 0x56, 0x78}, 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.LoadImage("ROM", path); err != nil {
		t.Fatalf("LoadImage(): %v", err)
	}

	for i, want := range []uint8{0x12, 0x34, 0x56, 0x78} {
		if got, err := m.Mem.Read(0x8000 + uint16(i)); err != nil || got != want {
			t.Errorf("Read(0x%04X) = 0x%02X, %v, want 0x%02X", 0x8000+i, got, err, want)
		}
	}
}

func TestLoadImageTooLarge(t *testing.T) {
	m := powerUpDefault(t)

	path := filepath.Join(t.TempDir(), "toobig.bin")
	if err := os.WriteFile(path, make([]byte, 0x8001), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.LoadImage("ROM", path); !errors.Is(err, hw.ErrOutOfBounds) {
		t.Fatalf("LoadImage() error = %v, want ErrOutOfBounds", err)
	}
}

func TestLoadImageUnknownDevice(t *testing.T) {
	m := powerUpDefault(t)

	if err := m.LoadImage("FLOPPY", "whatever.bin"); err == nil {
		t.Fatal("LoadImage() should fail on unknown device")
	}
}
