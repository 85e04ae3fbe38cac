package emu

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

func TestConfigDecode(t *testing.T) {
	const doc = `
[[device]]
name = "RAM"
kind = "ram"
size = 0x4000
base = 0x0000

[[device]]
name = "ROM"
kind = "rom"
size = 0x8000
base = 0x8000
`
	var cfg Config
	if _, err := toml.Decode(doc, &cfg); err != nil {
		t.Fatalf("Decode(): %v", err)
	}

	want := Config{
		Devices: []DeviceConfig{
			{Name: "RAM", Kind: "ram", Size: 0x4000, Base: 0x0000},
			{Name: "ROM", Kind: "rom", Size: 0x8000, Base: 0x8000},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDeviceKind(t *testing.T) {
	for _, dc := range DefaultConfig().Devices {
		if _, err := dc.DeviceKind(); err != nil {
			t.Errorf("DeviceKind(%q): %v", dc.Kind, err)
		}
	}

	bad := DeviceConfig{Name: "TAPE", Kind: "tape"}
	if _, err := bad.DeviceKind(); err == nil {
		t.Error("DeviceKind() should fail on unknown kind")
	}
}
