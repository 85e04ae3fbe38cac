package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"m6502/emu/log"
	"m6502/hw"
)

// Config describes the machine layout: one [[device]] block per memory
// device, in registration order.
type Config struct {
	Devices []DeviceConfig `toml:"device"`
}

type DeviceConfig struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"` // ram, rom or mmio
	Size uint32 `toml:"size"`
	Base uint32 `toml:"base"`
}

// DeviceKind maps the textual kind to its hw tag.
func (dc DeviceConfig) DeviceKind() (hw.DeviceKind, error) {
	switch dc.Kind {
	case "ram":
		return hw.RAM, nil
	case "rom":
		return hw.ROM, nil
	case "mmio":
		return hw.MMIO, nil
	}
	return 0, fmt.Errorf("device %q: unknown kind %q", dc.Name, dc.Kind)
}

// DefaultConfig is the stock layout: 16K of RAM at the bottom of the address
// space, a 16K I/O window, and 32K of ROM at the top.
func DefaultConfig() Config {
	return Config{
		Devices: []DeviceConfig{
			{Name: "RAM", Kind: "ram", Size: 0x4000, Base: 0x0000},
			{Name: "IO", Kind: "mmio", Size: 0x4000, Base: 0x4000},
			{Name: "ROM", Kind: "rom", Size: 0x8000, Base: 0x8000},
		},
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("m6502")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the machine layout from path, or from the m6502
// config directory if path is empty, falling back to the default layout if
// no file exists.
func LoadConfigOrDefault(path string) Config {
	if path == "" {
		path = filepath.Join(ConfigDir, cfgFilename)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.ModEmu.DebugZ("no config file, using default layout").
			String("path", path).
			Error("err", err).
			End()
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into the m6502 config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
