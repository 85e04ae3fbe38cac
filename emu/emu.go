// Package emu wires the hardware components into a machine: it builds the
// memory map from a configured layout and exposes the reset and image
// loading entry points.
package emu

import (
	"fmt"
	"os"

	"m6502/emu/log"
	"m6502/hw"
)

// Machine owns the CPU register file and the memory map. It is not
// goroutine-safe: a single caller drives it, as the hardware would be driven
// by a single clock.
type Machine struct {
	CPU *hw.CPU
	Mem *hw.MemMap
}

// PowerUp builds the machine described by cfg, registering devices in
// configuration order. A layout with overlapping devices is a configuration
// error and fails power up.
func PowerUp(cfg Config) (*Machine, error) {
	m := &Machine{
		CPU: &hw.CPU{},
		Mem: &hw.MemMap{},
	}

	for _, dc := range cfg.Devices {
		kind, err := dc.DeviceKind()
		if err != nil {
			return nil, err
		}
		if err := m.Mem.Create(dc.Name, kind, dc.Size, dc.Base); err != nil {
			return nil, fmt.Errorf("power up failed: %w", err)
		}
	}

	log.ModEmu.InfoZ("machine powered up").
		Int("devices", m.Mem.Count()).
		End()
	return m, nil
}

// WarmReset resets the CPU, leaving memory content in place.
func (m *Machine) WarmReset() {
	m.CPU.Reset()
}

// ColdReset clears every writable device and resets the CPU. ROM content
// survives, as it would on real hardware.
func (m *Machine) ColdReset() {
	for _, name := range m.writableDevices() {
		// Loading an empty image resets the device to all zeroes.
		if err := m.Mem.Lookup(name).Load(nil); err != nil {
			log.ModEmu.ErrorZ("cold reset").String("device", name).Error("err", err).End()
		}
	}
	m.CPU.Reset()
}

func (m *Machine) writableDevices() []string {
	var names []string
	for _, row := range m.Mem.Table() {
		if row.Kind != hw.ROM {
			names = append(names, row.Name)
		}
	}
	return names
}

// LoadImage reads the file at path and loads it into the named device. The
// image replaces the whole device content; a file larger than the device
// capacity is rejected.
func (m *Machine) LoadImage(name, path string) error {
	dev := m.Mem.Lookup(name)
	if dev == nil {
		return fmt.Errorf("no device named %q", name)
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := dev.Load(image); err != nil {
		return fmt.Errorf("loading %s into %s (%d bytes): %w", path, name, dev.Size(), err)
	}

	log.ModEmu.InfoZ("image loaded").
		String("device", name).
		String("path", path).
		Int("bytes", len(image)).
		End()
	return nil
}
