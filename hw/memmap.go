package hw

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/jx"

	"m6502/emu/log"
)

// Router-level errors.
var (
	ErrOverlap  = errors.New("device range overlaps an existing device")
	ErrUnmapped = errors.New("address is unmapped")
)

// A mapEntry binds a device to the range of global addresses it owns. Size
// and base are duplicated from the device so the dispatch loop never has to
// chase the device pointer for a range check.
type mapEntry struct {
	name string
	dev  *Device
	size uint32
	base uint32
}

func (e *mapEntry) contains(addr uint32) bool {
	return addr >= e.base && addr < e.base+e.size
}

// MemMap routes memory accesses to the device owning the address. Devices
// are registered at initialization; ranges never overlap. The zero value is
// an empty map that answers ErrUnmapped to everything.
type MemMap struct {
	entries []mapEntry
}

// Count returns the number of registered devices.
func (mm *MemMap) Count() int {
	return len(mm.entries)
}

// Read returns the byte at addr, delegating to the device owning it, or
// ErrUnmapped if no registered device claims addr.
//
// Entries are scanned in registration order. Since ranges are disjoint by
// construction, the first match is the only match: the scan is a plain
// linear search, not a priority rule.
func (mm *MemMap) Read(addr uint16) (uint8, error) {
	for i := range mm.entries {
		if mm.entries[i].contains(uint32(addr)) {
			return mm.entries[i].dev.Read(addr)
		}
	}
	log.ModMem.DebugZ("read at unmapped address").Hex16("addr", addr).End()
	return 0, ErrUnmapped
}

// Write stores val at addr, delegating to the device owning it, or returns
// ErrUnmapped if no registered device claims addr. A write landing on a
// mapped ROM succeeds and is ignored by the device; only an address with no
// owner at all is ErrUnmapped.
func (mm *MemMap) Write(addr uint16, val uint8) error {
	for i := range mm.entries {
		if mm.entries[i].contains(uint32(addr)) {
			return mm.entries[i].dev.Write(addr, val)
		}
	}
	log.ModMem.DebugZ("write at unmapped address").
		Hex16("addr", addr).
		Hex8("val", val).
		End()
	return ErrUnmapped
}

// Create constructs a zero-filled device of the requested kind and registers
// it in one step. RAM and MMIO both back onto a read-write device today.
// Registration fails with ErrOverlap if [base, base+size) intersects any
// already registered range, in which case the map is unchanged.
func (mm *MemMap) Create(name string, kind DeviceKind, size, base uint32) error {
	dev, err := NewDevice(kind, nil, size, base)
	if err != nil {
		return err
	}
	return mm.insert(name, dev, size, base)
}

func (mm *MemMap) insert(name string, dev *Device, size, base uint32) error {
	for i := range mm.entries {
		e := &mm.entries[i]

		// The new range collides if its start falls inside an existing
		// range, or if its (exclusive) end does.
		if base >= e.base && base < e.base+e.size {
			return fmt.Errorf("%s at 0x%04X: %w with %s", name, base, ErrOverlap, e.name)
		}
		if base+size > e.base && base+size <= e.base+e.size {
			return fmt.Errorf("%s at 0x%04X: %w with %s", name, base, ErrOverlap, e.name)
		}
	}

	log.ModMem.DebugZ("mapping device").
		String("name", name).
		String("kind", dev.Kind().String()).
		Hex32("base", base).
		Hex32("size", size).
		End()

	mm.entries = append(mm.entries, mapEntry{
		name: name,
		dev:  dev,
		size: size,
		base: base,
	})
	return nil
}

// Lookup returns the registered device with the given name, or nil. Useful
// to load an image into a device after registration.
func (mm *MemMap) Lookup(name string) *Device {
	for i := range mm.entries {
		if mm.entries[i].name == name {
			return mm.entries[i].dev
		}
	}
	return nil
}

// A TableRow describes one registered device: its name, kind and inclusive
// address range. Diagnostic view only.
type TableRow struct {
	Name       string
	Kind       DeviceKind
	Start, End uint32
}

// Table returns one row per registered device, in registration order.
func (mm *MemMap) Table() []TableRow {
	rows := make([]TableRow, 0, len(mm.entries))
	for i := range mm.entries {
		e := &mm.entries[i]
		rows = append(rows, TableRow{
			Name:  e.name,
			Kind:  e.dev.Kind(),
			Start: e.base,
			End:   e.base + e.size - 1,
		})
	}
	return rows
}

// Dump writes a formatted table of the registered devices. Diagnostic only,
// no state effect.
func (mm *MemMap) Dump(w io.Writer) {
	fmt.Fprintf(w, "%-12s | %-10s | %-13s | %-13s\n", "Device Name", "Device Type", "Start Address", "End Address")
	fmt.Fprintf(w, "%s-+-%s-+-%s-+-%s\n",
		strings.Repeat("-", 12), strings.Repeat("-", 10),
		strings.Repeat("-", 13), strings.Repeat("-", 13))
	for _, row := range mm.Table() {
		fmt.Fprintf(w, "%-12s | %-10s | 0x%04x        | 0x%04x\n",
			row.Name, row.Kind, row.Start, row.End)
	}
}

// DumpJSON writes the same rows as Dump, as a JSON array. Diagnostic only.
func (mm *MemMap) DumpJSON(w io.Writer) error {
	var e jx.Encoder

	e.ArrStart()
	for _, row := range mm.Table() {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(row.Name)
		e.FieldStart("kind")
		e.Str(row.Kind.String())
		e.FieldStart("start")
		e.UInt32(row.Start)
		e.FieldStart("end")
		e.UInt32(row.End)
		e.ObjEnd()
	}
	e.ArrEnd()

	_, err := w.Write(e.Bytes())
	return err
}
