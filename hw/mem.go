// Package hw models the memory hardware of a simple 8-bit microcomputer: a
// set of byte-addressable devices (RAM, ROM, memory-mapped I/O), each owning
// a contiguous range of the 16-bit address space, and the memory map that
// routes CPU accesses to them.
package hw

import (
	"errors"
	"fmt"
)

// Device-level errors. ErrReadOnly and ErrWriteOnly are reserved for future
// MMIO devices with asymmetric ports; no current device kind produces them.
var (
	ErrOutOfBounds = errors.New("address out of bounds")
	ErrReadOnly    = errors.New("device is read-only")
	ErrWriteOnly   = errors.New("device is write-only")
)

// DeviceKind tags the behaviour of a memory device. The set of kinds is
// closed: dispatch is a switch on the tag, not an interface call.
type DeviceKind uint8

const (
	RAM  DeviceKind = iota // read-write memory
	ROM                    // read-only memory, writes are silently ignored
	MMIO                   // memory-mapped I/O (backed by plain RAM for now)
)

func (k DeviceKind) String() string {
	switch k {
	case RAM:
		return "RAM"
	case ROM:
		return "ROM"
	case MMIO:
		return "MMIO"
	}
	return fmt.Sprintf("DeviceKind(%d)", uint8(k))
}

// A Device is a unit of storage answering to a contiguous range
// [base, base+size) of the global address space. The backing buffer always
// has exactly size bytes.
type Device struct {
	kind DeviceKind
	data []byte
	size uint32
	base uint32
}

// NewDevice creates a device of the given kind and capacity, mapped at base,
// initialized with image. An image shorter than size is zero-padded, an
// image longer than size is rejected with ErrOutOfBounds.
func NewDevice(kind DeviceKind, image []byte, size, base uint32) (*Device, error) {
	dev := &Device{
		kind: kind,
		data: make([]byte, size),
		size: size,
		base: base,
	}
	if err := dev.Load(image); err != nil {
		return nil, err
	}
	return dev, nil
}

// Kind returns the device kind tag.
func (d *Device) Kind() DeviceKind { return d.kind }

// Size returns the device capacity in bytes.
func (d *Device) Size() uint32 { return d.size }

// Base returns the first global address the device answers to.
func (d *Device) Base() uint32 { return d.base }

func (d *Device) contains(addr uint16) bool {
	a := uint32(addr)
	return a >= d.base && a < d.base+d.size
}

// Read returns the byte at the given global address, or ErrOutOfBounds if
// the address is outside [base, base+size).
func (d *Device) Read(addr uint16) (uint8, error) {
	if !d.contains(addr) {
		return 0, ErrOutOfBounds
	}
	return d.data[uint32(addr)-d.base], nil
}

// Write stores val at the given global address. For ROM the write is
// silently ignored and always succeeds, whatever the address: ignoring
// writes is the device policy, not a bounds bypass. For RAM and MMIO an
// address outside the device range is ErrOutOfBounds.
func (d *Device) Write(addr uint16, val uint8) error {
	if d.kind == ROM {
		return nil
	}
	if !d.contains(addr) {
		return ErrOutOfBounds
	}
	d.data[uint32(addr)-d.base] = val
	return nil
}

// Load replaces the whole device content with image: storage is reset to
// size zero bytes, then image is copied at the low addresses. An image
// larger than the device capacity is rejected with ErrOutOfBounds and the
// previous content is left untouched.
func (d *Device) Load(image []byte) error {
	if uint32(len(image)) > d.size {
		return ErrOutOfBounds
	}
	clear(d.data)
	copy(d.data, image)
	return nil
}

// At returns the byte at the given global address, panicking if the address
// is outside the device range. It is the fail-fast counterpart of Read, for
// call sites where an out-of-range address is a programming error.
func (d *Device) At(addr uint16) uint8 {
	// A wrapped subtraction lands outside the buffer, so the slice bounds
	// check catches addresses below base as well as above the range.
	return d.data[uint32(addr)-d.base]
}

// SetAt stores val at the given global address, panicking if the address is
// outside the device range or if the device is read-only. Fail-fast
// counterpart of Write.
func (d *Device) SetAt(addr uint16, val uint8) {
	if d.kind == ROM {
		panic(fmt.Sprintf("SetAt on read-only device at 0x%04X", addr))
	}
	d.data[uint32(addr)-d.base] = val
}
