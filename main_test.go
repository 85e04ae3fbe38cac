package main

import (
	"bytes"
	"strings"
	"testing"

	"m6502/hw"
)

func TestHexdump(t *testing.T) {
	var mm hw.MemMap
	if err := mm.Create("RAM", hw.RAM, 8, 0x0000); err != nil {
		t.Fatal(err)
	}
	for i := uint16(0); i < 8; i++ {
		if err := mm.Write(i, uint8(i)*0x11); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	hexdump(&buf, &mm, 0x0000, 0x0007)

	want := "0000  00 11 22 33 44 55 66 77" + strings.Repeat("   ", 8) + "\n"
	if buf.String() != want {
		t.Errorf("hexdump() = %q, want %q", buf.String(), want)
	}
}

func TestHexdumpUnmapped(t *testing.T) {
	var mm hw.MemMap
	if err := mm.Create("RAM", hw.RAM, 4, 0x0000); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	hexdump(&buf, &mm, 0x0000, 0x000F)

	// The 12 bytes past the device are unmapped.
	want := "0000  00 00 00 00" + strings.Repeat(" --", 12) + "\n"
	if buf.String() != want {
		t.Errorf("hexdump() = %q, want %q", buf.String(), want)
	}
}

func TestHexdumpLastRow(t *testing.T) {
	var mm hw.MemMap
	if err := mm.Create("ROM", hw.ROM, 0x8000, 0x8000); err != nil {
		t.Fatal(err)
	}

	// Dumping up to the very top of the address space must terminate.
	var buf bytes.Buffer
	hexdump(&buf, &mm, 0xFFF0, 0xFFFF)

	want := "fff0 " + strings.Repeat(" 00", 16) + "\n"
	if buf.String() != want {
		t.Errorf("hexdump() = %q, want %q", buf.String(), want)
	}
}
