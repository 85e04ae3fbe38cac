package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"m6502/emu"
	"m6502/hw"
)

const version = "0.1.0"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case showMode:
		showMain(cli)
	case dumpMode:
		dumpMain(cli)
	case versionMode:
		fmt.Println("m6502", version)
	}
}

// powerUp builds the machine from the layout file and optionally loads an
// image into one of its devices.
func powerUp(cli CLI, rom, device string) *emu.Machine {
	cfg := emu.LoadConfigOrDefault(cli.Config)
	m, err := emu.PowerUp(cfg)
	checkf(err, "failed to power up")

	if rom != "" {
		checkf(m.LoadImage(device, rom), "failed to load image")
	}
	return m
}

func showMain(cli CLI) {
	m := powerUp(cli, cli.Show.Rom, cli.Show.Device)

	if cli.Show.JSON {
		checkf(m.Mem.DumpJSON(os.Stdout), "failed to dump memory map")
		fmt.Println()
		return
	}
	m.Mem.Dump(os.Stdout)
}

func dumpMain(cli CLI) {
	if cli.Dump.To < cli.Dump.From {
		fatalf("empty range: --to is lower than --from")
	}

	m := powerUp(cli, cli.Dump.Rom, cli.Dump.Device)
	hexdump(os.Stdout, m.Mem, uint16(cli.Dump.From), uint16(cli.Dump.To))
}

// hexdump writes the content of [from, to] in rows of 16 bytes, showing
// unmapped addresses as "--".
func hexdump(w io.Writer, mm *hw.MemMap, from, to uint16) {
	for base := from &^ 0xF; ; base += 16 {
		fmt.Fprintf(w, "%04x ", base)
		for i := uint16(0); i < 16; i++ {
			addr := base + i
			if addr < from || addr > to {
				fmt.Fprint(w, "   ")
				continue
			}
			val, err := mm.Read(addr)
			if errors.Is(err, hw.ErrUnmapped) {
				fmt.Fprint(w, " --")
				continue
			}
			fmt.Fprintf(w, " %02x", val)
		}
		fmt.Fprintln(w)

		if base+16 == 0 || base+16 > to {
			break
		}
	}
}
