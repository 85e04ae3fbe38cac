package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"m6502/emu/log"
)

type mode byte

const (
	showMode    mode = iota // Print the memory map
	dumpMode                // Hexdump an address range
	versionMode             // Show version
)

type (
	CLI struct {
		Show    Show    `cmd:"" help:"Print the memory map. (default command)" default:"true"`
		Dump    Dump    `cmd:"" help:"Hexdump a range of the address space."`
		Version Version `cmd:"" help:"Show m6502 version."`

		Config string     `help:"Path to the machine layout file." placeholder:"FILE" type:"existingfile"`
		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Show struct {
		Rom    string `name:"rom" help:"${rom_help}" placeholder:"FILE" type:"existingfile"`
		Device string `name:"device" help:"Device receiving the image." default:"ROM"`
		JSON   bool   `name:"json" help:"Print the memory map as JSON."`
	}

	Dump struct {
		Rom    string `name:"rom" help:"${rom_help}" placeholder:"FILE" type:"existingfile"`
		Device string `name:"device" help:"Device receiving the image." default:"ROM"`
		From   hexval `name:"from" help:"First address to dump." default:"0x0000"`
		To     hexval `name:"to" help:"Last address to dump." default:"0xFFFF"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rom_help": "Load an image file into a device before inspecting.",
	"log_help": "Enable debug logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("m6502"),
		kong.Description("Memory subsystem of a simple 6502 microcomputer."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "dump":
		cfg.mode = dumpMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = showMode
	}
	return cfg
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type hexval uint32

// Decode decodes a numeric value, accepting the 0x prefix for hexadecimal.
//
// Implements kong.MapperValue interface.
func (h *hexval) Decode(ctx *kong.DecodeContext) error {
	s := fmt.Sprint(ctx.Scan.Pop().Value)
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid address %q", s)
	}
	*h = hexval(v)
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
