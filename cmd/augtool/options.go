package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/bramburn/gnssaug/pkg/gnssaug/framer"
)

// PRNFlag implements flag.Value for -p, restricting the Allystar or
// B2b readers to a single satellite. Zero means "no restriction".
type PRNFlag struct {
	Value int
	set   bool
}

func (f *PRNFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.Itoa(f.Value)
}

func (f *PRNFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("-p: invalid PRN %q: %w", s, err)
	}
	f.Value = n
	f.set = true
	return nil
}

// KindFlag implements flag.Value for an explicit framer-kind override,
// generalized from the teacher's DetectFormat-by-extension switch in
// app/convbin/converter/options.go for callers reading from stdin
// where there is no file extension to sniff.
type KindFlag struct {
	Value framer.Kind
}

func (f *KindFlag) String() string {
	if f == nil {
		return ""
	}
	return f.Value.String()
}

var kindNames = map[string]framer.Kind{
	"allystar":  framer.KindAllystar,
	"oem7":      framer.KindOEM7,
	"sbf":       framer.KindSBF,
	"ubx":       framer.KindUBX,
	"pocketsdr": framer.KindPocketSDR,
	"rtcm3":     framer.KindRTCM3,
}

func (f *KindFlag) Set(s string) error {
	kind, ok := kindNames[strings.ToLower(s)]
	if !ok {
		return fmt.Errorf("-k: unknown framer kind %q", s)
	}
	f.Value = kind
	return nil
}

// ArrayFlags implements flag.Value for a repeatable flag, matching the
// teacher's options.go ArrayFlags convention (e.g. repeated -x
// excludes). augtool does not currently repeat any flag, but the type
// is kept so future multi-value flags (e.g. -p taking several PRNs)
// follow the established pattern instead of reinventing one.
type ArrayFlags []string

func (f *ArrayFlags) String() string {
	return strings.Join(*f, ",")
}

func (f *ArrayFlags) Set(s string) error {
	*f = append(*f, s)
	return nil
}

// Options holds the parsed command line per spec.md §6.
type Options struct {
	EmitL6    bool // -l
	EmitE6B   bool // -e
	EmitInav  bool // -i
	EmitB2b   bool // -b
	EmitL1S   bool // -l1s
	EmitRTCM  bool // -r
	EmitLNAV  bool // -q

	ForceDiagToStderr bool // -m
	Verbosity         int  // -t {1,2}
	PRN               PRNFlag
	DupDCR            bool // -d
	ForceColor        bool // -c
	Kind              KindFlag

	InputPath string // positional arg, "" means stdin
}

// EmitPayload reports whether any raw-payload extraction flag was
// given, which per §6 suppresses diagnostics to stdout.
func (o *Options) EmitPayload() bool {
	return o.EmitL6 || o.EmitE6B || o.EmitInav || o.EmitB2b || o.EmitL1S || o.EmitRTCM || o.EmitLNAV
}

// ParseArgs parses argv (excluding the program name) into Options.
func ParseArgs(argv []string) (*Options, error) {
	fs := flag.NewFlagSet("augtool", flag.ContinueOnError)
	o := &Options{}

	fs.BoolVar(&o.EmitL6, "l", false, "emit raw QZSS L6 payload bytes")
	fs.BoolVar(&o.EmitE6B, "e", false, "emit raw Galileo E6B (HAS) payload bytes")
	fs.BoolVar(&o.EmitInav, "i", false, "emit raw Galileo E1B I/NAV payload bytes")
	fs.BoolVar(&o.EmitB2b, "b", false, "emit raw BeiDou B2b payload bytes")
	fs.BoolVar(&o.EmitL1S, "l1s", false, "emit raw QZSS L1S payload bytes")
	fs.BoolVar(&o.EmitRTCM, "r", false, "emit RTCM 3 payload bytes")
	fs.BoolVar(&o.EmitLNAV, "q", false, "emit raw QZSS LNAV payload bytes")
	fs.BoolVar(&o.ForceDiagToStderr, "m", false, "force diagnostics to stderr even when emitting a payload")
	fs.IntVar(&o.Verbosity, "t", 0, "display verbosity (1 or 2: per-subtype detail and bit-image hex dumps)")
	fs.Var(&o.PRN, "p", "restrict the Allystar or B2b reader to a single PRN")
	fs.BoolVar(&o.DupDCR, "d", false, "emit duplicate DCR NMEA from QZSS L1S")
	fs.BoolVar(&o.ForceColor, "c", false, "force color output even when stdout is not a TTY")
	fs.Var(&o.Kind, "k", "override framer kind detection (allystar, oem7, sbf, ubx, pocketsdr, rtcm3)")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		o.InputPath = fs.Arg(0)
	}
	return o, nil
}
