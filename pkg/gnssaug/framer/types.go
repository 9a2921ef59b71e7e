// Package framer demultiplexes heterogeneous GNSS receiver vendor
// framings into a lazy sequence of per-satellite payload frames. Each
// vendor's sync/length/checksum convention lives in its own file;
// NewFrameFunc is the single dispatch entry point, matching the pull-iterator model
// the rest of the pipeline uses (§5: "each stage is a lazy iterator
// pulled on demand").
package framer

import (
	"bufio"
	"fmt"
	"io"
)

// Kind identifies a receiver vendor's wire framing.
type Kind int

const (
	KindUnknown Kind = iota
	KindAllystar
	KindOEM7
	KindSBF
	KindUBX
	KindPocketSDR
	KindRTCM3
	KindRawL6
	KindRawL1S
	KindRawE6B
	KindRawB2b
)

func (k Kind) String() string {
	switch k {
	case KindAllystar:
		return "allystar"
	case KindOEM7:
		return "oem7"
	case KindSBF:
		return "sbf"
	case KindUBX:
		return "ubx"
	case KindPocketSDR:
		return "pocketsdr"
	case KindRTCM3:
		return "rtcm3"
	case KindRawL6:
		return "raw-l6"
	case KindRawL1S:
		return "raw-l1s"
	case KindRawE6B:
		return "raw-e6b"
	case KindRawB2b:
		return "raw-b2b"
	default:
		return "unknown"
	}
}

// extensionKinds maps file extensions to their framer Kind, generalized
// from the teacher's format.go DetectFormat-by-extension switch.
var extensionKinds = map[string]Kind{
	".alst": KindAllystar,
	".oem7": KindOEM7,
	".gps":  KindOEM7,
	".sbf":  KindSBF,
	".ubx":  KindUBX,
	".psdr": KindPocketSDR,
	".rtcm": KindRTCM3,
	".rtcm3": KindRTCM3,
	".l6":   KindRawL6,
	".l1s":  KindRawL1S,
	".e6b":  KindRawE6B,
	".b2b":  KindRawB2b,
}

// DetectKind infers a Kind from a file path's extension. It returns
// false if the extension is not recognized.
func DetectKind(path string) (Kind, bool) {
	for ext, kind := range extensionKinds {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return kind, true
		}
	}
	return KindUnknown, false
}

// Cause tags why a frame failed framing or payload validation, per §7's
// tagged-error-kind error model.
type Cause int

const (
	CauseNone Cause = iota
	CauseSyncLost
	CauseChecksumFail
	CauseLengthFail
	CauseRSUncorrectable
	CauseWeekInvalid
	CauseTowInvalid
)

func (c Cause) String() string {
	switch c {
	case CauseSyncLost:
		return "SyncLost"
	case CauseChecksumFail:
		return "ChecksumFail"
	case CauseLengthFail:
		return "LengthFail"
	case CauseRSUncorrectable:
		return "RsUncorrectable"
	case CauseWeekInvalid:
		return "WeekInvalid"
	case CauseTowInvalid:
		return "TowInvalid"
	default:
		return "None"
	}
}

// FrameError carries a tagged cause plus the PRN/TOW context it was
// observed at (§7: "every error carries the PRN and the GPS TOW ...
// plus the stage name").
type FrameError struct {
	Cause Cause
	Stage string
	PRN   int
	TOW   uint32
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("framer: %s at stage=%s prn=%d tow=%d", e.Cause, e.Stage, e.PRN, e.TOW)
}

// Frame is one demultiplexed satellite payload.
type Frame struct {
	Kind          Kind
	Constellation string
	PRN           int
	Week          uint16
	TOW           uint32
	CNo           uint8
	Flags         uint8
	Payload       []byte
}

// Func is a pull iterator: each call returns the next Frame, a
// recoverable *FrameError (the stream continues), or io.EOF.
type Func func() (Frame, error)

// NewFrameFunc returns a pull iterator over r for the given vendor Kind.
func NewFrameFunc(r io.Reader, kind Kind) Func {
	switch kind {
	case KindAllystar:
		return allystarFrameFunc(r)
	case KindUBX:
		return ubxFrameFunc(r)
	case KindSBF:
		return sbfFrameFunc(r)
	case KindOEM7:
		return oem7FrameFunc(r)
	case KindPocketSDR:
		return pocketSDRFrameFunc(r)
	case KindRTCM3:
		return rtcm3FrameFunc(r)
	case KindRawL6:
		return rawFixedFrameFunc(r, KindRawL6, 250, false)
	case KindRawL1S:
		return rawFixedFrameFunc(r, KindRawL1S, 32, true)
	case KindRawE6B:
		return rawFixedFrameFunc(r, KindRawE6B, 62, true)
	case KindRawB2b:
		return rawFixedFrameFunc(r, KindRawB2b, 62, true)
	default:
		return func() (Frame, error) {
			return Frame{}, fmt.Errorf("framer: unsupported kind %s", kind)
		}
	}
}

// rawFixedFrameFunc re-reads a downstream tool's already-extracted
// payload stream (§6's "payload extraction byte formats"): either a
// bare concatenation of fixed-size frames (withPRN false, QZSS L6 raw)
// or a repeating {1-byte PRN, payloadBytes} pair (withPRN true: HAS,
// L1S, B2b).
func rawFixedFrameFunc(r io.Reader, kind Kind, payloadBytes int, withPRN bool) Func {
	br := bufio.NewReader(r)
	return func() (Frame, error) {
		prn := 0
		if withPRN {
			b, err := br.ReadByte()
			if err != nil {
				return Frame{}, err
			}
			prn = int(b)
		}
		payload := make([]byte, payloadBytes)
		if _, err := io.ReadFull(br, payload); err != nil {
			return Frame{}, err
		}
		return Frame{Kind: kind, PRN: prn, Payload: payload}, nil
	}
}
