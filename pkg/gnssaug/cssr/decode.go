package cssr

import (
	"errors"
	"fmt"

	"github.com/bramburn/gnssaug/pkg/gnssaug/bitio"
)

// Tagged decoder error kinds (§7). Only ErrUnimplementedBranch and the
// sentinel errors are compared with errors.Is; IodssrMismatch and
// ShortPayload carry values and are returned as *DecodeError.
var (
	ErrMaskAbsent          = errors.New("cssr: waiting for mask")
	ErrUnknownSubtype      = errors.New("cssr: unknown subtype")
	ErrUnimplementedBranch = errors.New("cssr: subtype branch not implemented")
)

// DecodeError carries the subtype-specific detail the sentinel errors
// above don't: the stage name, PRN and subtype. It does not carry the
// GPS TOW.
type DecodeError struct {
	Stage   string
	PRN     int
	Subtype int
	Cause   error
	Detail  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cssr: %s: subtype=%d prn=%d: %s", e.Stage, e.Subtype, e.PRN, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Record is the decoded payload of one CSSR/SSR subtype. Each subtype
// produces its own concrete type (MaskRecord, OrbitRecord, ...); Record
// exists only so Decode has a single return type.
type Record interface {
	SubtypeName() string
}

// Decode reads one subtype instance from cur. It peeks the subtype's
// IODSSR field before committing to a full field-by-field decode: on a
// mismatch with the mask's active IODSSR, it still advances cur by the
// subtype's declared length (so the stream stays aligned) but drops the
// payload, per §4.3's IODSSR handling rule. Subtype 1 is the mask
// itself and has no IODSSR to compare against an existing mask.
func Decode(dialect *Dialect, mc *MaskContext, subtype int, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields

	if subtype == 1 {
		return decodeMask(dialect, mc, cur)
	}
	if subtype == 10 {
		return decodeServiceInfo(dialect, mc, cur)
	}

	if !mc.HasMask() {
		skipDeclaredLength(dialect, mc, subtype, cur)
		return nil, &DecodeError{Stage: "cssr.decode", PRN: mc.PRN, Subtype: subtype, Cause: ErrMaskAbsent, Detail: "no active mask"}
	}

	msgIODSSR := int(cur.Peek(f.IODSSRBits))
	if msgIODSSR != mc.IODSSR {
		cur.Skip(f.IODSSRBits)
		skipDeclaredLength(dialect, mc, subtype, cur)
		return nil, &DecodeError{
			Stage:   "cssr.decode",
			PRN:     mc.PRN,
			Subtype: subtype,
			Cause:   fmt.Errorf("IODSSR mismatch (active=%d, msg=%d)", mc.IODSSR, msgIODSSR),
			Detail:  fmt.Sprintf("active=%d msg=%d", mc.IODSSR, msgIODSSR),
		}
	}
	cur.Skip(f.IODSSRBits)
	mc.addOtherBits(f.IODSSRBits)

	switch subtype {
	case 2:
		return decodeOrbit(dialect, mc, cur)
	case 3:
		return decodeClock(dialect, mc, cur)
	case 4:
		return decodeCodeBias(dialect, mc, cur)
	case 5:
		return decodePhaseBias(dialect, mc, cur)
	case 6:
		return decodeCombined(dialect, mc, cur)
	case 7:
		return decodeURA(dialect, mc, cur)
	case 8:
		return decodeSTEC(dialect, mc, cur)
	case 9:
		return decodeGrid(dialect, mc, cur)
	case 11:
		return decodeOrbitClockCombo(dialect, mc, cur)
	case 12:
		return decodeNetworkCombo(dialect, mc, cur)
	default:
		return nil, &DecodeError{Stage: "cssr.decode", PRN: mc.PRN, Subtype: subtype, Cause: ErrUnknownSubtype, Detail: "no field table entry"}
	}
}

// skipDeclaredLength advances cur past the remainder of a subtype
// instance whose payload is being dropped (no mask, or IODSSR
// mismatch), using the mask cardinality to compute how many bits the
// per-satellite/per-signal arrays occupy.
func skipDeclaredLength(dialect *Dialect, mc *MaskContext, subtype int, cur *bitio.Cursor) {
	bits := perEntryBits(dialect, subtype) * mc.Stats.NSat
	if subtype == 4 || subtype == 5 {
		bits = perEntryBits(dialect, subtype) * mc.Stats.NSig
	}
	if bits > cur.Remaining() {
		bits = cur.Remaining()
	}
	cur.Skip(bits)
}

// perEntryBits returns the per-satellite or per-signal bit width a
// subtype's repeating array uses, read straight from the dialect field
// table per the design note's "one generic routine" requirement.
func perEntryBits(dialect *Dialect, subtype int) int {
	f := dialect.Fields
	switch subtype {
	case 2:
		return f.OrbitRadialBits + f.OrbitAlongBits + f.OrbitCrossBits + f.IODEBits
	case 3:
		return f.ClockBits
	case 4:
		return f.CodeBiasBits
	case 5:
		return f.PhaseBiasBits + f.PhaseDiscontinuityBits
	case 6:
		return f.OrbitRadialBits + f.OrbitAlongBits + f.OrbitCrossBits + f.IODEBits + f.ClockBits
	case 7:
		return f.URABits
	case 8:
		return f.STECCoeffBits * 4
	case 9:
		return f.GridBits * 2
	case 11:
		return f.OrbitRadialBits + f.OrbitAlongBits + f.OrbitCrossBits + f.IODEBits + f.ClockBits
	case 12:
		return f.GridBits * 2
	default:
		return 0
	}
}
