package cssr

import "github.com/bramburn/gnssaug/pkg/gnssaug/bitio"

// MaskRecord is the decoded ST-1 (mask) subtype: the GNSS/satellite/
// signal mask plus the IODSSR and IODP it activates.
type MaskRecord struct {
	IODSSR int
	IODP   int
	Mask   []MaskEntry
}

func (MaskRecord) SubtypeName() string { return "mask" }

// decodeMask reads the GNSS mask, then for each flagged GNSS the
// satellite bitmap, then for each flagged satellite the signal bitmap
// (§4.3: nested bitmap layout). It installs the result into mc before
// returning, since every later subtype in the same epoch indexes
// arrays by this ordering.
func decodeMask(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields

	iodp := int(cur.ReadU(f.IODPBits))
	gnssMask := cur.ReadU(f.GNSSMaskBits)
	overheadBits := f.IODPBits + f.GNSSMaskBits

	var mask []MaskEntry
	for g := 0; g < f.GNSSMaskBits; g++ {
		if gnssMask&(1<<uint(f.GNSSMaskBits-1-g)) == 0 {
			continue
		}
		satMask := cur.ReadU(f.SatMaskBits)
		overheadBits += f.SatMaskBits
		for s := 0; s < f.SatMaskBits; s++ {
			if satMask&(1<<uint(f.SatMaskBits-1-s)) == 0 {
				continue
			}
			sigMask := cur.ReadU(f.SignalMaskBits)
			overheadBits += f.SignalMaskBits
			var signals []int
			for sig := 0; sig < f.SignalMaskBits; sig++ {
				if sigMask&(1<<uint(f.SignalMaskBits-1-sig)) != 0 {
					signals = append(signals, sig)
				}
			}
			mask = append(mask, MaskEntry{GNSSIndex: g, SatIndex: s, Signals: signals})
		}
	}

	iodssr := int(cur.ReadU(f.IODSSRBits))
	overheadBits += f.IODSSRBits
	mc.InstallMask(mask, iodssr, iodp)
	mc.addOtherBits(overheadBits)
	return MaskRecord{IODSSR: iodssr, IODP: iodp, Mask: mask}, nil
}

// OrbitEntry is one satellite's ST-2 orbit correction.
type OrbitEntry struct {
	SatIndex int
	IODE     int
	Radial   float64
	Along    float64
	Cross    float64
}

// OrbitRecord is the decoded ST-2 subtype.
type OrbitRecord struct {
	Entries []OrbitEntry
}

func (OrbitRecord) SubtypeName() string { return "orbit" }

func decodeOrbit(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	rec := OrbitRecord{}
	for _, sat := range mc.Mask {
		iode := int(cur.ReadU(f.IODEBits))
		radial := float64(cur.ReadS(f.OrbitRadialBits)) * f.OrbitScale
		along := float64(cur.ReadS(f.OrbitAlongBits)) * f.OrbitScale
		cross := float64(cur.ReadS(f.OrbitCrossBits)) * f.OrbitScale
		rec.Entries = append(rec.Entries, OrbitEntry{SatIndex: sat.SatIndex, IODE: iode, Radial: radial, Along: along, Cross: cross})
	}
	mc.addSatBits(len(mc.Mask) * (f.IODEBits + f.OrbitRadialBits + f.OrbitAlongBits + f.OrbitCrossBits))
	return rec, nil
}

// ClockEntry is one satellite's ST-3 clock correction; Invalid marks
// the dialect's "do not use" sentinel value (§4.3).
type ClockEntry struct {
	SatIndex int
	C0       float64
	Invalid  bool
}

// ClockRecord is the decoded ST-3 subtype.
type ClockRecord struct {
	Entries []ClockEntry
}

func (ClockRecord) SubtypeName() string { return "clock" }

func decodeClock(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	invalidSentinel := int64(1)<<uint(f.ClockBits-1) - 1
	rec := ClockRecord{}
	for _, sat := range mc.Mask {
		raw := cur.ReadS(f.ClockBits)
		if raw == invalidSentinel {
			rec.Entries = append(rec.Entries, ClockEntry{SatIndex: sat.SatIndex, Invalid: true})
			continue
		}
		rec.Entries = append(rec.Entries, ClockEntry{SatIndex: sat.SatIndex, C0: float64(raw) * f.ClockScale})
	}
	mc.addSatBits(len(mc.Mask) * f.ClockBits)
	return rec, nil
}

// CodeBiasEntry is one signal's ST-4 code bias.
type CodeBiasEntry struct {
	SatIndex int
	SigIndex int
	Bias     float64
}

// CodeBiasRecord is the decoded ST-4 subtype.
type CodeBiasRecord struct {
	Entries []CodeBiasEntry
}

func (CodeBiasRecord) SubtypeName() string { return "code-bias" }

func decodeCodeBias(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	rec := CodeBiasRecord{}
	for _, sat := range mc.Mask {
		for _, sig := range sat.Signals {
			raw := cur.ReadS(f.CodeBiasBits)
			rec.Entries = append(rec.Entries, CodeBiasEntry{SatIndex: sat.SatIndex, SigIndex: sig, Bias: float64(raw) * f.CodeBiasScale})
		}
	}
	mc.addSigBits(len(rec.Entries) * f.CodeBiasBits)
	return rec, nil
}

// PhaseBiasEntry is one signal's ST-5 phase bias and discontinuity
// counter.
type PhaseBiasEntry struct {
	SatIndex      int
	SigIndex      int
	Bias          float64
	Discontinuity int
}

// PhaseBiasRecord is the decoded ST-5 subtype.
type PhaseBiasRecord struct {
	Entries []PhaseBiasEntry
}

func (PhaseBiasRecord) SubtypeName() string { return "phase-bias" }

func decodePhaseBias(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	rec := PhaseBiasRecord{}
	for _, sat := range mc.Mask {
		for _, sig := range sat.Signals {
			raw := cur.ReadS(f.PhaseBiasBits)
			disc := int(cur.ReadU(f.PhaseDiscontinuityBits))
			rec.Entries = append(rec.Entries, PhaseBiasEntry{
				SatIndex:      sat.SatIndex,
				SigIndex:      sig,
				Bias:          float64(raw) * f.PhaseBiasScale,
				Discontinuity: disc,
			})
		}
	}
	mc.addSigBits(len(rec.Entries) * (f.PhaseBiasBits + f.PhaseDiscontinuityBits))
	return rec, nil
}

// CombinedEntry is one satellite's ST-6 orbit+clock+bias bundle
// (CLAS packs these together to save a message when bandwidth is
// tight; §4.3).
type CombinedEntry struct {
	SatIndex int
	Orbit    OrbitEntry
	Clock    ClockEntry
}

// CombinedRecord is the decoded ST-6 subtype.
type CombinedRecord struct {
	Entries []CombinedEntry
}

func (CombinedRecord) SubtypeName() string { return "combined-orbit-clock" }

func decodeCombined(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	invalidSentinel := int64(1)<<uint(f.ClockBits-1) - 1
	rec := CombinedRecord{}
	for _, sat := range mc.Mask {
		iode := int(cur.ReadU(f.IODEBits))
		radial := float64(cur.ReadS(f.OrbitRadialBits)) * f.OrbitScale
		along := float64(cur.ReadS(f.OrbitAlongBits)) * f.OrbitScale
		cross := float64(cur.ReadS(f.OrbitCrossBits)) * f.OrbitScale
		clockRaw := cur.ReadS(f.ClockBits)

		clock := ClockEntry{SatIndex: sat.SatIndex}
		if clockRaw == invalidSentinel {
			clock.Invalid = true
		} else {
			clock.C0 = float64(clockRaw) * f.ClockScale
		}

		rec.Entries = append(rec.Entries, CombinedEntry{
			SatIndex: sat.SatIndex,
			Orbit:    OrbitEntry{SatIndex: sat.SatIndex, IODE: iode, Radial: radial, Along: along, Cross: cross},
			Clock:    clock,
		})
	}
	mc.addSatBits(len(mc.Mask) * (f.IODEBits + f.OrbitRadialBits + f.OrbitAlongBits + f.OrbitCrossBits + f.ClockBits))
	return rec, nil
}

// URAEntry is one satellite's ST-7 user range accuracy class.
type URAEntry struct {
	SatIndex int
	Class    int
}

// URARecord is the decoded ST-7 subtype.
type URARecord struct {
	Entries []URAEntry
}

func (URARecord) SubtypeName() string { return "ura" }

func decodeURA(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	rec := URARecord{}
	for _, sat := range mc.Mask {
		rec.Entries = append(rec.Entries, URAEntry{SatIndex: sat.SatIndex, Class: int(cur.ReadU(f.URABits))})
	}
	mc.addSatBits(len(mc.Mask) * f.URABits)
	return rec, nil
}

// STECEntry is one satellite's ST-8 ionospheric STEC polynomial
// coefficients (C00, C01, C10, C11 per the CLAS quadratic model).
type STECEntry struct {
	SatIndex int
	Coeffs   [4]float64
}

// STECRecord is the decoded ST-8 subtype.
type STECRecord struct {
	Entries []STECEntry
}

func (STECRecord) SubtypeName() string { return "stec" }

func decodeSTEC(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	rec := STECRecord{}
	for _, sat := range mc.Mask {
		var e STECEntry
		e.SatIndex = sat.SatIndex
		for i := range e.Coeffs {
			e.Coeffs[i] = float64(cur.ReadS(f.STECCoeffBits)) * f.STECCoeffScale
		}
		rec.Entries = append(rec.Entries, e)
	}
	mc.addSatBits(len(mc.Mask) * f.STECCoeffBits * 4)
	return rec, nil
}

// GridEntry is one grid point's ST-9 tropospheric/ionospheric
// correction (wet delay, STEC residual).
type GridEntry struct {
	Index        int
	WetDelay     float64
	STECResidual float64
}

// GridRecord is the decoded ST-9 subtype. CLAS fixes the grid point
// count per area at 53 (§4.3); this implementation reads whatever the
// mask's satellite count carries over as a proxy grid count, since no
// pack reference carries the actual grid-area table.
type GridRecord struct {
	Entries []GridEntry
}

func (GridRecord) SubtypeName() string { return "grid" }

func decodeGrid(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	f := dialect.Fields
	rec := GridRecord{}
	for i, sat := range mc.Mask {
		wet := float64(cur.ReadS(f.GridBits)) * f.GridScale
		stec := float64(cur.ReadS(f.GridBits)) * f.GridScale
		rec.Entries = append(rec.Entries, GridEntry{Index: i, WetDelay: wet, STECResidual: stec})
		_ = sat
	}
	mc.addOtherBits(len(rec.Entries) * f.GridBits * 2)
	return rec, nil
}

// ServiceInfoRecord is the decoded ST-10 subtype. Per the open
// question recorded in DESIGN.md, only the leading service-id field is
// parsed; the remaining branches (multiple announcement blocks, CRC
// coverage descriptors) are not exercised by any sample data in the
// pack and are left unimplemented rather than guessed.
type ServiceInfoRecord struct {
	ServiceID int
}

func (ServiceInfoRecord) SubtypeName() string { return "service-info" }

func decodeServiceInfo(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	const serviceIDBits = 4
	if cur.Remaining() < serviceIDBits {
		return nil, &DecodeError{Stage: "cssr.decode", PRN: mc.PRN, Subtype: 10, Cause: ErrUnimplementedBranch, Detail: "short payload for service-id"}
	}
	id := int(cur.ReadU(serviceIDBits))
	mc.addOtherBits(serviceIDBits)
	return ServiceInfoRecord{ServiceID: id}, &DecodeError{Stage: "cssr.decode", PRN: mc.PRN, Subtype: 10, Cause: ErrUnimplementedBranch, Detail: "announcement blocks not decoded"}
}

// OrbitClockComboRecord is the decoded ST-11 subtype (BeiDou B2b's
// combined orbit+clock message, structurally identical to ST-6 but
// under the BeiDou dialect's field widths).
type OrbitClockComboRecord struct {
	Entries []CombinedEntry
}

func (OrbitClockComboRecord) SubtypeName() string { return "orbit-clock-combo" }

func decodeOrbitClockCombo(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	combined, err := decodeCombined(dialect, mc, cur)
	if err != nil {
		return nil, err
	}
	return OrbitClockComboRecord{Entries: combined.(CombinedRecord).Entries}, nil
}

// NetworkComboRecord is the decoded ST-12 subtype: network-level
// atmospheric corrections shared across a grid (structurally a
// GridRecord under a different subtype number).
type NetworkComboRecord struct {
	Entries []GridEntry
}

func (NetworkComboRecord) SubtypeName() string { return "network-combo" }

func decodeNetworkCombo(dialect *Dialect, mc *MaskContext, cur *bitio.Cursor) (Record, error) {
	grid, err := decodeGrid(dialect, mc, cur)
	if err != nil {
		return nil, err
	}
	return NetworkComboRecord{Entries: grid.(GridRecord).Entries}, nil
}
