package cssr

// MaskEntry is one satellite's entry in an active mask: its satellite
// id within the mask's GNSS and the ordered list of signal indices the
// mask declared for it. Downstream subtypes index arrays by this
// ordering (§9: "preserving this ordering is essential for
// correctness").
type MaskEntry struct {
	GNSSIndex int
	SatIndex  int // 0-based position within the satellite bitmap
	Signals   []int
}

// Stats are the cumulative bit-accounting counters surfaced on every
// ST-1 boundary (§4.3, §8's bit-accounting invariant).
type Stats struct {
	NSat     int
	NSig     int
	BitSat   int
	BitSig   int
	BitOther int
	BitNull  int
	BitTotal int
}

// MaskContext is the per (PRN, dialect) mask state: the active mask,
// its IODSSR/IODP, and cumulative stats since the mask was installed.
// There is at most one MaskContext per (PRN, dialect) key (§5: "stored
// in a private table owned by the decoder; no locking is needed").
type MaskContext struct {
	Dialect *Dialect
	PRN     int

	Mask   []MaskEntry
	IODSSR int
	IODP   int
	Stats  Stats

	installed bool
}

// NewMaskContext returns an empty context awaiting its first mask
// subtype.
func NewMaskContext(dialect *Dialect, prn int) *MaskContext {
	return &MaskContext{Dialect: dialect, PRN: prn}
}

// HasMask reports whether a mask has been installed.
func (mc *MaskContext) HasMask() bool {
	return mc.installed
}

// InstallMask replaces the active mask. Per the monotonic-replacement
// invariant, callers must only invoke this from a successfully decoded
// mask subtype (ST-1 / MT-1); non-mask subtypes must never call it.
func (mc *MaskContext) InstallMask(mask []MaskEntry, iodssr, iodp int) {
	mc.Mask = mask
	mc.IODSSR = iodssr
	mc.IODP = iodp
	mc.installed = true
	mc.Stats = Stats{NSat: countSats(mask), NSig: countSigs(mask)}
}

// addSatBits/addSigBits/addOtherBits/AddNullBits tally the bits each
// decode routine actually consumed, split by the same categories ST-1
// boundaries report (§8's bit-accounting invariant). BitTotal is always
// recomputed from the other four counters, so the invariant holds by
// construction against whatever the routines have tallied so far -
// never against numbers a caller assigns directly.
func (mc *MaskContext) addSatBits(n int) {
	mc.Stats.BitSat += n
	mc.retotal()
}

func (mc *MaskContext) addSigBits(n int) {
	mc.Stats.BitSig += n
	mc.retotal()
}

func (mc *MaskContext) addOtherBits(n int) {
	mc.Stats.BitOther += n
	mc.retotal()
}

// AddNullBits tallies trailing null-subtype padding. Exported since the
// subframe walker (outside this package) is the one that recognizes a
// subtype-0 marker or a short leftover tail as padding, not any decode
// routine here.
func (mc *MaskContext) AddNullBits(n int) {
	mc.Stats.BitNull += n
	mc.retotal()
}

func (mc *MaskContext) retotal() {
	mc.Stats.BitTotal = mc.Stats.BitSat + mc.Stats.BitSig + mc.Stats.BitOther + mc.Stats.BitNull
}

func countSats(mask []MaskEntry) int {
	return len(mask)
}

func countSigs(mask []MaskEntry) int {
	n := 0
	for _, e := range mask {
		n += len(e.Signals)
	}
	return n
}
