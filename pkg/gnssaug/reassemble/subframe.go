package reassemble

// SubframeAssembler concatenates 5 consecutive CLAS/MADOCA-PPP L6
// frames from the same PRN into one subframe bit buffer, so the CSSR
// decoder can consume messages that cross L6 data-part boundaries
// (§4.2). It does not itself parse CSSR messages; it hands the
// assembled buffer to the caller once a subframe is complete or reset
// by a fresh subframe-indicator.
type SubframeAssembler struct {
	buf       []byte
	partCount int
}

// NewSubframeAssembler returns an empty assembler.
func NewSubframeAssembler() *SubframeAssembler {
	return &SubframeAssembler{}
}

// AddFrame appends one L6 frame's payload. isFirstOfSubframe, read from
// the frame's subframe-indicator bit, flushes any prior partial
// subframe as "null-terminated" and starts a fresh one. The assembler
// reports the completed subframe buffer once 5 data parts have been
// collected.
func (a *SubframeAssembler) AddFrame(payload []byte, isFirstOfSubframe bool) (completed []byte, flushed bool) {
	if isFirstOfSubframe && a.partCount > 0 {
		completed = a.buf
		flushed = true
		a.buf = nil
		a.partCount = 0
	}

	a.buf = append(a.buf, payload...)
	a.partCount++

	if a.partCount == 5 {
		done := a.buf
		a.buf = nil
		a.partCount = 0
		return done, true
	}

	return completed, flushed
}

// Reset discards any partial subframe, e.g. on stream cancellation.
func (a *SubframeAssembler) Reset() {
	a.buf = nil
	a.partCount = 0
}
