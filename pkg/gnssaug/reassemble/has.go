// Package reassemble groups framer output back into upper-layer
// messages: Galileo HAS page sets (with Reed-Solomon erasure recovery),
// CLAS/MADOCA-PPP L6 subframes, and BeiDou B2b per-message-type groups
// (§4.2).
package reassemble

import (
	"fmt"

	"github.com/bramburn/gnssaug/pkg/gnssaug/reedsolomon"
)

const hasPageBytes = 53 // 424 bits of encoded payload per HAS page

// HASPage is one Galileo HAS page as extracted by the framer/E6B path.
type HASPage struct {
	PRN     int
	MID     int // message ID, 5 bits (1..31)
	MS      int // message size in pages, 5 bits (1..32)
	PID     int // page ID, 8 bits (1-based)
	Payload []byte // 53 bytes (424 bits) of encoded page content
}

type hasGroup struct {
	ms      int
	pages   map[int]HASPage // keyed by PID
}

// HASReassembler groups HAS pages by MID and Reed-Solomon decodes a
// group once MS distinct pages have arrived. Bounded per §5's memory
// model: each MID holds at most 32 pages x 53 bytes.
type HASReassembler struct {
	groups map[int]*hasGroup // keyed by MID
}

// NewHASReassembler returns an empty reassembler.
func NewHASReassembler() *HASReassembler {
	return &HASReassembler{groups: make(map[int]*hasGroup)}
}

// AddPage ingests one page. It returns (cleartext, true, nil) once the
// page completes its MID's group; otherwise ok is false. A page whose
// PID is 0 is rejected (PID is 1-based, per §8's boundary behavior).
func (r *HASReassembler) AddPage(p HASPage) ([]byte, bool, error) {
	if p.PID == 0 {
		return nil, false, fmt.Errorf("reassemble: HAS page PID=0 is invalid (1-based)")
	}
	if len(p.Payload) != hasPageBytes {
		return nil, false, fmt.Errorf("reassemble: HAS page payload is %d bytes, want %d", len(p.Payload), hasPageBytes)
	}

	g, ok := r.groups[p.MID]
	if !ok {
		g = &hasGroup{ms: p.MS, pages: make(map[int]HASPage)}
		r.groups[p.MID] = g
	} else if g.ms != p.MS {
		// MS mismatch: the old group is superseded by a fresh one
		// starting from this page (diagnostic "MS mismatch").
		g = &hasGroup{ms: p.MS, pages: make(map[int]HASPage)}
		r.groups[p.MID] = g
	}

	g.pages[p.PID] = p
	if len(g.pages) < g.ms {
		return nil, false, nil
	}

	presentColumns := make([]int, 0, g.ms)
	received := make([][]byte, 0, g.ms)
	for pid, page := range g.pages {
		presentColumns = append(presentColumns, pid-1)
		received = append(received, page.Payload)
		if len(received) == g.ms {
			break
		}
	}

	cleartext, err := reedsolomon.Decode(received, presentColumns, hasPageBytes)
	delete(r.groups, p.MID)
	if err != nil {
		return nil, false, fmt.Errorf("reassemble: RS decode failed for MID=%d: %w", p.MID, err)
	}
	return cleartext, true, nil
}
