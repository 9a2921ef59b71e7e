package reassemble

// B2bMessageType identifies a BeiDou B2b PPP message.
type B2bMessageType int

const (
	B2bMT1  B2bMessageType = 1  // mask
	B2bMT2  B2bMessageType = 2  // orbit
	B2bMT3  B2bMessageType = 3  // code bias
	B2bMT4  B2bMessageType = 4  // clock
	B2bMT63 B2bMessageType = 63 // null/filler
)

// B2bMessage is one demultiplexed B2b message, ready for the cssr
// decoder. No cross-message reassembly is needed for B2b (§4.2); only
// the mask context is shared across MT2/3/4 for a given PRN, which the
// cssr package's MaskContext table handles.
type B2bMessage struct {
	PRN     int
	Type    B2bMessageType
	Payload []byte
}

// B2bGrouper classifies raw B2b frames by message type. Each PRN's
// MT1/2/3/4/63 frames are dispatched independently; the grouper exists
// mainly to give the pipeline a single entry point symmetric with
// HASReassembler and SubframeAssembler.
type B2bGrouper struct{}

// NewB2bGrouper returns a B2bGrouper.
func NewB2bGrouper() *B2bGrouper {
	return &B2bGrouper{}
}

// Classify reads the message-type field (first 6 bits of the 486-bit
// payload per the BeiDou B2b PPP ICD) and returns the dispatched
// message.
func (g *B2bGrouper) Classify(prn int, payload []byte) B2bMessage {
	var msgType B2bMessageType
	if len(payload) > 0 {
		msgType = B2bMessageType(payload[0] >> 2) // top 6 bits of byte 0
	}
	return B2bMessage{PRN: prn, Type: msgType, Payload: payload}
}
