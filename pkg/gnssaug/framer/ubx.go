package framer

import (
	"bufio"
	"encoding/binary"
	"io"
)

var ubxSync = [2]byte{0xB5, 0x62}

const (
	classRXM    = 0x02
	idRXMSFRBX  = 0x13
	idRXMPMP    = 0x72
)

// ubxFrameFunc demultiplexes a u-blox UBX stream, dispatching on
// class/id to RXM-SFRBX (navigation subframes, used for Galileo
// I/NAV and QZSS LNAV) and RXM-PMP (L1S/PMP correction payload).
// Checksum is the 8-bit Fletcher over class..payload, matching
// hardware/topgnss/top708's UBXParser.
func ubxFrameFunc(r io.Reader) Func {
	br := bufio.NewReader(r)
	return func() (Frame, error) {
		for {
			if err := syncTo(br, ubxSync[:]); err != nil {
				return Frame{}, err
			}

			head := make([]byte, 4)
			if _, err := io.ReadFull(br, head); err != nil {
				return Frame{}, err
			}
			class, id := head[0], head[1]
			length := binary.LittleEndian.Uint16(head[2:4])

			payload := make([]byte, length)
			if _, err := io.ReadFull(br, payload); err != nil {
				return Frame{}, err
			}
			ck := make([]byte, 2)
			if _, err := io.ReadFull(br, ck); err != nil {
				return Frame{}, err
			}

			ckA, ckB := fletcher8(append(head, payload...))
			if ckA != ck[0] || ckB != ck[1] {
				return Frame{}, &FrameError{Cause: CauseChecksumFail, Stage: "framer.ubx"}
			}

			if class != classRXM || (id != idRXMSFRBX && id != idRXMPMP) {
				// Not a message this framer extracts payloads from;
				// keep scanning rather than surfacing every NAV/MON
				// message as an error.
				continue
			}

			if id == idRXMSFRBX {
				if f, ok := parseSFRBX(payload); ok {
					return f, nil
				}
				continue
			}
			if f, ok := parsePMP(payload); ok {
				return f, nil
			}
			continue
		}
	}
}

// parseSFRBX extracts a navigation subframe from an RXM-SFRBX payload
// (protocol version >= 17 layout: gnssId, svId, sigId, freqId,
// numWords, chn, version, reserved, then numWords*4 bytes of words).
func parseSFRBX(payload []byte) (Frame, bool) {
	if len(payload) < 8 {
		return Frame{}, false
	}
	gnssID := payload[0]
	svID := payload[1]
	numWords := int(payload[4])
	wordsStart := 8
	if len(payload) < wordsStart+numWords*4 {
		return Frame{}, false
	}
	words := payload[wordsStart : wordsStart+numWords*4]

	constellation := "GPS"
	switch gnssID {
	case 0:
		constellation = "GPS"
	case 2:
		constellation = "Galileo"
	case 3:
		constellation = "BeiDou"
	case 5:
		constellation = "QZSS"
	}

	return Frame{
		Kind:          KindUBX,
		Constellation: constellation,
		PRN:           int(svID),
		Payload:       append([]byte{}, words...),
	}, true
}

// parsePMP extracts the L1S/PMP correction payload. The uBlox PMP
// framing carries a unique word, version and service-ID header before
// the user-data block; this extracts the trailing user data only. The
// PRN/service identifier is not copied into the Frame (PRN stays 0).
func parsePMP(payload []byte) (Frame, bool) {
	const headerLen = 12 // version, reserved, serviceID, spare, uniqueWord(4), bitrate(2), fecBits(2)
	if len(payload) <= headerLen {
		return Frame{}, false
	}
	return Frame{
		Kind:          KindUBX,
		Constellation: "QZSS-L1S",
		Payload:       append([]byte{}, payload[headerLen:]...),
	}, true
}
