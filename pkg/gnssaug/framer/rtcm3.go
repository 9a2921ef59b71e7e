package framer

import (
	"bufio"
	"io"

	"github.com/bramburn/gnssaug/pkg/gnssaug/bitio"
	"github.com/bramburn/gnssaug/pkg/gnssaug/crc24q"
)

const rtcm3Preamble = 0xD3

// rtcm3FrameFunc scans for the RTCM 3 preamble and validates each frame
// with CRC-24Q (§4.4). The Payload carries the full message body
// (including the 12-bit message type at its head) so that
// pkg/gnssaug/rtcm can dispatch and decode it; framer does not itself
// interpret RTCM message types.
func rtcm3FrameFunc(r io.Reader) Func {
	br := bufio.NewReader(r)
	return func() (Frame, error) {
		for {
			b, err := br.ReadByte()
			if err != nil {
				return Frame{}, err
			}
			if b != rtcm3Preamble {
				continue
			}

			lenBytes := make([]byte, 2)
			if _, err := io.ReadFull(br, lenBytes); err != nil {
				return Frame{}, err
			}
			length := int(bitio.GetBitU(lenBytes, 6, 10))
			if length == 0 {
				return Frame{}, &FrameError{Cause: CauseLengthFail, Stage: "framer.rtcm3"}
			}
			if bitio.GetBitU(lenBytes, 0, 6) != 0 {
				// Upper 6 bits must be zero; this wasn't really a
				// preamble byte, resync from the next byte.
				continue
			}

			body := make([]byte, length)
			if _, err := io.ReadFull(br, body); err != nil {
				return Frame{}, err
			}
			crc := make([]byte, 3)
			if _, err := io.ReadFull(br, crc); err != nil {
				return Frame{}, err
			}

			frame := append(append(append([]byte{rtcm3Preamble}, lenBytes...), body...), crc...)
			if !crc24q.Check(frame) {
				return Frame{}, &FrameError{Cause: CauseChecksumFail, Stage: "framer.rtcm3"}
			}

			return Frame{
				Kind:    KindRTCM3,
				Payload: body,
			}, nil
		}
	}
}
