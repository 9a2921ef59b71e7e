package framer

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"
)

var oem7Sync = [3]byte{0xAA, 0x44, 0x12}

// oem7CRCTable uses the reflected polynomial 0xEDB88320 NovAtel
// specifies for OEM7 binary logs — the same polynomial as IEEE CRC-32,
// so the standard library table serves directly.
var oem7CRCTable = crc32.MakeTable(crc32.IEEE)

// oem7FrameFunc demultiplexes a NovAtel OEM7 binary log: sync AA 44 12,
// a 1-byte header length, a 2-byte message length, and a message-ID
// specific payload, CRC-32 protected. Only GALCNAVRAWPAGE and
// QZSSRAWSUBFRAME messages carry frames this framer extracts.
func oem7FrameFunc(r io.Reader) Func {
	br := bufio.NewReader(r)
	const (
		msgGALCNAVRAWPAGE   = 1121
		msgQZSSRAWSUBFRAME  = 973
	)
	return func() (Frame, error) {
		for {
			if err := syncTo(br, oem7Sync[:]); err != nil {
				return Frame{}, err
			}

			hdrLenByte, err := br.ReadByte()
			if err != nil {
				return Frame{}, err
			}
			hdrLen := int(hdrLenByte)
			if hdrLen < 4 {
				return Frame{}, &FrameError{Cause: CauseLengthFail, Stage: "framer.oem7"}
			}
			rest := make([]byte, hdrLen-4)
			if _, err := io.ReadFull(br, rest); err != nil {
				return Frame{}, err
			}
			if len(rest) < 4 {
				return Frame{}, &FrameError{Cause: CauseLengthFail, Stage: "framer.oem7"}
			}
			msgID := binary.LittleEndian.Uint16(rest[0:2])
			msgLen := binary.LittleEndian.Uint16(rest[2:4])

			payload := make([]byte, msgLen)
			if _, err := io.ReadFull(br, payload); err != nil {
				return Frame{}, err
			}
			crcBytes := make([]byte, 4)
			if _, err := io.ReadFull(br, crcBytes); err != nil {
				return Frame{}, err
			}
			region := append(append(append([]byte{}, oem7Sync[:]...), hdrLenByte), rest...)
			region = append(region, payload...)
			want := crc32.Checksum(region, oem7CRCTable)
			got := binary.LittleEndian.Uint32(crcBytes)
			if want != got {
				return Frame{}, &FrameError{Cause: CauseChecksumFail, Stage: "framer.oem7"}
			}

			switch msgID {
			case msgGALCNAVRAWPAGE:
				if len(payload) < 5 {
					continue
				}
				return Frame{
					Kind:          KindOEM7,
					Constellation: "Galileo",
					PRN:           int(payload[0]),
					Payload:       append([]byte{}, payload[4:]...),
				}, nil
			case msgQZSSRAWSUBFRAME:
				if len(payload) < 5 {
					continue
				}
				return Frame{
					Kind:          KindOEM7,
					Constellation: "QZSS",
					PRN:           int(payload[0]),
					Payload:       append([]byte{}, payload[4:]...),
				}, nil
			default:
				continue
			}
		}
	}
}
