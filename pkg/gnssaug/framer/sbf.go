package framer

import (
	"bufio"
	"encoding/binary"
	"io"
)

var sbfSync = [2]byte{'$', '@'}

const (
	sbfBlockGALRawCNAV = 4022 // carries Galileo HAS E6B pages
	sbfBlockQZSRawL6   = 4095 // carries QZSS L6 (CLAS/MADOCA) frames
	sbfBlockBDSRawB2b  = 4218 // carries BeiDou B2b PPP messages
)

// sbfFrameFunc demultiplexes a Septentrio SBF stream: sync `$@`, a
// CRC-16-CCITT over everything after the CRC field, then a 2-byte
// length (always a multiple of 4) and a block-number-keyed payload.
// Only GALRawCNAV, QZSRawL6 and BDSRawB2b blocks carry frames this
// framer extracts; other blocks are skipped.
func sbfFrameFunc(r io.Reader) Func {
	br := bufio.NewReader(r)
	return func() (Frame, error) {
		for {
			if err := syncTo(br, sbfSync[:]); err != nil {
				return Frame{}, err
			}

			head := make([]byte, 6) // CRC(2) + ID(2) + length(2)
			if _, err := io.ReadFull(br, head); err != nil {
				return Frame{}, err
			}
			crcField := binary.LittleEndian.Uint16(head[0:2])
			blockID := binary.LittleEndian.Uint16(head[2:4]) & 0x1FFF // low 13 bits
			length := binary.LittleEndian.Uint16(head[4:6])
			if length%4 != 0 || length < 8 {
				return Frame{}, &FrameError{Cause: CauseLengthFail, Stage: "framer.sbf"}
			}

			body := make([]byte, int(length)-8)
			if _, err := io.ReadFull(br, body); err != nil {
				return Frame{}, err
			}

			crcRegion := append(append([]byte{}, head[2:]...), body...)
			if crc16CCITT(crcRegion) != crcField {
				return Frame{}, &FrameError{Cause: CauseChecksumFail, Stage: "framer.sbf"}
			}

			switch blockID {
			case sbfBlockGALRawCNAV:
				if len(body) < 3 {
					continue
				}
				return Frame{
					Kind:          KindSBF,
					Constellation: "Galileo",
					PRN:           int(body[0]),
					Payload:       append([]byte{}, body[3:]...),
				}, nil
			case sbfBlockQZSRawL6:
				if len(body) < 3 {
					continue
				}
				return Frame{
					Kind:          KindSBF,
					Constellation: "QZSS",
					PRN:           int(body[0]),
					Payload:       append([]byte{}, body[3:]...),
				}, nil
			case sbfBlockBDSRawB2b:
				if len(body) < 3 {
					continue
				}
				return Frame{
					Kind:          KindSBF,
					Constellation: "BeiDou",
					PRN:           int(body[0]),
					Payload:       append([]byte{}, body[3:]...),
				}, nil
			default:
				continue
			}
		}
	}
}

func crc16CCITT(data []byte) uint16 {
	var crc uint16 = 0
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
