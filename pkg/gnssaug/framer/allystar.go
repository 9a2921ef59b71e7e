package framer

import (
	"bufio"
	"encoding/binary"
	"io"
)

var allystarSync = [4]byte{0xF1, 0xD9, 0x02, 0x10}

const (
	allystarPayloadLen = 264
	allystarL6DataLen  = 252
)

// allystarFrameFunc demultiplexes an Allystar HD9310 L6 byte stream.
// Layout (§4.1): sync F1 D9 02 10, 2B LE length (always 264), then the
// 264-byte payload: PRN(2B LE, value-700), freqID(1B), data-length(1B,
// value-2 must equal 63), GPS week(2B BE), TOW(4B BE), C/No(1B),
// flags(1B), 252B L6 data; finally a 2-byte Fletcher-style checksum.
func allystarFrameFunc(r io.Reader) Func {
	br := bufio.NewReader(r)
	return func() (Frame, error) {
		for {
			if err := syncTo(br, allystarSync[:]); err != nil {
				return Frame{}, err
			}

			lenBuf := make([]byte, 2)
			if _, err := io.ReadFull(br, lenBuf); err != nil {
				return Frame{}, err
			}
			length := binary.LittleEndian.Uint16(lenBuf)
			if length != allystarPayloadLen {
				return Frame{}, &FrameError{Cause: CauseLengthFail, Stage: "framer.allystar"}
			}

			payload := make([]byte, allystarPayloadLen)
			if _, err := io.ReadFull(br, payload); err != nil {
				return Frame{}, err
			}

			checksum := make([]byte, 2)
			if _, err := io.ReadFull(br, checksum); err != nil {
				return Frame{}, err
			}
			ckA, ckB := fletcher8(append(append([]byte{}, lenBuf...), payload...))
			if ckA != checksum[0] || ckB != checksum[1] {
				return Frame{}, &FrameError{Cause: CauseChecksumFail, Stage: "framer.allystar"}
			}

			prn := int(binary.LittleEndian.Uint16(payload[0:2])) - 700
			dataLength := payload[3]
			if int(dataLength)-2 != 63 {
				return Frame{}, &FrameError{Cause: CauseLengthFail, Stage: "framer.allystar", PRN: prn}
			}
			week := binary.BigEndian.Uint16(payload[4:6])
			tow := binary.BigEndian.Uint32(payload[6:10])
			cno := payload[10]
			flags := payload[11]
			data := append([]byte{}, payload[12:12+allystarL6DataLen]...)

			if flags&0x01 != 0 {
				return Frame{}, &FrameError{Cause: CauseRSUncorrectable, Stage: "framer.allystar", PRN: prn, TOW: tow}
			}
			if flags&0x02 != 0 {
				return Frame{}, &FrameError{Cause: CauseWeekInvalid, Stage: "framer.allystar", PRN: prn, TOW: tow}
			}
			if flags&0x04 != 0 {
				return Frame{}, &FrameError{Cause: CauseTowInvalid, Stage: "framer.allystar", PRN: prn, TOW: tow}
			}

			return Frame{
				Kind:          KindAllystar,
				Constellation: "QZSS",
				PRN:           prn,
				Week:          week,
				TOW:           tow,
				CNo:           cno,
				Flags:         flags,
				Payload:       data,
			}, nil
		}
	}
}

// fletcher8 is the 8-bit Fletcher checksum (ck_a = running sum, ck_b =
// running sum-of-sums, both mod 256), the same form used by UBX and
// Allystar framing.
func fletcher8(data []byte) (ckA, ckB byte) {
	for _, b := range data {
		ckA += b
		ckB += ckA
	}
	return ckA, ckB
}

// syncTo reads byte-by-byte until the trailing bytes of the stream
// equal sync, so the framer re-synchronizes without losing subsequent
// valid frames after a corrupted one (§4.1 error semantics).
func syncTo(br *bufio.Reader, sync []byte) error {
	window := make([]byte, len(sync))
	n, err := io.ReadFull(br, window)
	if err != nil {
		return err
	}
	for {
		match := true
		for i := range sync {
			if window[i] != sync[i] {
				match = false
				break
			}
		}
		if match {
			return nil
		}
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		copy(window, window[1:])
		window[n-1] = b
	}
}
