package framer

import (
	"bufio"
	"encoding/hex"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// pocketSDRLine matches Pocket SDR's text log lines:
//   $L6FRM,<tow>,<prn>,<hex payload>
//   $OBS,<tow>,<prn>,<hex payload>
var pocketSDRLine = regexp.MustCompile(`^\$(L6FRM|OBS),(\d+),(\d+),([0-9A-Fa-f]+)`)

// pocketSDRFrameFunc demultiplexes Pocket SDR's line-oriented text log
// format, hex-decoding the payload field of each recognized line.
func pocketSDRFrameFunc(r io.Reader) Func {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return func() (Frame, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			m := pocketSDRLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			tow, _ := strconv.ParseUint(m[2], 10, 32)
			prn, _ := strconv.Atoi(m[3])
			payload, err := hex.DecodeString(m[4])
			if err != nil {
				return Frame{}, &FrameError{Cause: CauseChecksumFail, Stage: "framer.pocketsdr", PRN: prn, TOW: uint32(tow)}
			}
			return Frame{
				Kind:    KindPocketSDR,
				PRN:     prn,
				TOW:     uint32(tow),
				Payload: payload,
			}, nil
		}
		if err := scanner.Err(); err != nil {
			return Frame{}, err
		}
		return Frame{}, io.EOF
	}
}
