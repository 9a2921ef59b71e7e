package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/bramburn/gnssaug/pkg/gnssaug/bitio"
	"github.com/bramburn/gnssaug/pkg/gnssaug/cssr"
	"github.com/bramburn/gnssaug/pkg/gnssaug/framer"
	"github.com/sirupsen/logrus"
)

// testLogger returns a logrus.Logger wired the same way main() wires
// one, but writing to io.Discard so test output stays quiet.
func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPipelineRTCMDispatch(t *testing.T) {
	data := []byte{
		0xD3, 0x00, 0x13, // Header (preamble + length)
		0x3E, 0xD7, 0xD3, 0x02, 0x02, 0x98, 0x0E, 0xDE, 0xEF, 0x34, 0xB4, 0xBD, 0x62, 0xAC, 0x09, 0x41, 0x98, 0x6F, 0x33,
		0x36, 0x0B, 0x98, // CRC
	}

	var diag bytes.Buffer
	var rawOut bytes.Buffer
	opts := &Options{}
	printer := NewPrinter(&diag, false, 1)
	p := NewPipeline(opts, printer, &rawOut, &cssr.CLAS, testLogger())

	next := framer.NewFrameFunc(bytes.NewReader(data), framer.KindRTCM3)
	if err := p.Run(next); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diag.Len() == 0 {
		t.Errorf("expected diagnostic output, got none")
	}
}

func TestPipelineHonorsPRNFilter(t *testing.T) {
	opts := &Options{}
	opts.PRN.Value = 99
	opts.PRN.set = true

	printer := NewPrinter(io.Discard, false, 0)
	p := NewPipeline(opts, printer, io.Discard, &cssr.CLAS, testLogger())

	calls := 0
	next := func() (framer.Frame, error) {
		calls++
		if calls > 1 {
			return framer.Frame{}, io.EOF
		}
		return framer.Frame{Kind: framer.KindAllystar, PRN: 1, Payload: make([]byte, 252)}, nil
	}

	if err := p.Run(next); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(p.subframes) != 0 {
		t.Errorf("expected PRN filter to drop frame for PRN=1, got %d subframe trackers", len(p.subframes))
	}
}

func TestL6SubframeIndicatorShortPayload(t *testing.T) {
	if l6SubframeIndicator(nil) {
		t.Errorf("expected false for empty payload")
	}
}
