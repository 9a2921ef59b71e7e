package rtcm

import (
	"math"

	"github.com/bramburn/gnssaug/pkg/gnssaug/bitio"
	"github.com/bramburn/gnssaug/pkg/gnssaug/crc24q"
)

// Navigation system identifiers, numerically identical to RTKLIB's
// SYS_* bitmask constants (the range-dispatch tables in
// DecodeRTCMMessage and GetMessageTypeDescription key off these).
const (
	SYS_GPS = 0x01
	SYS_SBS = 0x02
	SYS_GLO = 0x04
	SYS_GAL = 0x08
	SYS_QZS = 0x10
	SYS_CMP = 0x20
	SYS_IRN = 0x40
)

const (
	D2R = math.Pi / 180.0
	R2D = 180.0 / math.Pi
)

// PRN ranges per system, used by SatNo below.
const (
	minPRNGPS, maxPRNGPS = 1, 32
	minPRNGLO, maxPRNGLO = 1, 27
	minPRNGAL, maxPRNGAL = 1, 36
	minPRNQZS, maxPRNQZS = 193, 202
	minPRNCMP, maxPRNCMP = 1, 63
	minPRNIRN, maxPRNIRN = 1, 14
	minPRNSBS, maxPRNSBS = 120, 158

	nSatGPS = maxPRNGPS - minPRNGPS + 1
	nSatGLO = maxPRNGLO - minPRNGLO + 1
	nSatGAL = maxPRNGAL - minPRNGAL + 1
	nSatQZS = maxPRNQZS - minPRNQZS + 1
	nSatCMP = maxPRNCMP - minPRNCMP + 1
	nSatIRN = maxPRNIRN - minPRNIRN + 1
)

// SatNo maps a (system, PRN) pair onto a single contiguous satellite
// index, the same scheme RTKLIB's SatNo uses, needed wherever a
// decoded message must key a per-satellite cache by a single int.
func SatNo(sys, prn int) int {
	if prn <= 0 {
		return 0
	}
	switch sys {
	case SYS_GPS:
		if prn < minPRNGPS || prn > maxPRNGPS {
			return 0
		}
		return prn - minPRNGPS + 1
	case SYS_GLO:
		if prn < minPRNGLO || prn > maxPRNGLO {
			return 0
		}
		return nSatGPS + prn - minPRNGLO + 1
	case SYS_GAL:
		if prn < minPRNGAL || prn > maxPRNGAL {
			return 0
		}
		return nSatGPS + nSatGLO + prn - minPRNGAL + 1
	case SYS_QZS:
		if prn < minPRNQZS || prn > maxPRNQZS {
			return 0
		}
		return nSatGPS + nSatGLO + nSatGAL + prn - minPRNQZS + 1
	case SYS_CMP:
		if prn < minPRNCMP || prn > maxPRNCMP {
			return 0
		}
		return nSatGPS + nSatGLO + nSatGAL + nSatQZS + prn - minPRNCMP + 1
	case SYS_IRN:
		if prn < minPRNIRN || prn > maxPRNIRN {
			return 0
		}
		return nSatGPS + nSatGLO + nSatGAL + nSatQZS + nSatCMP + prn - minPRNIRN + 1
	case SYS_SBS:
		if prn < minPRNSBS || prn > maxPRNSBS {
			return 0
		}
		return nSatGPS + nSatGLO + nSatGAL + nSatQZS + nSatCMP + nSatIRN + prn - minPRNSBS + 1
	}
	return 0
}

// GetBitU, GetBits, SetBitU and SetBits forward to the bitio package's
// free-function form: this package's decode/encode routines index
// fields directly by bit offset rather than through a stateful Cursor,
// matching the call pattern the teacher's RTKLIB port used.
func GetBitU(buf []byte, pos, n int) uint32 { return bitio.GetBitU(buf, pos, n) }
func GetBits(buf []byte, pos, n int) int32  { return bitio.GetBits(buf, pos, n) }
func SetBitU(buf []byte, pos, n int, data uint32) { bitio.SetBitU(buf, pos, n, data) }
func SetBits(buf []byte, pos, n int, data int32)  { bitio.SetBits(buf, pos, n, data) }

// Rtk_CRC24q computes the CRC-24Q of buf[:n], delegating to the
// crc24q package (itself wrapping goblimey/go-crc24q).
func Rtk_CRC24q(buf []byte, n int) uint32 {
	if n > len(buf) {
		n = len(buf)
	}
	return crc24q.Sum24(buf[:n])
}
