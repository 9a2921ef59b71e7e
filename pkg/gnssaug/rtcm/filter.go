package rtcm

// Filter decides whether a decoded message type should be kept by a
// consumer, restricting output to a subset of message types without
// touching the decode path itself.
type Filter func(msgType int) bool

// DefaultFilter passes everything except the rarely-useful system
// parameters message (1013) and proprietary message 4094; other
// vendor-proprietary types (4001-4093, 4095) pass.
func DefaultFilter() Filter {
	return func(msgType int) bool {
		switch msgType {
		case 1013, 4094:
			return false
		default:
			return true
		}
	}
}

// ObservationFilter keeps only reference-station, ephemeris and
// high-rate MSM4 observation messages for GPS/GLONASS/Galileo/BeiDou.
func ObservationFilter() Filter {
	return func(msgType int) bool {
		switch msgType {
		case RTCM_STATION_COORDINATES, RTCM_STATION_COORDINATES_ALT,
			RTCM_GPS_EPHEMERIS, RTCM_GLONASS_EPHEMERIS,
			1074, 1084, 1094, 1124:
			return true
		default:
			return false
		}
	}
}

// SSRFilter keeps only the CSSR/SSR correction message range.
func SSRFilter() Filter {
	return func(msgType int) bool {
		return msgType >= SSR_ORBIT_CLOCK_START && msgType <= SSR_PHASE_BIAS_END
	}
}

// Apply runs filter over msgTypes and returns the kept subset.
func Apply(msgTypes []int, filter Filter) []int {
	kept := make([]int, 0, len(msgTypes))
	for _, t := range msgTypes {
		if filter(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
