// Package safeconv converts between integer widths without silent wraparound.
package safeconv

import "math"

// ClampUint32 converts v to uint32, saturating at zero and math.MaxUint32.
func ClampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case uint64(v) > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
