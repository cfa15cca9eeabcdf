// Package conv formats integers into caller-provided buffers without fmt or
// strconv, for log lines and topic tokens on MCU builds.
package conv

// Itoa writes n in base 10 into the tail of buf and returns that slice.
// A buffer of 20 bytes holds any int64.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	// Negate in unsigned space so MinInt64 survives.
	out := Utoa(buf[min(len(buf), 1):], uint64(-(n+1))+1)
	if len(out) == 0 {
		return out
	}
	i := len(buf) - len(out) - 1
	buf[i] = '-'
	return buf[i:]
}
