package conv

// Utoa writes n in base 10 into the tail of buf and returns that slice.
// Digits that do not fit are dropped from the front.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 || i == 0 {
			break
		}
	}
	return buf[i:]
}
