// Package shared holds small helpers used by several client packages.
package shared

// WipeByteArray zeroes b in place. Passwords read from the terminal are
// wiped this way once they have been sent. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
