package common

// WipeByteArray overwrites b with zeros. Used for plaintext passwords read
// from the terminal once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
