package knit

import (
	"github.com/minio/highwayhash"
)

var key = []byte("KNITSCOPE0WIRING0FINGERPRINT0KEY")

// Fingerprint returns a stable 64-bit digest of data.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// FingerprintString digests a string, returning zero on hasher failure.
func FingerprintString(data string) uint64 {
	hash, _ := Fingerprint([]byte(data))
	return hash
}
