package hcl

import (
	"github.com/minio/highwayhash"
	"github.com/specialistvlad/compflat/internal/sbml"
)

var digestKey = []byte("compflat-digest-key-0123456789AB")

// Digest returns a 64-bit fingerprint of the encoded form of doc. Documents
// that encode to the same bytes share a digest.
func Digest(doc *sbml.Document) (uint64, error) {
	data, err := NewCodec().Encode(doc)
	if err != nil {
		return 0, err
	}
	hash, err := highwayhash.New64(digestKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
