package util

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewEtag returns an opaque etag for a freshly mapped exemptions snapshot.
func NewEtag() string {
	sum := sha1.Sum([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}
