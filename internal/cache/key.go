package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Hash returns the SHA-256 hex digest of content. It is deterministic and
// stateless; use it to key ad-hoc content that has no file identity.
func Hash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// FileKey builds the identity-plus-freshness key used for files on disk:
// {resolvedAbsolutePath}:{modificationTimeMillis}.
func FileKey(absPath string, modTimeMillis int64) string {
	return absPath + ":" + strconv.FormatInt(modTimeMillis, 10)
}
