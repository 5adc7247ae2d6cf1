package intern

import (
	"crypto/sha256"
	"encoding/hex"
)

// StringKey derives a stable intern key from raw string bytes, prefixed by
// kind so different call sites (string payloads vs. decimal literal text)
// never collide in a shared backend.
func StringKey(kind string, data []byte) string {
	sum := sha256.Sum256(data)
	return kind + ":" + hex.EncodeToString(sum[:16])
}
