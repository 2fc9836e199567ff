package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/brightpath-ai/brightpath/pkg/models"
)

// Fingerprint computes a SHA-256 cache key from an intervention kind and
// its context. The context is serialized as JSON, which sorts map keys
// and escapes values, so field order never changes the result and
// values containing delimiter characters cannot collide.
func Fingerprint(kind models.Kind, context map[string]string) string {
	payload, _ := json.Marshal(context)

	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{'|'})
	h.Write(payload)
	return fmt.Sprintf("%x", h.Sum(nil))
}
