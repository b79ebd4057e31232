package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/BVSTSirop/pokeguess/internal/names"
)

// DateKey returns YYYY-MM-DD in UTC. The challenge rolls over at UTC
// midnight for every player.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// AnswerIndex returns a deterministic index for a date using
// HMAC(salt, YYYY-MM-DD) % n.
func AnswerIndex(dateKey, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	sum := h.Sum(nil)
	// first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// AnswerID picks the day's species from the list.
func AnswerID(dateKey, salt string, list []names.Entry) int {
	if len(list) == 0 {
		return 1
	}
	return list[AnswerIndex(dateKey, salt, len(list))].ID
}
