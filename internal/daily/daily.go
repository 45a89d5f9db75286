// internal/daily/daily.go
//
// Daily challenge seeding. Every player who starts a daily game on the same
// UTC date gets the same letter stream: the generator's random source is
// seeded from HMAC(salt, YYYY-MM-DD).

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives two PCG seed words for a date using HMAC(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) (uint64, uint64) {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// Source returns a random source seeded for the given date.
func Source(date time.Time, salt string) *rand.Rand {
	a, b := Seed(date, salt)
	return rand.New(rand.NewPCG(a, b))
}
