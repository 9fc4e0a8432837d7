// Package meetcode generates human readable meeting join codes in the
// three-groups-of-four form used by the meet links, e.g. abcd-efgh-ijkl.
package meetcode

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	alphabet  = "abcdefghijklmnopqrstuvwxyz"
	groups    = 3
	groupSize = 4
)

// Generate returns a fresh code. Uniqueness is probabilistic only, no
// collision check is performed here.
func Generate() string {
	var b strings.Builder
	b.Grow(groups*groupSize + groups - 1)
	for g := 0; g < groups; g++ {
		if g > 0 {
			b.WriteByte('-')
		}
		for i := 0; i < groupSize; i++ {
			b.WriteByte(alphabet[rand.Intn(len(alphabet))])
		}
	}
	return b.String()
}

// Fallback returns a timestamp-based identifier for records that do not need
// a joinable code, a uuid fragment keeps same-millisecond calls distinct.
func Fallback() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
