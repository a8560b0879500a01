package lookup

import (
	"math"
	"math/rand/v2"
	"time"
)

// DefaultInitialDelay is the wait before the second attempt.
const DefaultInitialDelay = time.Second

// Backoff computes the wait between attempts: Initial * 2^attempt, with
// attempt zero-indexed.
//
// Max and Jitter default to zero, which gives plain doubling. Set both when
// raising the attempt budget well beyond the default.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration // 0 = uncapped
	Jitter  float64       // extra random fraction of the delay, in [0, 1]
}

// Delay returns the wait after the given zero-indexed attempt.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	d := b.Initial
	for i := 0; i < attempt; i++ {
		if d > math.MaxInt64/2 {
			d = math.MaxInt64
			break
		}
		d *= 2
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}

	if b.Jitter > 0 && d > 0 {
		j := min(b.Jitter, 1)
		if extra := time.Duration(rand.Float64() * j * float64(d)); d+extra > d {
			d += extra
		}
	}
	return d
}
