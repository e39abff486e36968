package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Ms converts a millisecond count from configuration into a Duration.
func Ms[T ~uint8 | ~uint16 | ~uint32 | ~int](ms T) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
