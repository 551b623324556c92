package ports

import "time"

// Clock paces the polling loops.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}
