package domain

import (
	"time"
)

// Period is a closed interval [Start, End] in UTC, covering one calendar
// month as seen from the reference timezone.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
