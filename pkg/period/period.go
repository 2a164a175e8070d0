package period

import (
	"time"

	"github.com/everhype/monthclose/pkg/domain"
)

// PreviousMonth returns the fully elapsed calendar month before now, as seen
// from the reference timezone. Start is the first local midnight of that
// month, End is 23:59:59 on its last local day, both in UTC at whole seconds.
//
// The reference timezone must be a civil timezone so the tz database handles
// DST offsets; a fixed UTC offset would shift the month boundary twice a year.
func PreviousMonth(now time.Time, ref *time.Location) domain.Period {
	local := now.In(ref)

	// Pin to the 1st of the current month, step back one day to land in
	// the previous month. Run on the 1st this still yields the month that
	// just finished.
	lastDay := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, ref).AddDate(0, 0, -1)

	start := time.Date(lastDay.Year(), lastDay.Month(), 1, 0, 0, 0, 0, ref)
	end := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, ref)

	return domain.Period{
		Start: start.UTC().Truncate(time.Second),
		End:   end.UTC().Truncate(time.Second),
	}
}
