package schedparse

import (
	"fmt"

	"github.com/peiyu/classmeet/internal/pkg/timeutil"
)

// periodNames maps canonical on-the-hour start times to institution
// style period labels. The table covers the common school day; start
// times off the hour fall back to a computed label.
var periodNames = map[string]string{
	"08:00": "Period 1",
	"09:00": "Period 2",
	"10:00": "Period 3",
	"11:00": "Period 4",
	"12:00": "Period 5",
	"13:00": "Period 6",
	"14:00": "Period 7",
	"15:00": "Period 8",
	"16:00": "Period 9",
	"17:00": "Period 10",
	"18:00": "Period 11",
	"19:00": "Period 12",
	"20:00": "Period 13",
	"21:00": "Period 14",
	"22:00": "Period 15",
}

// PeriodName maps a "HH:MM" start time to a period label. Exact matches
// come from the fixed table; other start times inside the 08:00-22:59
// school day get an approximate computed label (hour 8 is period 1).
// Start times outside that window have no sensible label and fail.
func PeriodName(start string) (string, error) {
	if name, ok := periodNames[start]; ok {
		return name, nil
	}
	c, err := timeutil.ParseClock(start)
	if err != nil {
		return "", err
	}
	if c.Hour < 8 || c.Hour > 22 {
		return "", fmt.Errorf("no period label for start time %s", start)
	}
	return fmt.Sprintf("Period %d", c.Hour-7), nil
}
