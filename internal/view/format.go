package view

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count in the largest unit (up to GB) that keeps
// the value at or above one, rounded to two decimals.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	unit := 0
	divisor := int64(1)
	for remaining := bytes; remaining >= 1024 && unit < len(sizeUnits)-1; remaining /= 1024 {
		unit++
		divisor *= 1024
	}

	value := math.Round(float64(bytes)/float64(divisor)*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[unit]
}

// FormatRelative describes t relative to now, switching to a calendar date
// after a week.
func FormatRelative(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	minutes := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%d min ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case days < 7:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		return t.Format("1/2/2006")
	}
}

func plural(n int64) string {
	if n > 1 {
		return "s"
	}
	return ""
}
