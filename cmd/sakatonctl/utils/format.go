// Package utils provides utility functions for the sakatonctl CLI.
package utils

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration in its largest whole unit, with one
// decimal for sub-minute values so short tap sessions stay readable.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	} else {
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// Rate returns events per second over d, zero for an empty interval.
func Rate(events int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(events) / d.Seconds()
}
