package interview

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// TotalTime продолжительность "1 hour 30 minutes"; окончание раньше начала - переход через полночь
func TotalTime(start, end *datatypes.Time) string {
	if start == nil || end == nil {
		return ""
	}
	diff := time.Duration(*end) - time.Duration(*start)
	if diff < 0 {
		diff += 24 * time.Hour
	}
	totalMinutes := int(diff / time.Minute)
	if totalMinutes <= 0 {
		return ""
	}
	hours, minutes := totalMinutes/60, totalMinutes%60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%s %s", plural(hours, "hour"), plural(minutes, "minute"))
	case hours > 0:
		return plural(hours, "hour")
	}
	return plural(minutes, "minute")
}

func plural(value int, unit string) string {
	if value > 1 {
		return fmt.Sprintf("%d %ss", value, unit)
	}
	return fmt.Sprintf("%d %s", value, unit)
}
