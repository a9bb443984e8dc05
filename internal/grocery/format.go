package grocery

import (
	"fmt"
	"time"
)

// FormatRelative renders how long ago t was, relative to now, in the list's language.
func FormatRelative(now, t time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Ahora"
	case minutes < 60:
		return fmt.Sprintf("Hace %dm", minutes)
	case hours < 24:
		return fmt.Sprintf("Hace %dh", hours)
	case days > 1:
		return fmt.Sprintf("Hace %d días", days)
	default:
		return fmt.Sprintf("Hace %d día", days)
	}
}
