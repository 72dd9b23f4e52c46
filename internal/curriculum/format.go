package curriculum

import (
	"fmt"

	"github.com/coursehub/backend/internal/models"
)

const unknownLevelText = "Beginner to Advanced"

var levelText = map[models.Level]string{
	models.LevelBeginner:     "Beginner",
	models.LevelIntermediate: "Intermediate",
	models.LevelAdvanced:     "Advanced",
}

// FormatDuration renders a duration in minutes as "1h 30m", "1h" or "45m".
// Zero and negative values render as "0m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	rest := minutes % 60

	switch {
	case hours > 0 && rest > 0:
		return fmt.Sprintf("%dh %dm", hours, rest)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", rest)
	}
}

// FormatLevel renders a course level in title case
func FormatLevel(level models.Level) string {
	if text, ok := levelText[level]; ok {
		return text
	}
	return unknownLevelText
}
