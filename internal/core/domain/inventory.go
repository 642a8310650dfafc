package domain

// Inventory levels. Anything above LevelNormal is treated as well stocked.
const (
	LevelCriticallyLow = 1
	LevelLow           = 2
	LevelNormal        = 3
)

// LevelLabel is the wording used in low-stock alerts.
func LevelLabel(level int) string {
	switch {
	case level <= LevelCriticallyLow:
		return "CRITICALLY LOW"
	case level == LevelLow:
		return "LOW"
	default:
		return "NORMAL"
	}
}

// IsLowStock reports whether level warrants an alert.
func IsLowStock(level int) bool {
	return level <= LevelLow
}
