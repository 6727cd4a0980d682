package schedule

import (
	"strconv"
	"strings"
	"unicode"
)

// aquariumTypes are the item types whose large water changes get split
// Left/Right completion buttons.
var aquariumTypes = map[string]bool{
	"Freshwater": true,
	"Saltwater":  true,
	"Cichlid":    true,
	"Coldwater":  true,
	"Brackish":   true,
}

// splitCapacityGallons is the capacity above which a tank counts as large
// enough to be maintained one side at a time.
const splitCapacityGallons = 29

// Capacity parses a leading integer out of the free-text size field
// ("135 Gallon" -> 135). The second return is false when the size does
// not start with a number ("Stage 6" has no capacity).
func Capacity(size string) (int, bool) {
	size = strings.TrimSpace(size)
	end := 0
	for end < len(size) && unicode.IsDigit(rune(size[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(size[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SplitCompletion reports whether a task should offer per-side Left/Right
// completion instead of a single button: a water-change-class task on a
// large aquarium. This is presentation policy, not engine logic; the
// engine stores whatever side label it is handed either way.
func SplitCompletion(taskName, itemType string, capacity int) bool {
	if !strings.Contains(strings.ToLower(taskName), "water change") {
		return false
	}
	if !aquariumTypes[itemType] {
		return false
	}
	return capacity > splitCapacityGallons
}
