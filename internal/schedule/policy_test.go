package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		size   string
		want   int
		wantOK bool
	}{
		{"135 Gallon", 135, true},
		{"10 Gallon", 10, true},
		{"29g", 29, true},
		{"  40 breeder", 40, true},
		{"Stage 6", 0, false},
		{"Large pot", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			got, ok := Capacity(tt.size)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitCompletion(t *testing.T) {
	tests := []struct {
		name     string
		taskName string
		itemType string
		capacity int
		want     bool
	}{
		{"large freshwater water change", "Water Change", "Freshwater", 135, true},
		{"case-insensitive task match", "weekly WATER CHANGE", "Saltwater", 75, true},
		{"boundary capacity excluded", "Water Change", "Freshwater", 29, false},
		{"just above boundary", "Water Change", "Cichlid", 30, true},
		{"small tank", "Water Change", "Freshwater", 10, false},
		{"non-aquarium type", "Water Change", "Tropical", 135, false},
		{"non water-change task", "Clean Canister Filters", "Freshwater", 135, false},
		{"plant watering", "Watering", "Monstera", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitCompletion(tt.taskName, tt.itemType, tt.capacity)
			assert.Equal(t, tt.want, got)
		})
	}
}
