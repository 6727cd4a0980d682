package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEntry_UnmarshalShapes(t *testing.T) {
	tests := map[string]struct {
		data string
		want HistoryEntry
	}{
		"bare date string": {
			data: `"2026-01-10"`,
			want: HistoryEntry{Date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.Local)},
		},
		"object with side": {
			data: `{"date": "2026-01-10", "side": "Left"}`,
			want: HistoryEntry{
				Date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.Local),
				Side: "Left",
			},
		},
		"object with null side": {
			data: `{"date": "2026-01-10", "side": null}`,
			want: HistoryEntry{Date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.Local)},
		},
		"rfc3339 date": {
			data: `{"date": "2026-01-10T08:30:00Z"}`,
			want: HistoryEntry{Date: time.Date(2026, time.January, 10, 8, 30, 0, 0, time.UTC)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got HistoryEntry
			require.NoError(t, json.Unmarshal([]byte(tt.data), &got))
			assert.True(t, tt.want.Date.Equal(got.Date), "date %v != %v", got.Date, tt.want.Date)
			assert.Equal(t, tt.want.Side, got.Side)
		})
	}
}

func TestHistoryEntry_UnmarshalRejectsGarbage(t *testing.T) {
	var e HistoryEntry
	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &e))
	assert.Error(t, json.Unmarshal([]byte(`{"date": "jan 10"}`), &e))
	assert.Error(t, json.Unmarshal([]byte(`42`), &e))
}

func TestTask_UnmarshalLegacyLastCompleted(t *testing.T) {
	data := []byte(`{
		"name": "Water Change",
		"frequency": 7,
		"lastCompleted": "2026-01-10",
		"history": ["2026-01-10"]
	}`)

	var task Task
	require.NoError(t, json.Unmarshal(data, &task))
	assert.Equal(t, "Water Change", task.Name)
	assert.Equal(t, 7, task.FrequencyDays)
	require.NotNil(t, task.LastCompleted)
	assert.True(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.Local).Equal(*task.LastCompleted))
	require.Len(t, task.History, 1)
}

func TestTask_UnmarshalNullLastCompleted(t *testing.T) {
	data := []byte(`{"name": "Watering", "frequency": 7, "lastCompleted": null, "history": []}`)

	var task Task
	require.NoError(t, json.Unmarshal(data, &task))
	assert.Nil(t, task.LastCompleted)
	assert.Empty(t, task.History)
}

func TestTask_MarshalRoundTrip(t *testing.T) {
	last := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.Local)
	task := Task{
		ID:            "a1",
		Name:          "Water Change",
		FrequencyDays: 7,
		LastCompleted: &last,
		History: []HistoryEntry{
			{Date: last, Side: "Right"},
		},
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var got Task
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, task.ID, got.ID)
	require.NotNil(t, got.LastCompleted)
	assert.True(t, last.Equal(*got.LastCompleted))
	require.Len(t, got.History, 1)
	assert.Equal(t, "Right", got.History[0].Side)
}
