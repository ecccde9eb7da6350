package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 0, 0, time.Local)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		start string
		end   string
		now   time.Time
		want  Status
	}{
		{"before start", "2024-06-01", "09:00", "10:00", at(8, 0), StatusScheduled},
		{"inside window", "2024-06-01", "09:00", "10:00", at(9, 30), StatusActive},
		{"after end", "2024-06-01", "09:00", "10:00", at(11, 0), StatusCompleted},
		{"exactly at start", "2024-06-01", "09:00", "10:00", at(9, 0), StatusActive},
		{"exactly at end", "2024-06-01", "09:00", "10:00", at(10, 0), StatusActive},
		{"one second past end", "2024-06-01", "09:00", "10:00", at(10, 0).Add(time.Second), StatusCompleted},
		{"seconds precision", "2024-06-01", "09:00:30", "10:00:00", at(9, 0).Add(15 * time.Second), StatusScheduled},
		{"previous day", "2024-05-31", "09:00", "10:00", at(8, 0), StatusCompleted},
		{"next day", "2024-06-02", "09:00", "10:00", at(23, 0), StatusScheduled},
		{"malformed date", "01/06/2024", "09:00", "10:00", at(11, 0), StatusScheduled},
		{"malformed start", "2024-06-01", "9am", "10:00", at(11, 0), StatusScheduled},
		{"malformed end", "2024-06-01", "09:00", "", at(11, 0), StatusScheduled},
		{"end before start after both", "2024-06-01", "10:00", "09:00", at(11, 0), StatusCompleted},
		{"end before start between", "2024-06-01", "10:00", "09:00", at(9, 30), StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.date, tt.start, tt.end, tt.now))
		})
	}
}

func TestDeriveStatus_Idempotent(t *testing.T) {
	now := at(9, 15)
	first := DeriveStatus("2024-06-01", "09:00", "10:00", now)
	second := DeriveStatus("2024-06-01", "09:00", "10:00", now)
	assert.Equal(t, first, second)
}

func TestDeriveStatus_MonotonicProgression(t *testing.T) {
	var seen []Status
	for now := at(7, 0); now.Before(at(12, 0)); now = now.Add(5 * time.Minute) {
		st := DeriveStatus("2024-06-01", "09:00", "10:00", now)
		if len(seen) == 0 || seen[len(seen)-1] != st {
			seen = append(seen, st)
		}
	}
	assert.Equal(t, []Status{StatusScheduled, StatusActive, StatusCompleted}, seen)
}

func TestDeriveStatus_UsesLocationOfNow(t *testing.T) {
	zone := time.FixedZone("UTC+7", 7*60*60)
	// 02:30 UTC is 09:30 in UTC+7.
	now := time.Date(2024, 6, 1, 2, 30, 0, 0, time.UTC).In(zone)
	assert.Equal(t, StatusActive, DeriveStatus("2024-06-01", "09:00", "10:00", now))
}

func TestStatusClassification(t *testing.T) {
	for _, st := range AllStatuses {
		assert.NotEqual(t, st.IsManual(), st.IsTimeDerived(), "status %s", st)
	}
	assert.True(t, StatusPending.IsManual())
	assert.True(t, StatusRejected.IsManual())
	assert.True(t, StatusActive.IsTimeDerived())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("completed")
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)

	_, err = ParseStatus("Completed")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
