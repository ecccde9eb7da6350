package visitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukk/facility-booking-backend/internal/pkg/clock"
)

type memoryRepository struct {
	mu   sync.Mutex
	logs []Log
	// windows records the last CountByWindows argument.
	windows []Window
}

func (m *memoryRepository) Insert(_ context.Context, direction Direction, at time.Time) (*Log, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := Log{ID: int64(len(m.logs) + 1), Direction: direction, Timestamp: at}
	m.logs = append(m.logs, l)
	return &l, nil
}

func (m *memoryRepository) CountByWindows(_ context.Context, windows []Window) ([]Tally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = windows
	out := make([]Tally, len(windows))
	for i, w := range windows {
		for _, l := range m.logs {
			if l.Timestamp.Before(w.Start) || !l.Timestamp.Before(w.End) {
				continue
			}
			if l.Direction == DirectionIn {
				out[i].In++
			} else {
				out[i].Out++
			}
		}
	}
	return out, nil
}

var jakarta = time.FixedZone("WIB", 7*60*60)

func newTestService(now time.Time) (Service, *memoryRepository, *clock.Fixed) {
	repo := &memoryRepository{}
	clk := clock.NewFixed(now)
	return NewService(repo, clk), repo, clk
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"in": DirectionIn, "IN": DirectionIn, " masuk ": DirectionIn,
		"out": DirectionOut, "Keluar": DirectionOut,
	} {
		got, err := ParseDirection(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestRecordAndToday(t *testing.T) {
	svc, repo, clk := newTestService(time.Date(2024, 6, 1, 8, 0, 0, 0, jakarta))
	ctx := context.Background()

	for _, dir := range []string{"in", "masuk", "in", "out"} {
		_, err := svc.Record(ctx, dir)
		require.NoError(t, err)
		clk.Advance(time.Minute)
	}
	_, err := svc.Record(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Len(t, repo.logs, 4)

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, DailyCount{Date: "2024-06-01", In: 3, Out: 1, Total: 4, Inside: 2}, *today)
}

func TestToday_InsideMayGoNegative(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 6, 1, 8, 0, 0, 0, jakarta))
	ctx := context.Background()

	_, err := svc.Record(ctx, "out")
	require.NoError(t, err)

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, today.Inside)
	assert.Equal(t, 1, today.Total)
}

func TestHistory_FillsMissingDaysOldestFirst(t *testing.T) {
	svc, repo, _ := newTestService(time.Date(2024, 6, 7, 12, 0, 0, 0, jakarta))
	ctx := context.Background()

	repo.logs = []Log{
		{Direction: DirectionIn, Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, jakarta)},
		{Direction: DirectionIn, Timestamp: time.Date(2024, 6, 3, 23, 59, 59, 0, jakarta)},
		{Direction: DirectionOut, Timestamp: time.Date(2024, 6, 4, 0, 0, 0, 0, jakarta)},
		// 2024-05-31 23:30 local is outside the seven-day window.
		{Direction: DirectionIn, Timestamp: time.Date(2024, 5, 31, 16, 30, 0, 0, time.UTC)},
	}

	days, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, days, DefaultHistoryDays)

	dates := make([]string, len(days))
	totals := make([]int, len(days))
	for i, d := range days {
		dates[i] = d.Date
		totals[i] = d.Total
	}
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"}, dates)
	assert.Equal(t, []int{1, 0, 1, 1, 0, 0, 0}, totals)

	assert.True(t, repo.windows[0].Start.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, jakarta)))
}

func TestHistory_Bounds(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 6, 7, 12, 0, 0, 0, jakarta))
	ctx := context.Background()

	_, err := svc.History(ctx, MaxHistoryDays+1)
	assert.ErrorIs(t, err, ErrInvalidDays)
	_, err = svc.History(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidDays)

	days, err := svc.History(ctx, MaxHistoryDays)
	require.NoError(t, err)
	assert.Len(t, days, MaxHistoryDays)
	assert.Equal(t, "2024-06-07", days[len(days)-1].Date)
}

func TestRange(t *testing.T) {
	svc, _, _ := newTestService(time.Date(2024, 6, 7, 12, 0, 0, 0, jakarta))
	ctx := context.Background()

	days, err := svc.Range(ctx, "2024-02-27", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, "2024-02-29", days[2].Date)

	one, err := svc.Range(ctx, "2024-06-01", "2024-06-01")
	require.NoError(t, err)
	assert.Len(t, one, 1)

	_, err = svc.Range(ctx, "2024-06-02", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.Range(ctx, "yesterday", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.Range(ctx, "2020-01-01", "2024-06-01")
	assert.ErrorIs(t, err, ErrRangeTooLong)
}
