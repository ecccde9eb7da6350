package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukk/facility-booking-backend/internal/pkg/clock"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

type stubReservations struct {
	reservation.Service
	mock.Mock
}

func (s *stubReservations) CountByStatus(ctx context.Context) (map[reservation.Status]int, error) {
	args := s.Called(ctx)
	counts, _ := args.Get(0).(map[reservation.Status]int)
	return counts, args.Error(1)
}

func (s *stubReservations) List(ctx context.Context, f reservation.Filter) ([]*reservation.Reservation, int, error) {
	args := s.Called(ctx, f)
	list, _ := args.Get(0).([]*reservation.Reservation)
	return list, args.Int(1), args.Error(2)
}

type stubVisitors struct {
	visitor.Service
	mock.Mock
}

func (s *stubVisitors) Today(ctx context.Context) (*visitor.DailyCount, error) {
	args := s.Called(ctx)
	d, _ := args.Get(0).(*visitor.DailyCount)
	return d, args.Error(1)
}

func TestSummary(t *testing.T) {
	res := &stubReservations{}
	vis := &stubVisitors{}
	svc := NewService(res, vis, clock.NewFixed(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)))

	counts := map[reservation.Status]int{reservation.StatusActive: 1, reservation.StatusPending: 2}
	res.On("CountByStatus", mock.Anything).Return(counts, nil).Once()
	res.On("List", mock.Anything, reservation.Filter{UserID: "user-1", DateFrom: "2024-06-01", DateTo: "2024-06-01", SortOrder: "ASC"}).
		Return([]*reservation.Reservation{{ID: "r1", Status: reservation.StatusActive}}, 1, nil).Once()
	vis.On("Today", mock.Anything).Return(&visitor.DailyCount{Date: "2024-06-01", In: 5, Out: 2, Total: 7, Inside: 3}, nil).Once()

	got, err := svc.Summary(context.Background(), reservation.Actor{UserID: "user-1", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.Date)
	assert.Equal(t, counts, got.StatusCounts)
	assert.Equal(t, 3, got.Visitors.Inside)
	require.Len(t, got.TodayReservations, 1)

	res.AssertExpectations(t)
	vis.AssertExpectations(t)
}

func TestSummary_AdminSeesAllAndErrorsPropagate(t *testing.T) {
	res := &stubReservations{}
	vis := &stubVisitors{}
	svc := NewService(res, vis, clock.NewFixed(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)))

	boom := errors.New("db down")
	res.On("CountByStatus", mock.Anything).Return(map[reservation.Status]int{}, nil).Once()
	res.On("List", mock.Anything, reservation.Filter{DateFrom: "2024-06-01", DateTo: "2024-06-01", SortOrder: "ASC"}).
		Return([]*reservation.Reservation(nil), 0, nil).Once()
	vis.On("Today", mock.Anything).Return(nil, boom).Once()

	_, err := svc.Summary(context.Background(), reservation.Actor{UserID: "admin-1", Role: "admin"})
	assert.ErrorIs(t, err, boom)
	res.AssertExpectations(t)
}
