package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/dashboard"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Summary(ctx context.Context, actor reservation.Actor) (*dashboard.Summary, error) {
	args := m.Called(ctx, actor)
	s, _ := args.Get(0).(*dashboard.Summary)
	return s, args.Error(1)
}

func setupRouter(t *testing.T, svc dashboard.Service) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.AuthRequired(jwtManager, auth.NoopRevoker{}))
	return r, jwtManager
}

func getDashboard(t *testing.T, r http.Handler, m *auth.JWTManager, userID, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	if userID != "" {
		tok, err := m.GenerateAccessToken(userID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSummary_ResponseShape(t *testing.T) {
	svc := new(mockService)
	r, jm := setupRouter(t, svc)

	member := reservation.Actor{UserID: "user-1", Role: auth.RoleUser}
	svc.On("Summary", mock.Anything, member).Return(&dashboard.Summary{
		Date:         "2024-06-01",
		StatusCounts: map[reservation.Status]int{reservation.StatusPending: 2, reservation.StatusActive: 1},
		Visitors:     visitor.DailyCount{Date: "2024-06-01", In: 7, Out: 4, Total: 11, Inside: 3},
		TodayReservations: []*reservation.Reservation{{
			ID: "res-1", UserID: "user-1", Date: "2024-06-01",
			StartTime: "09:00", EndTime: "10:00", Status: reservation.StatusActive,
		}},
	}, nil).Once()

	w := getDashboard(t, r, jm, member.UserID, member.Role)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.Contains(t, body, `"date":"2024-06-01"`)
	assert.Contains(t, body, `"status_counts":{"active":1,"completed":0,"pending":2,"rejected":0,"scheduled":0}`)
	assert.Contains(t, body, `"visitors":{"date":"2024-06-01","in":7,"out":4,"total":11,"inside":3}`)
	assert.Contains(t, body, `"today_reservations":[{"id":"res-1"`)
	svc.AssertExpectations(t)
}

func TestSummary_EmptyListRendersArray(t *testing.T) {
	svc := new(mockService)
	r, jm := setupRouter(t, svc)

	svc.On("Summary", mock.Anything, mock.Anything).Return(&dashboard.Summary{Date: "2024-06-01"}, nil).Once()

	w := getDashboard(t, r, jm, "admin-1", auth.RoleAdmin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"today_reservations":[]`)
}

func TestSummary_Errors(t *testing.T) {
	svc := new(mockService)
	r, jm := setupRouter(t, svc)

	assert.Equal(t, http.StatusUnauthorized, getDashboard(t, r, jm, "", "").Code)
	svc.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything)

	svc.On("Summary", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	assert.Equal(t, http.StatusInternalServerError, getDashboard(t, r, jm, "admin-1", auth.RoleAdmin).Code)
}
