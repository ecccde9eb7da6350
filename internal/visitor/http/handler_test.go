package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Record(ctx context.Context, direction string) (*visitor.Log, error) {
	args := m.Called(ctx, direction)
	l, _ := args.Get(0).(*visitor.Log)
	return l, args.Error(1)
}

func (m *mockService) Today(ctx context.Context) (*visitor.DailyCount, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(*visitor.DailyCount)
	return d, args.Error(1)
}

func (m *mockService) History(ctx context.Context, days int) ([]visitor.DailyCount, error) {
	args := m.Called(ctx, days)
	d, _ := args.Get(0).([]visitor.DailyCount)
	return d, args.Error(1)
}

func (m *mockService) Range(ctx context.Context, from, to string) ([]visitor.DailyCount, error) {
	args := m.Called(ctx, from, to)
	d, _ := args.Get(0).([]visitor.DailyCount)
	return d, args.Error(1)
}

func setupRouter(svc visitor.Service, key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), RequireDeviceKey(key))
	return r
}

func TestPulse_DeviceKey(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, "sensor-key")

	svc.On("Record", mock.Anything, "masuk").
		Return(&visitor.Log{ID: 7, Direction: visitor.DirectionIn, Timestamp: time.Now()}, nil).Once()

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/visitors/pulse", strings.NewReader(`{"direction":"masuk"}`))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(DeviceKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, send("").Code)
	assert.Equal(t, http.StatusUnauthorized, send("wrong").Code)

	w := send("sensor-key")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"direction":"in"`)
	svc.AssertExpectations(t)
}

func TestPulse_FormEncodedAndInvalidDirection(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, "")

	svc.On("Record", mock.Anything, "sideways").Return(nil, visitor.ErrInvalidDirection).Once()

	req := httptest.NewRequest(http.MethodPost, "/v1/visitors/pulse", strings.NewReader("direction=sideways"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc, "")

	svc.On("Today", mock.Anything).Return(&visitor.DailyCount{Date: "2024-06-01", In: 3, Out: 1, Total: 4, Inside: 2}, nil).Once()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2024-06-01","in":3,"out":1,"total":4,"inside":2}`, w.Body.String())

	svc.On("History", mock.Anything, 2).Return([]visitor.DailyCount{
		{Date: "2024-05-31", Total: 0},
		{Date: "2024-06-01", In: 3, Out: 1, Total: 4, Inside: 2},
	}, nil).Once()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/stats/historical?days=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"labels":["2024-05-31","2024-06-01"]`)
	assert.Contains(t, w.Body.String(), `"data":[0,4]`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/stats/historical?days=365", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}
