package http

import (
	"time"

	"github.com/ukk/facility-booking-backend/internal/visitor"
)

// PulseRequest is sent by the entrance sensor, either as JSON or as a form field.
type PulseRequest struct {
	Direction string `json:"direction" form:"direction" binding:"required"`
}

type PulseResponse struct {
	ID        int64     `json:"id"`
	Direction string    `json:"direction"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoricalRequest struct {
	Days int `form:"days" binding:"omitempty,min=1,max=90"`
}

type DailyCountResponse struct {
	Date   string `json:"date"`
	In     int    `json:"in"`
	Out    int    `json:"out"`
	Total  int    `json:"total"`
	Inside int    `json:"inside"`
}

// HistoricalResponse carries chart-ready labels and totals next to the full rows.
type HistoricalResponse struct {
	Labels []string             `json:"labels"`
	Data   []int                `json:"data"`
	Days   []DailyCountResponse `json:"days"`
}

func NewDailyCountResponse(d visitor.DailyCount) DailyCountResponse {
	return DailyCountResponse{
		Date:   d.Date,
		In:     d.In,
		Out:    d.Out,
		Total:  d.Total,
		Inside: d.Inside,
	}
}

func NewHistoricalResponse(days []visitor.DailyCount) HistoricalResponse {
	resp := HistoricalResponse{
		Labels: make([]string, 0, len(days)),
		Data:   make([]int, 0, len(days)),
		Days:   make([]DailyCountResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Labels = append(resp.Labels, d.Date)
		resp.Data = append(resp.Data, d.Total)
		resp.Days = append(resp.Days, NewDailyCountResponse(d))
	}
	return resp
}
