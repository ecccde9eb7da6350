package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var (
	visitorHeader     = []string{"date", "in", "out", "total", "inside"}
	reservationHeader = []string{
		"id", "date", "start_time", "end_time", "requester", "pic_name",
		"description", "status", "rejection_reason", "created_at",
	}
)

// WriteCSV renders the report rows with a header line.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)

	switch rep.Type {
	case TypeVisitor:
		if err := cw.Write(visitorHeader); err != nil {
			return err
		}
		for _, d := range rep.Visitors {
			row := []string{
				d.Date,
				strconv.Itoa(d.In),
				strconv.Itoa(d.Out),
				strconv.Itoa(d.Total),
				strconv.Itoa(d.Inside),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	case TypeReservation:
		if err := cw.Write(reservationHeader); err != nil {
			return err
		}
		for _, r := range rep.Reservations {
			row := []string{
				r.ID, r.Date, r.StartTime, r.EndTime, r.UserName, r.PICName,
				r.Description, string(r.Status), r.RejectionReason,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("write csv: unsupported report type %q", rep.Type)
	}

	cw.Flush()
	return cw.Error()
}

// Filename suggests a download name such as visitor_2024-06-01_2024-06-07.csv.
func Filename(rep *Report) string {
	return fmt.Sprintf("%s_%s_%s.csv", rep.Type, rep.From, rep.To)
}
