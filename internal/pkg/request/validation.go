package request

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
	ClockLayoutSecs = "15:04:05"
)

var registerOnce sync.Once

// RegisterValidators adds the calendar_date and clock_time tags to gin's validator.
// Safe to call more than once. It panics if a tag cannot be registered.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		mustRegister(v, "calendar_date", func(fl validator.FieldLevel) bool {
			return IsDate(fl.Field().String())
		})
		mustRegister(v, "clock_time", func(fl validator.FieldLevel) bool {
			return IsClock(fl.Field().String())
		})
	})
}

// mustRegister panics if tag cannot be registered on v.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// IsDate reports whether s is a YYYY-MM-DD date.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsClock reports whether s is an HH:MM or HH:MM:SS wall-clock time.
func IsClock(s string) bool {
	if _, err := time.Parse(ClockLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(ClockLayoutSecs, s)
	return err == nil
}
