package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2024-02-29"))
	assert.False(t, IsDate("2023-02-29"))
	assert.False(t, IsDate("2024-6-1"))
	assert.False(t, IsDate(""))
}

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock("09:00"))
	assert.True(t, IsClock("23:59:59"))
	assert.False(t, IsClock("24:00"))
	assert.False(t, IsClock("9am"))
}

func TestListParams_Normalize(t *testing.T) {
	p := ListParams{SortOrder: "desc"}
	p.Normalize()
	assert.Equal(t, ListParams{Page: DefaultPage, PageSize: DefaultPageSize, SortOrder: "DESC"}, p)

	p = ListParams{Page: 3, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestRegisterValidators(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	type slot struct {
		Date  string `binding:"calendar_date"`
		Start string `binding:"clock_time"`
	}
	assert.NoError(t, binding.Validator.ValidateStruct(slot{Date: "2024-06-01", Start: "09:00"}))
	assert.Error(t, binding.Validator.ValidateStruct(slot{Date: "2024-13-01", Start: "09:00"}))
	assert.Error(t, binding.Validator.ValidateStruct(slot{Date: "2024-06-01", Start: "9"}))
}

func TestMustRegister_PanicsOnBadTag(t *testing.T) {
	assert.Panics(t, func() {
		mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
	})
}
