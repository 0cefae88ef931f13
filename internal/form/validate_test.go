package form_test

import (
	"errors"
	"testing"

	"hr-dashboard/internal/form"

	"github.com/stretchr/testify/assert"
)

type sampleForm struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Condition  string `json:"guarantee_condition" validate:"required,oneof=Baru Bekas"`
	Amount     string `json:"main_salary" validate:"omitempty,amount"`
}

type rangeForm struct {
	Start string `json:"start_date" validate:"required"`
	End   string `json:"end_date" validate:"required"`
}

func (r rangeForm) Check() form.FieldErrors {
	if r.End < r.Start {
		return form.FieldErrors{"end_date": form.MsgInvalid}
	}
	return nil
}

func TestValidate(t *testing.T) {
	t.Run("all empty required fields flagged", func(t *testing.T) {
		err := form.Validate(sampleForm{})

		var fe form.FieldErrors
		assert.True(t, errors.As(err, &fe))
		assert.Equal(t, form.FieldErrors{
			"employee_id":         form.MsgRequired,
			"end_date":            form.MsgRequired,
			"guarantee_condition": form.MsgRequired,
		}, fe)
	})

	t.Run("non required rule reports Tidak valid", func(t *testing.T) {
		err := form.Validate(sampleForm{
			EmployeeID: "1",
			EndDate:    "31-12-2024",
			Condition:  "Rusak",
			Amount:     "-10",
		})

		var fe form.FieldErrors
		assert.True(t, errors.As(err, &fe))
		assert.Equal(t, form.MsgInvalid, fe["end_date"])
		assert.Equal(t, form.MsgInvalid, fe["guarantee_condition"])
		assert.Equal(t, form.MsgInvalid, fe["main_salary"])
		assert.NotContains(t, fe, "employee_id")
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, form.Validate(sampleForm{
			EmployeeID: "1",
			EndDate:    "2024-12-31",
			Condition:  "Bekas",
			Amount:     "4500000.50",
		}))
	})

	t.Run("checker runs after tags pass", func(t *testing.T) {
		err := form.Validate(rangeForm{Start: "2024-05-10", End: "2024-05-01"})
		assert.Equal(t, form.FieldErrors{"end_date": form.MsgInvalid}, err)

		err = form.Validate(rangeForm{Start: "2024-05-10"})
		assert.Equal(t, form.FieldErrors{"end_date": form.MsgRequired}, err)

		assert.NoError(t, form.Validate(rangeForm{Start: "2024-05-01", End: "2024-05-01"}))
	})

	t.Run("nil input", func(t *testing.T) {
		assert.NoError(t, form.Validate(nil))
	})
}

func TestFieldErrors_Error(t *testing.T) {
	fe := form.FieldErrors{"file": form.MsgRequired, "end_date": form.MsgRequired}
	assert.Equal(t, "validation failed: end_date: Harap diisi, file: Harap diisi", fe.Error())
}
