package leave

import (
	"net/url"
	"time"

	"hr-dashboard/internal/form"
)

// DateLayout adalah format tanggal dari date picker form (YYYY-MM-DD).
const DateLayout = "2006-01-02"

type LeaveTypeMasterResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"leave_type_name"`
	MaximumLeaveType int    `json:"maximum_leave_type"`
	Description      string `json:"description,omitempty"`
}

// CreateBalanceRequest adalah form "Tambah Saldo Cuti". Semua field wajib.
type CreateBalanceRequest struct {
	EmployeeID           string `form:"employee_id" json:"employee_id" validate:"required,numeric"`
	LeaveTypeID          string `form:"leave_type_id" json:"leave_type_id" validate:"required,numeric"`
	InitialEstimate      string `form:"initial_estimate" json:"initial_estimate" validate:"required,datetime=2006-01-02"`
	FinalEstimate        string `form:"final_estimate" json:"final_estimate" validate:"required,datetime=2006-01-02"`
	LeaveTypeDescription string `form:"leave_type_description" json:"leave_type_description" validate:"required"`
}

// Check: estimasi akhir tidak boleh sebelum estimasi awal. Tanggal yang sama boleh.
func (r CreateBalanceRequest) Check() form.FieldErrors {
	initial, err := time.Parse(DateLayout, r.InitialEstimate)
	if err != nil {
		return form.FieldErrors{"initial_estimate": form.MsgInvalid}
	}
	final, err := time.Parse(DateLayout, r.FinalEstimate)
	if err != nil {
		return form.FieldErrors{"final_estimate": form.MsgInvalid}
	}
	if final.Before(initial) {
		return form.FieldErrors{"final_estimate": form.MsgInvalid}
	}
	return nil
}

func (r CreateBalanceRequest) values() url.Values {
	return url.Values{
		"employee_id":            {r.EmployeeID},
		"leave_type_id":          {r.LeaveTypeID},
		"initial_estimate":       {r.InitialEstimate},
		"final_estimate":         {r.FinalEstimate},
		"leave_type_description": {r.LeaveTypeDescription},
	}
}

func mapToResponse(m LeaveTypeMaster) LeaveTypeMasterResponse {
	return LeaveTypeMasterResponse{
		ID:               m.ID,
		Name:             m.Name,
		MaximumLeaveType: m.MaximumLeaveType,
		Description:      m.Description,
	}
}
