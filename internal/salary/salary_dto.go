package salary

import (
	"net/url"
	"strings"

	"hr-dashboard/internal/backend"

	"github.com/shopspring/decimal"
)

// MainSalaryRequest dipakai untuk create dan edit gaji pokok.
type MainSalaryRequest struct {
	EmployeeID string `form:"employee_id" json:"employee_id" validate:"required,numeric"`
	MainSalary string `form:"main_salary" json:"main_salary" validate:"required,amount"`
}

func (r MainSalaryRequest) body() backend.Body {
	amount, _ := decimal.NewFromString(strings.TrimSpace(r.MainSalary))
	return backend.FormBody{Values: url.Values{
		"employee_id": {r.EmployeeID},
		"main_salary": {amount.String()},
	}}
}

type MainSalaryResponse struct {
	ID           int64  `json:"id"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	MainSalary   string `json:"main_salary"`
}

func mapToResponse(m MainSalary) MainSalaryResponse {
	return MainSalaryResponse{
		ID:           m.ID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName(),
		MainSalary:   m.MainSalary.StringFixed(2),
	}
}

func mapToPageResponse(p backend.Page[MainSalary]) backend.Page[MainSalaryResponse] {
	out := backend.Page[MainSalaryResponse]{
		Data:        make([]MainSalaryResponse, 0, len(p.Data)),
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
	for _, m := range p.Data {
		out.Data = append(out.Data, mapToResponse(m))
	}
	return out
}
