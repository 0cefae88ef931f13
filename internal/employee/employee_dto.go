package employee

import "hr-dashboard/internal/backend"

type EmployeeResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
	JoinDate string `json:"join_date,omitempty"`
}

// OptionResponse dipakai dropdown karyawan di form (garansi, saldo cuti, gaji).
type OptionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Phone:    e.Phone,
		Position: e.Position,
		JoinDate: e.JoinDate,
	}
}

func mapToPageResponse(p backend.Page[Employee]) backend.Page[EmployeeResponse] {
	out := backend.Page[EmployeeResponse]{
		Data:        make([]EmployeeResponse, 0, len(p.Data)),
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
	for _, e := range p.Data {
		out.Data = append(out.Data, mapToResponse(e))
	}
	return out
}

func mapToOptions(emps []Employee) []OptionResponse {
	out := make([]OptionResponse, 0, len(emps))
	for _, e := range emps {
		out = append(out, OptionResponse{ID: e.ID, Name: e.Name})
	}
	return out
}
