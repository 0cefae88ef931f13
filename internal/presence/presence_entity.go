package presence

import "hr-dashboard/internal/presence/category"

type EmployeeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Record adalah satu baris presence dari backend HR (GET /presence).
type Record struct {
	ID          int64        `json:"id"`
	EmployeeID  int64        `json:"employee_id"`
	Employee    *EmployeeRef `json:"employee,omitempty"`
	Category    string       `json:"category"`
	Date        string       `json:"date"`
	ClockIn     string       `json:"clock_in"`
	ClockOut    string       `json:"clock_out"`
	Description string       `json:"description"`
	File        string       `json:"file,omitempty"`
}

func (r Record) EmployeeName() string {
	if r.Employee != nil {
		return r.Employee.Name
	}
	return ""
}

// RecapRow adalah satu karyawan aktif beserta jumlah presence per kategori.
type RecapRow struct {
	Employee EmployeeRef           `json:"employee"`
	Counts   map[category.Code]int `json:"counts"`
	Total    int                   `json:"total"`
}
