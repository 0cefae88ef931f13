package salary

import "github.com/shopspring/decimal"

type EmployeeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MainSalary adalah satu baris /main-salary. Backend mengirim main_salary
// sebagai angka atau string desimal.
type MainSalary struct {
	ID         int64           `json:"id"`
	EmployeeID int64           `json:"employee_id"`
	Employee   *EmployeeRef    `json:"employee,omitempty"`
	MainSalary decimal.Decimal `json:"main_salary"`
}

func (m MainSalary) EmployeeName() string {
	if m.Employee == nil {
		return ""
	}
	return m.Employee.Name
}
