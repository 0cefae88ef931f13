package employee

// Employee adalah karyawan aktif seperti dikirim backend HR (GET /employee/active).
type Employee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	JoinDate string `json:"join_date"`
}
