package guarantee

// Kind membedakan garansi masuk dan garansi keluar. Nilainya sekaligus path
// resource di backend HR dan entity cache list-nya.
type Kind string

const (
	Incoming Kind = "incoming-guarantee"
	Outgoing Kind = "outgoing-guarantee"
)

func (k Kind) Path() string { return "/" + string(k) }

// Guarantee adalah master jenis dokumen jaminan (GET /guarantee).
type Guarantee struct {
	ID   int64  `json:"id"`
	Name string `json:"guarantee_name"`
}

type Record struct {
	ID                   int64  `json:"id"`
	EmployeeID           int64  `json:"employee_id"`
	EmployeeName         string `json:"employee_name,omitempty"`
	GuaranteeID          int64  `json:"guarantee_id"`
	GuaranteeName        string `json:"guarantee_name,omitempty"`
	StartDate            string `json:"start_date,omitempty"`
	EndDate              string `json:"end_date,omitempty"`
	RecipientName        string `json:"recepient_name,omitempty"`
	GuaranteeCondition   string `json:"guarantee_condition"`
	GuaranteeDescription string `json:"guarantee_description"`
	File                 string `json:"file"`
}
