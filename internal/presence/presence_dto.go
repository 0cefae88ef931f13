package presence

import (
	"encoding/json"
	"mime/multipart"
	"net/url"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/presence/category"
)

type ViewStatus string

const (
	StatusReady ViewStatus = "ready"
	StatusEmpty ViewStatus = "empty"
	StatusError ViewStatus = "error"
)

// ListView membedakan data kosong dari gagal fetch.
type ListView struct {
	Status   ViewStatus                   `json:"status"`
	Category category.Code                `json:"category"`
	Filter   category.Filter              `json:"filter"`
	Page     backend.Page[json.RawMessage] `json:"page"`
	Error    string                       `json:"error,omitempty"`
}

type ViewResponse struct {
	State      *category.State     `json:"state"`
	Categories []category.Category `json:"categories"`
	Recap      category.Category   `json:"recap"`
	List       *ListView           `json:"list,omitempty"`
}

type RecapView struct {
	Status      ViewStatus      `json:"status"`
	Filter      category.Filter `json:"filter"`
	Rows        []RecapRow      `json:"rows"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
}

type TabRequest struct {
	Tab category.Tab `json:"tab" validate:"required"`
}

type CategoryRequest struct {
	Code string `json:"code" validate:"required"`
}

type PageRequest struct {
	Page int `json:"page"`
}

type LimitRequest struct {
	Limit int `json:"limit" validate:"required"`
}

type SearchRequest struct {
	Search string `json:"search"`
}

// EditRequest menampung semua field form edit kategori; skema yang divalidasi
// dipilih dari FormKind kategori.
type EditRequest struct {
	EmployeeID  string                `form:"employee_id" json:"employee_id"`
	Date        string                `form:"date" json:"date"`
	ClockIn     string                `form:"clock_in" json:"clock_in"`
	ClockOut    string                `form:"clock_out" json:"clock_out"`
	Description string                `form:"description" json:"description"`
	LeaveTypeID string                `form:"leave_type_id" json:"leave_type_id"`
	StartDate   string                `form:"start_date" json:"start_date"`
	EndDate     string                `form:"end_date" json:"end_date"`
	Title       string                `form:"title" json:"title"`
	File        string                `form:"file" json:"file"`
	Upload      *multipart.FileHeader `form:"-" json:"-"`
}

type AttendanceForm struct {
	EmployeeID  string `json:"employee_id" validate:"required,numeric"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	ClockIn     string `json:"clock_in" validate:"required,datetime=15:04"`
	ClockOut    string `json:"clock_out" validate:"omitempty,datetime=15:04"`
	Description string `json:"description"`
}

type AbsenceForm struct {
	EmployeeID  string `json:"employee_id" validate:"required,numeric"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"required"`
}

type LeaveForm struct {
	EmployeeID  string `json:"employee_id" validate:"required,numeric"`
	LeaveTypeID string `json:"leave_type_id" validate:"required,numeric"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"required"`
}

type HolidayForm struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description"`
}

// submission adalah input tervalidasi beserta body yang dikirim ke backend.
type submission struct {
	input any
	body  backend.Body
}

func (r EditRequest) submission(kind category.FormKind) (submission, bool) {
	switch kind {
	case category.FormAttendance:
		in := AttendanceForm{r.EmployeeID, r.Date, r.ClockIn, r.ClockOut, r.Description}
		return submission{input: in, body: r.multipart(
			backend.Field{Name: "employee_id", Value: in.EmployeeID},
			backend.Field{Name: "date", Value: in.Date},
			backend.Field{Name: "clock_in", Value: in.ClockIn},
			backend.Field{Name: "clock_out", Value: in.ClockOut},
			backend.Field{Name: "description", Value: in.Description},
		)}, true
	case category.FormAbsence:
		in := AbsenceForm{r.EmployeeID, r.Date, r.Description}
		return submission{input: in, body: r.multipart(
			backend.Field{Name: "employee_id", Value: in.EmployeeID},
			backend.Field{Name: "date", Value: in.Date},
			backend.Field{Name: "description", Value: in.Description},
		)}, true
	case category.FormLeave:
		in := LeaveForm{r.EmployeeID, r.LeaveTypeID, r.StartDate, r.EndDate, r.Description}
		return submission{input: leaveRange{in}, body: backend.FormBody{Values: url.Values{
			"employee_id":   {in.EmployeeID},
			"leave_type_id": {in.LeaveTypeID},
			"start_date":    {in.StartDate},
			"end_date":      {in.EndDate},
			"description":   {in.Description},
		}}}, true
	case category.FormHoliday:
		in := HolidayForm{r.Title, r.Date, r.Description}
		return submission{input: in, body: backend.JSONBody{Value: in}}, true
	default:
		return submission{}, false
	}
}

// multipart menyertakan file baru bila ada; bila tidak, nama file lama ikut dikirim.
func (r EditRequest) multipart(fields ...backend.Field) backend.Body {
	body := backend.MultipartBody{Fields: fields}
	if r.Upload != nil {
		body.Files = append(body.Files, backend.FileFromHeader("file", r.Upload))
	} else if r.File != "" {
		body.Fields = append(body.Fields, backend.Field{Name: "file", Value: r.File})
	}
	return body
}

// leaveRange menambahkan aturan end_date >= start_date di atas LeaveForm.
type leaveRange struct {
	LeaveForm
}

func (l leaveRange) Check() form.FieldErrors {
	if l.EndDate < l.StartDate {
		return form.FieldErrors{"end_date": form.MsgInvalid}
	}
	return nil
}

// CreateRecordRequest adalah form "Buat Kehadiran".
type CreateRecordRequest struct {
	EmployeeID  string                `form:"employee_id" json:"employee_id" validate:"required,numeric"`
	Category    string                `form:"category" json:"category" validate:"required,oneof=H HT PC TP A S I"`
	Date        string                `form:"date" json:"date" validate:"required,datetime=2006-01-02"`
	ClockIn     string                `form:"clock_in" json:"clock_in" validate:"omitempty,datetime=15:04"`
	ClockOut    string                `form:"clock_out" json:"clock_out" validate:"omitempty,datetime=15:04"`
	Description string                `form:"description" json:"description"`
	Upload      *multipart.FileHeader `form:"-" json:"-" validate:"-"`
}

func (r CreateRecordRequest) body() backend.Body {
	body := backend.MultipartBody{Fields: []backend.Field{
		{Name: "employee_id", Value: r.EmployeeID},
		{Name: "category", Value: r.Category},
		{Name: "date", Value: r.Date},
		{Name: "clock_in", Value: r.ClockIn},
		{Name: "clock_out", Value: r.ClockOut},
		{Name: "description", Value: r.Description},
	}}
	if r.Upload != nil {
		body.Files = append(body.Files, backend.FileFromHeader("file", r.Upload))
	}
	return body
}

type MutationResponse struct {
	Notification form.Notification `json:"notification"`
}
