package guarantee

import (
	"mime/multipart"

	"hr-dashboard/internal/backend"
)

type OptionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"guarantee_name"`
}

// IncomingRequest adalah form garansi masuk. Saat create, file wajib berupa upload.
type IncomingRequest struct {
	EmployeeID           string                `form:"employee_id" json:"employee_id" validate:"required,numeric"`
	GuaranteeID          string                `form:"guarantee_id" json:"guarantee_id" validate:"required,numeric"`
	StartDate            string                `form:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	GuaranteeCondition   string                `form:"guarantee_condition" json:"guarantee_condition" validate:"required,oneof=Baru Bekas"`
	GuaranteeDescription string                `form:"guarantee_description" json:"guarantee_description" validate:"required"`
	File                 string                `form:"file" json:"file" validate:"required"`
	Upload               *multipart.FileHeader `form:"-" json:"-"`
}

// OutgoingRequest adalah form edit garansi keluar. Nama file lama memenuhi
// field file bila tidak ada upload baru.
type OutgoingRequest struct {
	EmployeeID           string                `form:"employee_id" json:"employee_id" validate:"required,numeric"`
	File                 string                `form:"file" json:"file" validate:"required"`
	GuaranteeID          string                `form:"guarantee_id" json:"guarantee_id" validate:"required,numeric"`
	EndDate              string                `form:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
	RecipientName        string                `form:"recepient_name" json:"recepient_name" validate:"required"`
	GuaranteeCondition   string                `form:"guarantee_condition" json:"guarantee_condition" validate:"required,oneof=Baru Bekas"`
	GuaranteeDescription string                `form:"guarantee_description" json:"guarantee_description" validate:"required"`
	Upload               *multipart.FileHeader `form:"-" json:"-"`
}

// withUpload mengisi nama file dari upload agar aturan required terpenuhi.
func withUpload(file string, upload *multipart.FileHeader) string {
	if upload != nil {
		return upload.Filename
	}
	return file
}

func attach(body backend.MultipartBody, file string, upload *multipart.FileHeader) backend.MultipartBody {
	if upload != nil {
		body.Files = append(body.Files, backend.FileFromHeader("file", upload))
		return body
	}
	body.Fields = append(body.Fields, backend.Field{Name: "file", Value: file})
	return body
}

func (r IncomingRequest) body() backend.Body {
	return attach(backend.MultipartBody{Fields: []backend.Field{
		{Name: "employee_id", Value: r.EmployeeID},
		{Name: "guarantee_id", Value: r.GuaranteeID},
		{Name: "start_date", Value: r.StartDate},
		{Name: "guarantee_condition", Value: r.GuaranteeCondition},
		{Name: "guarantee_description", Value: r.GuaranteeDescription},
	}}, r.File, r.Upload)
}

// body menjaga urutan field sama dengan form: employee_id, file, guarantee_id, ...
func (r OutgoingRequest) body() backend.Body {
	b := attach(backend.MultipartBody{Fields: []backend.Field{
		{Name: "employee_id", Value: r.EmployeeID},
	}}, r.File, r.Upload)
	b.Fields = append(b.Fields,
		backend.Field{Name: "guarantee_id", Value: r.GuaranteeID},
		backend.Field{Name: "end_date", Value: r.EndDate},
		backend.Field{Name: "recepient_name", Value: r.RecipientName},
		backend.Field{Name: "guarantee_condition", Value: r.GuaranteeCondition},
		backend.Field{Name: "guarantee_description", Value: r.GuaranteeDescription},
	)
	return b
}

func mapToOptions(gs []Guarantee) []OptionResponse {
	out := make([]OptionResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, OptionResponse{ID: g.ID, Name: g.Name})
	}
	return out
}
