// Package category berisi daftar tertutup kategori kehadiran dan dispatcher
// pagination/search per kategori.
package category

import (
	"strconv"
	"strings"
)

type Code string

const (
	Present    Code = "H"
	ArriveLate Code = "HT"
	GoEarly    Code = "PC"
	NotAbsent  Code = "TP"
	Alpha      Code = "A"
	Sick       Code = "S"
	Permission Code = "I"
	Leave      Code = "C"
	Holiday    Code = "L"

	// ActiveEmployee adalah slice milik tab rekap, bukan kategori kehadiran.
	ActiveEmployee Code = "REKAP"
)

// FormKind menentukan skema form edit yang dipakai sebuah kategori.
type FormKind string

const (
	FormAttendance FormKind = "attendance"
	FormAbsence    FormKind = "absence"
	FormLeave      FormKind = "leave"
	FormHoliday    FormKind = "holiday"
	FormNone       FormKind = ""
)

type Category struct {
	Code     Code     `json:"code"`
	Label    string   `json:"label"`
	Path     string   `json:"path"`
	Entity   string   `json:"entity"`
	ItemPath string   `json:"-"`
	Form     FormKind `json:"form"`
}

var ordered = []Category{
	{Code: Present, Label: "Hadir", Path: "/presence/present", Entity: "present", ItemPath: "/presence", Form: FormAttendance},
	{Code: ArriveLate, Label: "Hadir Terlambat", Path: "/presence/arrive-late", Entity: "arriving-late", ItemPath: "/presence", Form: FormAttendance},
	{Code: GoEarly, Label: "Pulang Cepat", Path: "/presence/go-early", Entity: "go-early", ItemPath: "/presence", Form: FormAttendance},
	{Code: NotAbsent, Label: "Tanpa Keterangan", Path: "/presence/not-absent", Entity: "not-absent-from-home", ItemPath: "/presence", Form: FormAttendance},
	{Code: Alpha, Label: "Alpha", Path: "/presence/alpha", Entity: "alpha", ItemPath: "/presence", Form: FormAbsence},
	{Code: Sick, Label: "Sakit", Path: "/presence/sick", Entity: "sick", ItemPath: "/presence", Form: FormAbsence},
	{Code: Permission, Label: "Izin", Path: "/presence/permission", Entity: "permission", ItemPath: "/presence", Form: FormAbsence},
	{Code: Leave, Label: "Cuti", Path: "/presence/leave-type", Entity: "leave", ItemPath: "/leave-type", Form: FormLeave},
	{Code: Holiday, Label: "Libur", Path: "/presence/holiday", Entity: "holiday", ItemPath: "/holiday", Form: FormHoliday},
}

var recap = Category{
	Code:   ActiveEmployee,
	Label:  "Rekap Kehadiran",
	Path:   "/employee/active",
	Entity: "active-employee",
	Form:   FormNone,
}

var registry = func() map[Code]Category {
	m := make(map[Code]Category, len(ordered)+1)
	for _, c := range ordered {
		m[c.Code] = c
	}
	m[recap.Code] = recap
	return m
}()

// All mengembalikan sembilan kategori kehadiran sesuai urutan tab.
func All() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered)
	return out
}

func Recap() Category { return recap }

func Lookup(code Code) (Category, bool) {
	c, ok := registry[code]
	return c, ok
}

// Parse menerima kode apa adanya dari URL ("ht" dianggap "HT").
func Parse(raw string) (Code, bool) {
	code := Code(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := registry[code]
	return code, ok
}

// ItemURL adalah path detail/edit/delete satu baris milik kategori.
func (c Category) ItemURL(id int64) string {
	return c.ItemPath + "/" + strconv.FormatInt(id, 10)
}
