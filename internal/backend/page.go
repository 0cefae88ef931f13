package backend

import (
	"net/url"
	"strconv"
)

// Page adalah bentuk results untuk semua endpoint list backend HR.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Values selalu mengirim page, limit, dan search (search boleh kosong).
// Nilai nol untuk page/limit dihilangkan agar backend memakai default-nya.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 || q.Limit > 0 || q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}
