// Package request berisi binding query string yang dipakai bersama oleh handler list.
package request

import (
	"strings"

	"hr-dashboard/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListParams adalah ?page=&limit=&search= pada semua tabel dashboard.
// Nilai limit yang diperbolehkan (10/25/50) dicek di service masing-masing
// karena pesan error-nya berbeda per fitur.
type ListParams struct {
	Page   int    `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" json:"limit" binding:"omitempty,min=1"`
	Search string `form:"search" json:"search" binding:"omitempty,max=100"`
}

// BindList membaca query list dan mengisi default page=1, limit=10.
// Error binding dikembalikan sebagai *apperror.AppError (400).
func BindList(c *gin.Context) (ListParams, error) {
	var p ListParams
	if err := c.ShouldBindQuery(&p); err != nil {
		return ListParams{}, apperror.MapValidationError(err)
	}
	if p.Page == 0 {
		p.Page = defaultPage
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p, nil
}
