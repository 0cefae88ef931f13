// Package response menulis envelope JSON yang sama untuk semua endpoint dashboard.
package response

import (
	"github.com/gin-gonic/gin"
)

// PageMeta mengikuti paging dari backend HR; backend tidak mengirim total baris.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func NewPageMeta(currentPage, totalPages, limit int) PageMeta {
	return PageMeta{
		Page:       currentPage,
		PageSize:   limit,
		TotalPages: totalPages,
	}
}

// ErrorBody adalah isi field "error" pada envelope gagal.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Ok    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Meta  *PageMeta  `json:"meta,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PageMeta) {
	c.JSON(status, Envelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{
		Ok:    false,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}
