package auth

import "hr-dashboard/internal/domain"

// MeResponse menggambarkan sesi dashboard: siapa user-nya dan layar apa saja
// yang boleh dibuka.
type MeResponse struct {
	UserID      string                      `json:"user_id"`
	Role        string                      `json:"role"`
	Permissions []domain.PermissionResponse `json:"permissions"`
}
