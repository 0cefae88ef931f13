package domain

const (
	RoleHR      = "HR"
	RoleFinance = "FINANCE"
	RoleAdmin   = "ADMIN"

	DefaultRole = RoleHR
)

type EnforceRequest struct {
	Role     string `json:"role" validate:"required"`
	Resource string `json:"resource" validate:"required"`
	Action   string `json:"action" validate:"required"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
