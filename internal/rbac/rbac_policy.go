package rbac

import "hr-dashboard/internal/domain"

const (
	ResourcePresence  = "presence"
	ResourceEmployee  = "employee"
	ResourceLeave     = "leave"
	ResourceGuarantee = "guarantee"
	ResourceSalary    = "salary"
	ResourceActivity  = "activity"

	ActionRead  = "read"
	ActionWrite = "write"
)

type Policy struct {
	Role     string
	Resource string
	Action   string
}

// DefaultPolicies: HR mengelola kehadiran/cuti/garansi, FINANCE mengelola gaji,
// ADMIN mewarisi keduanya.
var DefaultPolicies = []Policy{
	{domain.RoleHR, ResourcePresence, ActionRead},
	{domain.RoleHR, ResourcePresence, ActionWrite},
	{domain.RoleHR, ResourceEmployee, ActionRead},
	{domain.RoleHR, ResourceLeave, ActionRead},
	{domain.RoleHR, ResourceLeave, ActionWrite},
	{domain.RoleHR, ResourceGuarantee, ActionRead},
	{domain.RoleHR, ResourceGuarantee, ActionWrite},

	{domain.RoleFinance, ResourceSalary, ActionRead},
	{domain.RoleFinance, ResourceSalary, ActionWrite},
	{domain.RoleFinance, ResourceEmployee, ActionRead},

	{domain.RoleAdmin, ResourceActivity, ActionRead},
}

// DefaultInheritance: pasangan (role, parent).
var DefaultInheritance = [][2]string{
	{domain.RoleAdmin, domain.RoleHR},
	{domain.RoleAdmin, domain.RoleFinance},
}
