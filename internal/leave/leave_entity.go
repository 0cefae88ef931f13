package leave

// LeaveTypeMaster adalah jenis cuti beserta batas maksimalnya (GET /leave-type-master).
type LeaveTypeMaster struct {
	ID               int64  `json:"id"`
	Name             string `json:"leave_type_name"`
	MaximumLeaveType int    `json:"maximum_leave_type"`
	Description      string `json:"description"`
}
