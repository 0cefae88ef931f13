package selection

type Action string

const (
	ActionToggle    Action = "toggle"
	ActionToggleAll Action = "toggle_all"
)

// UpdateSelectionRequest meniru checkbox tabel: toggle satu baris (Item) atau
// toggle semua baris halaman aktif (Page).
type UpdateSelectionRequest struct {
	Action   Action `json:"action" validate:"required,oneof=toggle toggle_all"`
	Item     *Item  `json:"item" validate:"required_if=Action toggle,omitempty"`
	Page     []Item `json:"page" validate:"dive"`
	PageSize int    `json:"page_size" validate:"gte=0"`
}

type SelectionResponse struct {
	Screen string  `json:"screen"`
	IDs    []int64 `json:"ids"`
	All    bool    `json:"all"`
	Count  int     `json:"count"`
}

func toResponse(s Selection) SelectionResponse {
	return SelectionResponse{
		Screen: s.Screen,
		IDs:    s.IDs(),
		All:    s.All,
		Count:  len(s.Items),
	}
}
