package category

import (
	presenceerrors "hr-dashboard/internal/presence/errors"
)

type Tab string

const (
	TabPresence Tab = "presence"
	TabRecap    Tab = "recap"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

var AllowedLimits = []int{10, 25, 50}

func ValidLimit(limit int) bool {
	for _, l := range AllowedLimits {
		if l == limit {
			return true
		}
	}
	return false
}

// Filter adalah (page, limit, search) milik satu kategori.
type Filter struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
}

func DefaultFilter() Filter {
	return Filter{Page: DefaultPage, Limit: DefaultLimit}
}

// State adalah seluruh state layar Kehadiran milik satu user; disimpan sebagai JSON.
type State struct {
	Tab      Tab             `json:"tab"`
	Category Code            `json:"category"`
	Filters  map[Code]Filter `json:"filters"`
}

func NewState() *State {
	s := &State{}
	s.Normalize()
	return s
}

// Normalize melengkapi state hasil decode: kategori yang hilang diisi default,
// nilai di luar aturan dikembalikan ke default.
func (s *State) Normalize() {
	if s.Tab != TabPresence && s.Tab != TabRecap {
		s.Tab = TabPresence
	}
	if c, ok := registry[s.Category]; !ok || c.Code == ActiveEmployee {
		s.Category = Present
	}
	if s.Filters == nil {
		s.Filters = make(map[Code]Filter, len(registry))
	}
	for code := range s.Filters {
		if _, ok := registry[code]; !ok {
			delete(s.Filters, code)
		}
	}
	for code := range registry {
		f, ok := s.Filters[code]
		if !ok {
			s.Filters[code] = DefaultFilter()
			continue
		}
		if f.Page < 1 {
			f.Page = DefaultPage
		}
		if !ValidLimit(f.Limit) {
			f.Limit = DefaultLimit
		}
		s.Filters[code] = f
	}
}

// Active adalah kode slice yang sedang dikendalikan kontrol pagination.
func (s *State) Active() Code {
	if s.Tab == TabRecap {
		return ActiveEmployee
	}
	return s.Category
}

// Slice adalah handle {page, limit, search, setPage, setLimit, setSearch} satu kategori.
type Slice struct {
	code  Code
	state *State
}

func (sl *Slice) Code() Code     { return sl.code }
func (sl *Slice) Filter() Filter { return sl.state.Filters[sl.code] }
func (sl *Slice) Page() int      { return sl.Filter().Page }
func (sl *Slice) Limit() int     { return sl.Filter().Limit }
func (sl *Slice) Search() string { return sl.Filter().Search }

func (sl *Slice) SetPage(page int) {
	f := sl.Filter()
	if page < 1 {
		page = 1
	}
	f.Page = page
	sl.state.Filters[sl.code] = f
}

// SetLimit menolak limit di luar {10, 25, 50} tanpa mengubah apa pun, dan
// mengembalikan page ke 1 bila limit berubah.
func (sl *Slice) SetLimit(limit int) error {
	if !ValidLimit(limit) {
		return presenceerrors.ErrInvalidLimit
	}
	f := sl.Filter()
	if f.Limit != limit {
		f.Page = 1
	}
	f.Limit = limit
	sl.state.Filters[sl.code] = f
	return nil
}

func (sl *Slice) SetSearch(search string) {
	f := sl.Filter()
	if f.Search != search {
		f.Page = 1
	}
	f.Search = search
	sl.state.Filters[sl.code] = f
}

// Dispatcher mengarahkan aksi pagination/search ke slice milik kode yang dipilih
// lewat satu lookup tabel.
type Dispatcher struct {
	state  *State
	slices map[Code]*Slice
}

func NewDispatcher(state *State) *Dispatcher {
	if state == nil {
		state = NewState()
	}
	state.Normalize()

	slices := make(map[Code]*Slice, len(registry))
	for code := range registry {
		slices[code] = &Slice{code: code, state: state}
	}
	return &Dispatcher{state: state, slices: slices}
}

func (d *Dispatcher) State() *State { return d.state }

// Resolve mengembalikan false untuk kode yang tidak dikenal.
func (d *Dispatcher) Resolve(code Code) (*Slice, bool) {
	sl, ok := d.slices[code]
	return sl, ok
}

func (d *Dispatcher) ActiveSlice() *Slice {
	return d.slices[d.state.Active()]
}

func (d *Dispatcher) SetPage(code Code, page int) bool {
	sl, ok := d.Resolve(code)
	if !ok {
		return false
	}
	sl.SetPage(page)
	return true
}

func (d *Dispatcher) SetLimit(code Code, limit int) (bool, error) {
	sl, ok := d.Resolve(code)
	if !ok {
		return false, nil
	}
	if err := sl.SetLimit(limit); err != nil {
		return true, err
	}
	return true, nil
}

func (d *Dispatcher) SetSearch(code Code, search string) bool {
	sl, ok := d.Resolve(code)
	if !ok {
		return false
	}
	sl.SetSearch(search)
	return true
}

func (d *Dispatcher) SelectTab(tab Tab) error {
	if tab != TabPresence && tab != TabRecap {
		return presenceerrors.ErrUnknownTab
	}
	d.state.Tab = tab
	return nil
}

// SelectCategory juga memindahkan tab ke presence. Kode rekap bukan kategori.
func (d *Dispatcher) SelectCategory(code Code) bool {
	if _, ok := d.slices[code]; !ok || code == ActiveEmployee {
		return false
	}
	d.state.Tab = TabPresence
	d.state.Category = code
	return true
}
