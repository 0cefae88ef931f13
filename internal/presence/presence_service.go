package presence

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/export"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/mutation"
	"hr-dashboard/internal/presence/category"
	presenceerrors "hr-dashboard/internal/presence/errors"
	"hr-dashboard/internal/querycache"
	"hr-dashboard/internal/selection"
	"hr-dashboard/internal/shared/contextutil"
	"hr-dashboard/internal/viewstate"

	"go.uber.org/zap"
)

const (
	// Screen adalah nama layar untuk selection store.
	Screen = "presence"
	// Resource dipakai untuk RBAC dan activity trail.
	Resource = "presence"
	// RecordEntity adalah cache seluruh baris /presence (rekap) dan ikut dibuang
	// oleh setiap perubahan presence.
	RecordEntity = "presence"

	recordsPath = "/presence"
	recapLimit  = 999999
	exportSheet = "Kehadiran"
	msgCreated  = "Berhasil menambah data kehadiran"
	msgUpdated  = "Berhasil mengedit data kehadiran"
	msgDeleted  = "Berhasil menghapus data kehadiran"
)

var exportHeaders = []string{"No", "Nama", "Tanggal", "Jam Masuk", "Jam Pulang", "Keterangan"}

type Service interface {
	View(ctx context.Context, userID string) (ViewResponse, error)
	SelectTab(ctx context.Context, userID string, req TabRequest) (ViewResponse, error)
	SelectCategory(ctx context.Context, userID string, req CategoryRequest) (ViewResponse, error)
	SetPage(ctx context.Context, userID string, req PageRequest) (ViewResponse, error)
	SetLimit(ctx context.Context, userID string, req LimitRequest) (ViewResponse, error)
	SetSearch(ctx context.Context, userID string, req SearchRequest) (ViewResponse, error)
	ActiveList(ctx context.Context, userID string) (ListView, error)

	List(ctx context.Context, userID string, code category.Code, filter category.Filter) (backend.Page[json.RawMessage], error)
	Detail(ctx context.Context, code category.Code, id int64) (json.RawMessage, error)
	Edit(ctx context.Context, code category.Code, id int64, req EditRequest) (form.Notification, error)
	Delete(ctx context.Context, code category.Code, id int64) (form.Notification, error)

	Recap(ctx context.Context, userID string) (RecapView, error)
	CreateRecord(ctx context.Context, req CreateRecordRequest) (form.Notification, error)
	EditRecord(ctx context.Context, id int64, req CreateRecordRequest) (form.Notification, error)
	Export(ctx context.Context, userID string) ([]byte, error)
}

type service struct {
	backend   backend.Doer
	cache     *querycache.Cache
	views     viewstate.Store
	selection selection.Service
	runner    *mutation.Runner
	logger    *zap.Logger
}

func NewService(
	doer backend.Doer,
	cache *querycache.Cache,
	views viewstate.Store,
	sel selection.Service,
	runner *mutation.Runner,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("presence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("presence.service")
	}
	return &service{
		backend:   doer,
		cache:     cache,
		views:     views,
		selection: sel,
		runner:    runner,
		logger:    l,
	}
}

func (s *service) dispatcher(ctx context.Context, userID string) (*category.Dispatcher, error) {
	state, err := s.views.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return category.NewDispatcher(state), nil
}

// respond menyimpan state lalu mengembalikan state baru beserta list slice aktif.
func (s *service) respond(ctx context.Context, userID string, d *category.Dispatcher, save bool) (ViewResponse, error) {
	if save {
		if err := s.views.Save(ctx, userID, d.State()); err != nil {
			return ViewResponse{}, err
		}
	}
	list := s.listView(ctx, userID, d.ActiveSlice())
	return ViewResponse{
		State:      d.State(),
		Categories: category.All(),
		Recap:      category.Recap(),
		List:       &list,
	}, nil
}

func (s *service) View(ctx context.Context, userID string) (ViewResponse, error) {
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return ViewResponse{}, err
	}
	return s.respond(ctx, userID, d, false)
}

func (s *service) SelectTab(ctx context.Context, userID string, req TabRequest) (ViewResponse, error) {
	if err := form.Validate(req); err != nil {
		return ViewResponse{}, err
	}
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return ViewResponse{}, err
	}
	if err := d.SelectTab(req.Tab); err != nil {
		return ViewResponse{}, err
	}
	return s.respond(ctx, userID, d, true)
}

func (s *service) SelectCategory(ctx context.Context, userID string, req CategoryRequest) (ViewResponse, error) {
	if err := form.Validate(req); err != nil {
		return ViewResponse{}, err
	}
	code, ok := category.Parse(req.Code)
	if !ok {
		return ViewResponse{}, presenceerrors.ErrUnknownCategory
	}
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return ViewResponse{}, err
	}
	if !d.SelectCategory(code) {
		return ViewResponse{}, presenceerrors.ErrUnknownCategory
	}
	return s.respond(ctx, userID, d, true)
}

func (s *service) SetPage(ctx context.Context, userID string, req PageRequest) (ViewResponse, error) {
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return ViewResponse{}, err
	}
	d.SetPage(d.State().Active(), req.Page)
	return s.respond(ctx, userID, d, true)
}

func (s *service) SetLimit(ctx context.Context, userID string, req LimitRequest) (ViewResponse, error) {
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return ViewResponse{}, err
	}
	if _, err := d.SetLimit(d.State().Active(), req.Limit); err != nil {
		return ViewResponse{}, err
	}
	return s.respond(ctx, userID, d, true)
}

func (s *service) SetSearch(ctx context.Context, userID string, req SearchRequest) (ViewResponse, error) {
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return ViewResponse{}, err
	}
	d.SetSearch(d.State().Active(), req.Search)
	return s.respond(ctx, userID, d, true)
}

func (s *service) ActiveList(ctx context.Context, userID string) (ListView, error) {
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return ListView{}, err
	}
	return s.listView(ctx, userID, d.ActiveSlice()), nil
}

// listView tidak mengembalikan error: kegagalan fetch menjadi status "error"
// agar layar tetap bisa membedakan kosong dan gagal.
func (s *service) listView(ctx context.Context, userID string, sl *category.Slice) ListView {
	view := ListView{
		Category: sl.Code(),
		Filter:   sl.Filter(),
		Page:     backend.Page[json.RawMessage]{Data: []json.RawMessage{}},
	}
	page, err := s.List(ctx, userID, sl.Code(), sl.Filter())
	switch {
	case err != nil:
		contextutil.GetLogger(ctx, s.logger).Warn("presence list failed",
			zap.String("category", string(sl.Code())),
			zap.Error(err),
		)
		view.Status = StatusError
		view.Error = err.Error()
	case len(page.Data) == 0:
		view.Status = StatusEmpty
		view.Page = page
	default:
		view.Status = StatusReady
		view.Page = page
	}
	return view
}

func (s *service) List(ctx context.Context, userID string, code category.Code, filter category.Filter) (backend.Page[json.RawMessage], error) {
	cat, ok := category.Lookup(code)
	if !ok {
		return backend.Page[json.RawMessage]{}, presenceerrors.ErrUnknownCategory
	}
	if filter.Page < 1 {
		filter.Page = category.DefaultPage
	}
	if filter.Limit == 0 {
		filter.Limit = category.DefaultLimit
	}
	if !category.ValidLimit(filter.Limit) {
		return backend.Page[json.RawMessage]{}, presenceerrors.ErrInvalidLimit
	}

	key := querycache.Key{
		Scope:  userID,
		Entity: cat.Entity,
		Page:   filter.Page,
		Limit:  filter.Limit,
		Search: filter.Search,
	}
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (backend.Page[json.RawMessage], error) {
		return backend.List[json.RawMessage](ctx, s.backend, cat.Path, backend.ListQuery{
			Page:   filter.Page,
			Limit:  filter.Limit,
			Search: filter.Search,
		})
	})
}

func editable(code category.Code) (category.Category, error) {
	cat, ok := category.Lookup(code)
	if !ok {
		return category.Category{}, presenceerrors.ErrUnknownCategory
	}
	if cat.Form == category.FormNone {
		return category.Category{}, presenceerrors.ErrNotEditable
	}
	return cat, nil
}

func (s *service) Detail(ctx context.Context, code category.Code, id int64) (json.RawMessage, error) {
	if id <= 0 {
		return nil, presenceerrors.ErrInvalidID
	}
	cat, err := editable(code)
	if err != nil {
		return nil, err
	}
	return backend.Get[json.RawMessage](ctx, s.backend, cat.ItemURL(id))
}

func (s *service) Edit(ctx context.Context, code category.Code, id int64, req EditRequest) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, presenceerrors.ErrInvalidID
	}
	cat, err := editable(code)
	if err != nil {
		return form.Notification{}, err
	}
	sub, ok := req.submission(cat.Form)
	if !ok {
		return form.Notification{}, presenceerrors.ErrNotEditable
	}

	op := mutation.Op{
		Resource:   Resource,
		Entities:   []string{cat.Entity, RecordEntity},
		Action:     mutation.ActionUpdate,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msgUpdated,
	}
	return s.runner.Submit(ctx, op, sub.input, func(ctx context.Context) error {
		return s.backend.Do(ctx, http.MethodPatch, cat.ItemURL(id), nil, sub.body, nil)
	})
}

func (s *service) Delete(ctx context.Context, code category.Code, id int64) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, presenceerrors.ErrInvalidID
	}
	cat, err := editable(code)
	if err != nil {
		return form.Notification{}, err
	}

	op := mutation.Op{
		Resource:   Resource,
		Entities:   []string{cat.Entity, RecordEntity},
		Action:     mutation.ActionDelete,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msgDeleted,
	}
	return s.runner.Submit(ctx, op, nil, func(ctx context.Context) error {
		return s.backend.Do(ctx, http.MethodDelete, cat.ItemURL(id), nil, nil, nil)
	})
}

// Recap memakai slice REKAP untuk halaman karyawan aktif dan menghitung jumlah
// presence per kategori dari seluruh baris /presence.
func (s *service) Recap(ctx context.Context, userID string) (RecapView, error) {
	d, err := s.dispatcher(ctx, userID)
	if err != nil {
		return RecapView{}, err
	}
	sl, _ := d.Resolve(category.ActiveEmployee)
	filter := sl.Filter()

	employees, err := s.List(ctx, userID, category.ActiveEmployee, filter)
	if err != nil {
		return RecapView{}, err
	}

	key := querycache.Key{Scope: userID, Entity: RecordEntity, Page: 1, Limit: recapLimit}
	records, err := querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) (backend.Page[Record], error) {
		return backend.List[Record](ctx, s.backend, recordsPath, backend.ListQuery{Limit: recapLimit})
	})
	if err != nil {
		return RecapView{}, err
	}

	counts := make(map[int64]map[category.Code]int)
	for _, r := range records.Data {
		if counts[r.EmployeeID] == nil {
			counts[r.EmployeeID] = make(map[category.Code]int)
		}
		counts[r.EmployeeID][category.Code(r.Category)]++
	}

	view := RecapView{
		Status:      StatusEmpty,
		Filter:      filter,
		Rows:        make([]RecapRow, 0, len(employees.Data)),
		CurrentPage: employees.CurrentPage,
		TotalPages:  employees.TotalPages,
	}
	for _, raw := range employees.Data {
		var emp EmployeeRef
		if err := json.Unmarshal(raw, &emp); err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("skip malformed employee row", zap.Error(err))
			continue
		}
		row := RecapRow{Employee: emp, Counts: make(map[category.Code]int)}
		for _, c := range category.All() {
			n := counts[emp.ID][c.Code]
			row.Counts[c.Code] = n
			row.Total += n
		}
		view.Rows = append(view.Rows, row)
	}
	if len(view.Rows) > 0 {
		view.Status = StatusReady
	}
	return view, nil
}

func recordEntities(code string) []string {
	entities := []string{RecordEntity}
	if cat, ok := category.Lookup(category.Code(code)); ok {
		entities = append(entities, cat.Entity)
	}
	return entities
}

func (s *service) CreateRecord(ctx context.Context, req CreateRecordRequest) (form.Notification, error) {
	op := mutation.Op{
		Resource: Resource,
		Entities: recordEntities(req.Category),
		Action:   mutation.ActionCreate,
		Success:  msgCreated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.backend.Do(ctx, http.MethodPost, recordsPath, nil, req.body(), nil)
	})
}

// EditRecord membuang cache setiap kategori yang disimpan di /presence (H, HT, PC,
// TP, A, S, I) karena kategori lama baris ini tidak diketahui. Cuti dan libur
// punya resource sendiri sehingga cache-nya tetap.
func (s *service) EditRecord(ctx context.Context, id int64, req CreateRecordRequest) (form.Notification, error) {
	if id <= 0 {
		return form.Notification{}, presenceerrors.ErrInvalidID
	}
	entities := []string{RecordEntity}
	for _, c := range category.All() {
		if c.ItemPath == recordsPath {
			entities = append(entities, c.Entity)
		}
	}
	op := mutation.Op{
		Resource:   Resource,
		Entities:   entities,
		Action:     mutation.ActionUpdate,
		ResourceID: strconv.FormatInt(id, 10),
		Success:    msgUpdated,
	}
	return s.runner.Submit(ctx, op, req, func(ctx context.Context) error {
		return s.backend.Do(ctx, http.MethodPatch, recordsPath+"/"+strconv.FormatInt(id, 10), nil, req.body(), nil)
	})
}

func (s *service) Export(ctx context.Context, userID string) ([]byte, error) {
	sel, err := s.selection.Get(ctx, Screen, userID)
	if err != nil {
		return nil, err
	}
	if sel.Empty() {
		return nil, presenceerrors.ErrNothingSelected
	}

	rows := make([][]any, 0, len(sel.Items))
	for i, item := range sel.Items {
		var r Record
		if len(item.Row) > 0 {
			if err := json.Unmarshal(item.Row, &r); err != nil {
				contextutil.GetLogger(ctx, s.logger).Warn("export presence failed",
					zap.Int64("id", item.ID),
					zap.Error(err),
				)
				return nil, err
			}
		}
		rows = append(rows, []any{i + 1, r.EmployeeName(), r.Date, r.ClockIn, r.ClockOut, r.Description})
	}
	return export.WriteRows(exportSheet, exportHeaders, rows)
}
