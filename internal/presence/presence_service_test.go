package presence_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/mutation"
	"hr-dashboard/internal/presence"
	"hr-dashboard/internal/presence/category"
	presenceerrors "hr-dashboard/internal/presence/errors"
	"hr-dashboard/internal/querycache"
	"hr-dashboard/internal/selection"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type backendCall struct {
	method string
	path   string
	query  url.Values
	body   backend.Body
}

type fakeBackend struct {
	mu        sync.Mutex
	calls     []backendCall
	responses map[string]any
	errs      map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: map[string]any{}, errs: map[string]error{}}
}

func (f *fakeBackend) Do(_ context.Context, method, path string, query url.Values, body backend.Body, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, backendCall{method: method, path: path, query: query, body: body})
	err := f.errs[method+" "+path]
	resp, ok := f.responses[path]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if !ok {
		resp = map[string]any{"data": []any{}, "currentPage": 1, "totalPages": 0}
	}
	raw, _ := json.Marshal(resp)
	return json.Unmarshal(raw, out)
}

func (f *fakeBackend) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.method == method && c.path == path {
			n++
		}
	}
	return n
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) last(method, path string) (backendCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].method == method && f.calls[i].path == path {
			return f.calls[i], true
		}
	}
	return backendCall{}, false
}

type memoryViews struct {
	mu     sync.Mutex
	states map[string][]byte
}

func (m *memoryViews) Load(_ context.Context, userID string) (*category.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.states[userID]
	if !ok {
		return category.NewState(), nil
	}
	var s category.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	s.Normalize()
	return &s, nil
}

func (m *memoryViews) Save(_ context.Context, userID string, state *category.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.states[userID] = raw
	return nil
}

func (m *memoryViews) Reset(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
	return nil
}

type memorySelections struct {
	mu   sync.Mutex
	sels map[string]selection.Selection
}

func (m *memorySelections) Load(_ context.Context, screen, userID string) (selection.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sels[screen+":"+userID]; ok {
		return s, nil
	}
	return selection.Selection{Screen: screen, Items: []selection.Item{}}, nil
}

func (m *memorySelections) Save(_ context.Context, userID string, sel selection.Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sels[sel.Screen+":"+userID] = sel
	return nil
}

func (m *memorySelections) Clear(_ context.Context, screen, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sels, screen+":"+userID)
	return nil
}

type serviceDeps struct {
	backend    *fakeBackend
	cache      *querycache.Cache
	views      *memoryViews
	selections *memorySelections
	service    presence.Service
}

func setupService(t *testing.T) *serviceDeps {
	t.Helper()
	logger := zap.NewNop()
	be := newFakeBackend()
	cache := querycache.New(querycache.Options{Logger: logger})
	views := &memoryViews{states: map[string][]byte{}}
	sels := &memorySelections{sels: map[string]selection.Selection{}}
	runner := mutation.NewRunner(cache, nil, "replica-test", logger)

	svc := presence.NewService(be, cache, views, selection.NewService(sels, logger), runner, logger)
	return &serviceDeps{backend: be, cache: cache, views: views, selections: sels, service: svc}
}

func page(rows ...any) map[string]any {
	return map[string]any{"data": rows, "currentPage": 1, "totalPages": 1}
}

func TestService_ArriveLateScenario(t *testing.T) {
	deps := setupService(t)
	ctx := context.Background()

	_, err := deps.service.SelectCategory(ctx, "u1", presence.CategoryRequest{Code: "ht"})
	assert.NoError(t, err)
	_, err = deps.service.SetLimit(ctx, "u1", presence.LimitRequest{Limit: 25})
	assert.NoError(t, err)
	_, err = deps.service.SetSearch(ctx, "u1", presence.SearchRequest{Search: "Budi"})
	assert.NoError(t, err)
	resp, err := deps.service.SetPage(ctx, "u1", presence.PageRequest{Page: 2})
	assert.NoError(t, err)

	call, ok := deps.backend.last(http.MethodGet, "/presence/arrive-late")
	assert.True(t, ok)
	assert.Equal(t, "limit=25&page=2&search=Budi", call.query.Encode())

	assert.Equal(t, category.ArriveLate, resp.State.Category)
	assert.Equal(t, category.Filter{Page: 2, Limit: 25, Search: "Budi"}, resp.State.Filters[category.ArriveLate])
	assert.Equal(t, category.DefaultFilter(), resp.State.Filters[category.Present])
	assert.Equal(t, 0, deps.backend.count(http.MethodGet, "/presence/present"))

	view, err := deps.service.View(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, resp.State, view.State)
}

func TestService_SetLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("every category resets page", func(t *testing.T) {
		for _, c := range append(category.All(), category.Recap()) {
			deps := setupService(t)
			if c.Code == category.ActiveEmployee {
				_, err := deps.service.SelectTab(ctx, "u1", presence.TabRequest{Tab: category.TabRecap})
				assert.NoError(t, err)
			} else {
				_, err := deps.service.SelectCategory(ctx, "u1", presence.CategoryRequest{Code: string(c.Code)})
				assert.NoError(t, err)
			}
			_, err := deps.service.SetPage(ctx, "u1", presence.PageRequest{Page: 4})
			assert.NoError(t, err)

			resp, err := deps.service.SetLimit(ctx, "u1", presence.LimitRequest{Limit: 50})
			assert.NoError(t, err, c.Code)
			assert.Equal(t, 1, resp.State.Filters[c.Code].Page, c.Code)
			assert.Equal(t, 50, resp.State.Filters[c.Code].Limit, c.Code)
		}
	})

	t.Run("invalid limit is rejected and state kept", func(t *testing.T) {
		deps := setupService(t)
		_, err := deps.service.SetPage(ctx, "u1", presence.PageRequest{Page: 3})
		assert.NoError(t, err)

		_, err = deps.service.SetLimit(ctx, "u1", presence.LimitRequest{Limit: 30})
		assert.ErrorIs(t, err, presenceerrors.ErrInvalidLimit)

		view, err := deps.service.View(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, category.Filter{Page: 3, Limit: 10}, view.State.Filters[category.Present])
	})
}

func TestService_SelectCategory_Unknown(t *testing.T) {
	deps := setupService(t)
	ctx := context.Background()

	_, err := deps.service.SelectCategory(ctx, "u1", presence.CategoryRequest{Code: "XX"})
	assert.ErrorIs(t, err, presenceerrors.ErrUnknownCategory)

	_, err = deps.service.SelectCategory(ctx, "u1", presence.CategoryRequest{Code: "REKAP"})
	assert.ErrorIs(t, err, presenceerrors.ErrUnknownCategory)
}

func TestService_ActiveList(t *testing.T) {
	ctx := context.Background()

	t.Run("ready", func(t *testing.T) {
		deps := setupService(t)
		deps.backend.responses["/presence/present"] = page(map[string]any{"id": 1})

		view, err := deps.service.ActiveList(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, presence.StatusReady, view.Status)
		assert.Len(t, view.Page.Data, 1)
	})

	t.Run("empty", func(t *testing.T) {
		deps := setupService(t)

		view, err := deps.service.ActiveList(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, presence.StatusEmpty, view.Status)
	})

	t.Run("fetch failure is a status, not an error", func(t *testing.T) {
		deps := setupService(t)
		deps.backend.errs["GET /presence/present"] = &backend.HTTPError{StatusCode: 500, Message: "down"}

		view, err := deps.service.ActiveList(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, presence.StatusError, view.Status)
		assert.NotEmpty(t, view.Error)
	})
}

func TestService_Edit(t *testing.T) {
	ctx := context.Background()
	filter := category.Filter{Page: 1, Limit: 10}

	t.Run("success invalidates and causes exactly one refetch", func(t *testing.T) {
		deps := setupService(t)

		_, err := deps.service.List(ctx, "u1", category.Present, filter)
		assert.NoError(t, err)
		_, err = deps.service.List(ctx, "u1", category.Present, filter)
		assert.NoError(t, err)
		assert.Equal(t, 1, deps.backend.count(http.MethodGet, "/presence/present"))

		n, err := deps.service.Edit(ctx, category.Present, 7, presence.EditRequest{
			EmployeeID: "3",
			Date:       "2024-05-01",
			ClockIn:    "08:00",
			ClockOut:   "17:00",
		})
		assert.NoError(t, err)
		assert.Equal(t, form.LevelSuccess, n.Level)
		assert.Equal(t, 1, deps.backend.count(http.MethodPatch, "/presence/7"))

		call, _ := deps.backend.last(http.MethodPatch, "/presence/7")
		_, isMultipart := call.body.(backend.MultipartBody)
		assert.True(t, isMultipart)

		_, err = deps.service.List(ctx, "u1", category.Present, filter)
		assert.NoError(t, err)
		_, err = deps.service.List(ctx, "u1", category.Present, filter)
		assert.NoError(t, err)
		assert.Equal(t, 2, deps.backend.count(http.MethodGet, "/presence/present"))
	})

	t.Run("validation failure sends nothing and keeps cache", func(t *testing.T) {
		deps := setupService(t)
		_, _ = deps.service.List(ctx, "u1", category.Alpha, filter)

		_, err := deps.service.Edit(ctx, category.Alpha, 7, presence.EditRequest{EmployeeID: "3", Date: "2024-05-01"})

		var fe form.FieldErrors
		assert.True(t, errors.As(err, &fe))
		assert.Equal(t, form.FieldErrors{"description": form.MsgRequired}, fe)
		assert.Equal(t, 0, deps.backend.count(http.MethodPatch, "/presence/7"))

		_, ok := deps.cache.Lookup(querycache.Key{Scope: "u1", Entity: "alpha", Page: 1, Limit: 10})
		assert.True(t, ok)
	})

	t.Run("leave end date before start date", func(t *testing.T) {
		deps := setupService(t)

		_, err := deps.service.Edit(ctx, category.Leave, 9, presence.EditRequest{
			EmployeeID:  "3",
			LeaveTypeID: "1",
			StartDate:   "2024-05-10",
			EndDate:     "2024-05-01",
			Description: "Cuti tahunan",
		})
		assert.Equal(t, form.FieldErrors{"end_date": form.MsgInvalid}, err)
		assert.Equal(t, 0, deps.backend.count(http.MethodPatch, "/leave-type/9"))
	})

	t.Run("leave is sent urlencoded and holiday as json", func(t *testing.T) {
		deps := setupService(t)

		_, err := deps.service.Edit(ctx, category.Leave, 9, presence.EditRequest{
			EmployeeID:  "3",
			LeaveTypeID: "1",
			StartDate:   "2024-05-01",
			EndDate:     "2024-05-03",
			Description: "Cuti tahunan",
		})
		assert.NoError(t, err)
		call, _ := deps.backend.last(http.MethodPatch, "/leave-type/9")
		body, ok := call.body.(backend.FormBody)
		assert.True(t, ok)
		assert.Equal(t, "2024-05-03", body.Values.Get("end_date"))

		_, err = deps.service.Edit(ctx, category.Holiday, 2, presence.EditRequest{Title: "Idul Fitri", Date: "2024-04-10"})
		assert.NoError(t, err)
		call, _ = deps.backend.last(http.MethodPatch, "/holiday/2")
		_, ok = call.body.(backend.JSONBody)
		assert.True(t, ok)
	})

	t.Run("backend failure carries upstream message", func(t *testing.T) {
		deps := setupService(t)
		_, _ = deps.service.List(ctx, "u1", category.Holiday, filter)
		deps.backend.errs["PATCH /holiday/2"] = &backend.HTTPError{StatusCode: 422, Message: "Tanggal sudah dipakai"}

		n, err := deps.service.Edit(ctx, category.Holiday, 2, presence.EditRequest{Title: "Libur", Date: "2024-04-10"})
		assert.Error(t, err)
		assert.Equal(t, form.LevelError, n.Level)
		assert.Equal(t, "Tanggal sudah dipakai", n.Message)

		_, ok := deps.cache.Lookup(querycache.Key{Scope: "u1", Entity: "holiday", Page: 1, Limit: 10})
		assert.True(t, ok)
	})

	t.Run("recap slice is not editable", func(t *testing.T) {
		deps := setupService(t)

		_, err := deps.service.Edit(ctx, category.ActiveEmployee, 1, presence.EditRequest{})
		assert.ErrorIs(t, err, presenceerrors.ErrNotEditable)

		_, err = deps.service.Delete(ctx, category.Code("ZZ"), 1)
		assert.ErrorIs(t, err, presenceerrors.ErrUnknownCategory)
	})
}

func TestService_Edit_EmptyForm(t *testing.T) {
	attendance := form.FieldErrors{
		"employee_id": form.MsgRequired,
		"date":        form.MsgRequired,
		"clock_in":    form.MsgRequired,
	}
	absence := form.FieldErrors{
		"employee_id": form.MsgRequired,
		"date":        form.MsgRequired,
		"description": form.MsgRequired,
	}

	tests := []struct {
		code category.Code
		want form.FieldErrors
	}{
		{category.Present, attendance},
		{category.ArriveLate, attendance},
		{category.GoEarly, attendance},
		{category.NotAbsent, attendance},
		{category.Alpha, absence},
		{category.Sick, absence},
		{category.Permission, absence},
		{category.Leave, form.FieldErrors{
			"employee_id":   form.MsgRequired,
			"leave_type_id": form.MsgRequired,
			"start_date":    form.MsgRequired,
			"end_date":      form.MsgRequired,
			"description":   form.MsgRequired,
		}},
		{category.Holiday, form.FieldErrors{
			"title": form.MsgRequired,
			"date":  form.MsgRequired,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			deps := setupService(t)

			n, err := deps.service.Edit(context.Background(), tt.code, 7, presence.EditRequest{})

			var fe form.FieldErrors
			assert.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.want, fe)
			assert.Empty(t, n.Message)
			assert.Equal(t, 0, deps.backend.total())
		})
	}
}

func TestService_Delete(t *testing.T) {
	deps := setupService(t)
	ctx := context.Background()
	filter := category.Filter{Page: 1, Limit: 10}

	_, _ = deps.service.List(ctx, "u1", category.Sick, filter)
	_, _ = deps.service.List(ctx, "u2", category.Sick, filter)

	n, err := deps.service.Delete(ctx, category.Sick, 5)
	assert.NoError(t, err)
	assert.Equal(t, form.LevelSuccess, n.Level)
	assert.Equal(t, 1, deps.backend.count(http.MethodDelete, "/presence/5"))
	assert.Equal(t, 0, deps.cache.Len())
}

func TestService_CreateRecord(t *testing.T) {
	deps := setupService(t)
	ctx := context.Background()

	_, err := deps.service.CreateRecord(ctx, presence.CreateRecordRequest{})
	var fe form.FieldErrors
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, form.FieldErrors{
		"employee_id": form.MsgRequired,
		"category":    form.MsgRequired,
		"date":        form.MsgRequired,
	}, fe)
	assert.Equal(t, 0, deps.backend.total())

	n, err := deps.service.CreateRecord(ctx, presence.CreateRecordRequest{
		EmployeeID: "3",
		Category:   "HT",
		Date:       "2024-05-01",
		ClockIn:    "08:25",
	})
	assert.NoError(t, err)
	assert.Equal(t, form.LevelSuccess, n.Level)
	assert.Equal(t, 1, deps.backend.count(http.MethodPost, "/presence"))
}

func TestService_EditRecord(t *testing.T) {
	deps := setupService(t)
	ctx := context.Background()
	filter := category.Filter{Page: 1, Limit: 10}

	for _, c := range category.All() {
		_, err := deps.service.List(ctx, "u1", c.Code, filter)
		assert.NoError(t, err)
	}

	n, err := deps.service.EditRecord(ctx, 11, presence.CreateRecordRequest{
		EmployeeID: "3",
		Category:   "S",
		Date:       "2024-05-02",
	})
	assert.NoError(t, err)
	assert.Equal(t, form.LevelSuccess, n.Level)
	assert.Equal(t, 1, deps.backend.count(http.MethodPatch, "/presence/11"))

	for _, c := range category.All() {
		_, cached := deps.cache.Lookup(querycache.Key{Scope: "u1", Entity: c.Entity, Page: 1, Limit: 10})
		if c.ItemPath == "/presence" {
			assert.False(t, cached, "%s should be invalidated", c.Code)
		} else {
			assert.True(t, cached, "%s should stay cached", c.Code)
		}
	}
}

func TestService_Recap(t *testing.T) {
	deps := setupService(t)
	ctx := context.Background()

	deps.backend.responses["/employee/active"] = page(
		map[string]any{"id": 1, "name": "Budi"},
		map[string]any{"id": 2, "name": "Sari"},
	)
	deps.backend.responses["/presence"] = page(
		map[string]any{"id": 10, "employee_id": 1, "category": "H"},
		map[string]any{"id": 11, "employee_id": 1, "category": "H"},
		map[string]any{"id": 12, "employee_id": 1, "category": "S"},
		map[string]any{"id": 13, "employee_id": 2, "category": "HT"},
	)

	view, err := deps.service.Recap(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, presence.StatusReady, view.Status)
	assert.Len(t, view.Rows, 2)
	assert.Equal(t, 2, view.Rows[0].Counts[category.Present])
	assert.Equal(t, 1, view.Rows[0].Counts[category.Sick])
	assert.Equal(t, 3, view.Rows[0].Total)
	assert.Equal(t, 1, view.Rows[1].Counts[category.ArriveLate])

	call, _ := deps.backend.last(http.MethodGet, "/presence")
	assert.Equal(t, "999999", call.query.Get("limit"))
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing selected", func(t *testing.T) {
		deps := setupService(t)

		_, err := deps.service.Export(ctx, "u1")
		assert.ErrorIs(t, err, presenceerrors.ErrNothingSelected)
	})

	t.Run("selected rows are written", func(t *testing.T) {
		deps := setupService(t)
		row, _ := json.Marshal(presence.Record{
			ID:          10,
			Employee:    &presence.EmployeeRef{ID: 1, Name: "Budi"},
			Date:        "2024-05-01",
			ClockIn:     "08:00",
			ClockOut:    "17:00",
			Description: "WFO",
		})
		deps.selections.sels[presence.Screen+":u1"] = selection.Selection{
			Screen: presence.Screen,
			Items:  []selection.Item{{ID: 10, Row: row}},
		}

		file, err := deps.service.Export(ctx, "u1")
		assert.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(file))
		assert.NoError(t, err)
		rows, err := f.GetRows("Kehadiran")
		assert.NoError(t, err)
		assert.Equal(t, []string{"No", "Nama", "Tanggal", "Jam Masuk", "Jam Pulang", "Keterangan"}, rows[0])
		assert.Equal(t, []string{"1", "Budi", "2024-05-01", "08:00", "17:00", "WFO"}, rows[1])
	})
}
