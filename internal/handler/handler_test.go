package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/config"
	"github.com/legalconnect/legalconnect/internal/metrics"
	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/repository"
	"github.com/legalconnect/legalconnect/internal/server"
	"github.com/legalconnect/legalconnect/internal/service"
)

// fakeStore is an in-memory stand-in for the repository, backing every
// service store interface.
type fakeStore struct {
	users       map[int64]*model.User
	usersByMail map[string]*model.User
	lawyers     map[int64]*model.Lawyer
	collections map[repository.CollectionKind]map[int64][]int64
	history     []*model.SearchHistoryRecord
	nextID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[int64]*model.User),
		usersByMail: make(map[string]*model.User),
		lawyers:     make(map[int64]*model.Lawyer),
		collections: map[repository.CollectionKind]map[int64][]int64{
			repository.CollectionShortlist:  {},
			repository.CollectionComparison: {},
		},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.usersByMail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	user.ID = f.id()
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = user
	f.usersByMail[user.Email] = user
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.usersByMail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) ListLawyers(_ context.Context, filters model.SearchFilters, _ string) ([]*model.Lawyer, error) {
	out := make([]*model.Lawyer, 0, len(f.lawyers))
	for _, l := range f.lawyers {
		if filters.State != nil && l.LocationState != *filters.State {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) GetLawyer(_ context.Context, id int64) (*model.Lawyer, error) {
	l, ok := f.lawyers[id]
	if !ok {
		return nil, repository.ErrLawyerNotFound
	}
	return l, nil
}

func (f *fakeStore) CreateLawyer(_ context.Context, lawyer *model.Lawyer) error {
	lawyer.ID = f.id()
	lawyer.CreatedAt = time.Now().UTC()
	f.lawyers[lawyer.ID] = lawyer
	return nil
}

func (f *fakeStore) UpdateLawyer(_ context.Context, id int64, patch *repository.LawyerPatch) error {
	l, ok := f.lawyers[id]
	if !ok {
		return repository.ErrLawyerNotFound
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.HourlyRateMin != nil {
		l.HourlyRateMin = *patch.HourlyRateMin
	}
	return nil
}

func (f *fakeStore) DeleteLawyer(_ context.Context, id int64) error {
	if _, ok := f.lawyers[id]; !ok {
		return repository.ErrLawyerNotFound
	}
	delete(f.lawyers, id)
	return nil
}

func (f *fakeStore) ListCollection(_ context.Context, kind repository.CollectionKind, userID int64) ([]*model.Lawyer, error) {
	ids := f.collections[kind][userID]
	out := make([]*model.Lawyer, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, f.lawyers[ids[i]])
	}
	if limit := kind.Limit(); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) AddCollectionEntry(_ context.Context, kind repository.CollectionKind, userID, lawyerID int64) error {
	members := f.collections[kind][userID]
	if limit := kind.Limit(); limit > 0 && len(members) >= limit {
		return repository.ErrCollectionFull
	}
	for _, id := range members {
		if id == lawyerID {
			return repository.ErrAlreadyInCollection
		}
	}
	if _, ok := f.lawyers[lawyerID]; !ok {
		return repository.ErrLawyerNotFound
	}
	f.collections[kind][userID] = append(members, lawyerID)
	return nil
}

func (f *fakeStore) RemoveCollectionEntry(_ context.Context, kind repository.CollectionKind, userID, lawyerID int64) error {
	members := f.collections[kind][userID]
	for i, id := range members {
		if id == lawyerID {
			f.collections[kind][userID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return repository.ErrEntryNotFound
}

func (f *fakeStore) ClearCollection(_ context.Context, kind repository.CollectionKind, userID int64) error {
	f.collections[kind][userID] = nil
	return nil
}

func (f *fakeStore) CreateSearchHistory(_ context.Context, record *model.SearchHistoryRecord) error {
	record.ID = f.id()
	record.CreatedAt = time.Now().UTC()
	f.history = append(f.history, record)
	return nil
}

func (f *fakeStore) ListSearchHistory(_ context.Context, userID int64) ([]*model.SearchHistoryRecord, error) {
	out := make([]*model.SearchHistoryRecord, 0)
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].UserID == userID {
			out = append(out, f.history[i])
		}
		if len(out) == model.HistoryReadLimit {
			break
		}
	}
	return out, nil
}

type testAPI struct {
	router http.Handler
	store  *fakeStore
	tokens *auth.TokenManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := newFakeStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenManager("test-secret-at-least-32-bytes-long", "legalconnect", time.Hour)

	cfg := &config.Config{
		AppEnv:             "development",
		RateLimitEnabled:   false,
		MaxRequestBodySize: 1 << 20,
	}

	router := server.NewRouter(server.RouterDeps{
		Logger:      logger,
		Config:      cfg,
		Tokens:      tokens,
		Auth:        service.NewAuthService(store, tokens, nil),
		Directory:   service.NewDirectoryService(store, nil, 0, nil, logger),
		Collections: service.NewCollectionService(store, nil),
		History:     service.NewHistoryService(store),
		Metrics:     metrics.NewInMemory(),
	})

	return &testAPI{router: router, store: store, tokens: tokens}
}

// seedUser registers an account directly in the store and returns a
// valid token for it.
func (a *testAPI) seedUser(t *testing.T, email, role string) (*model.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &model.User{Name: "Test User", Email: email, PasswordHash: hash, Role: role}
	if err := a.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	token, err := a.tokens.Issue(model.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return user, token
}

func (a *testAPI) seedLawyer(t *testing.T, name, state string) *model.Lawyer {
	t.Helper()

	lawyer := &model.Lawyer{
		Name:          name,
		Firm:          "Seed & Partners",
		Tier:          model.TierMid,
		PracticeArea:  "family",
		LocationCity:  "Sydney",
		LocationState: state,
		HourlyRateMin: 200,
		HourlyRateMax: 400,
		SuccessRate:   80,
	}
	if err := a.store.CreateLawyer(context.Background(), lawyer); err != nil {
		t.Fatalf("CreateLawyer() error = %v", err)
	}
	return lawyer
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRegisterLoginFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Jane Citizen",
		"email":    "jane@example.com",
		"password": "secret-password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["token"] == "" || body["token"] == nil {
		t.Error("register response missing token")
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("register response missing user: %v", body)
	}
	if user["role"] != model.RoleUser {
		t.Errorf("role = %v, want %q", user["role"], model.RoleUser)
	}
	if _, leaked := user["password"]; leaked {
		t.Error("register response leaked password field")
	}

	// Duplicate registration conflicts.
	rec = api.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Jane Again",
		"email":    "jane@example.com",
		"password": "other-password",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", rec.Code, http.StatusConflict)
	}

	// Login with the right and wrong password.
	rec = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "jane@example.com",
		"password": "secret-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	token, _ := decodeBody(t, rec)["token"].(string)
	if token == "" {
		t.Fatal("login response missing token")
	}

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "jane@example.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// The issued token works against /api/auth/me.
	rec = api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body.String())
	}
	me, _ := decodeBody(t, rec)["user"].(map[string]any)
	if me["email"] != "jane@example.com" {
		t.Errorf("me email = %v", me["email"])
	}
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "jane@example.com",
		"password": "pw",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if body := decodeBody(t, rec); body["error"] == nil {
		t.Error("missing error envelope")
	}
}

func TestLawyerListPublic(t *testing.T) {
	api := newTestAPI(t)
	api.seedLawyer(t, "Sarah Mitchell", "NSW")
	api.seedLawyer(t, "James Wilson", "VIC")

	rec := api.do(t, http.MethodGet, "/api/lawyers", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	lawyers, ok := decodeBody(t, rec)["lawyers"].([]any)
	if !ok {
		t.Fatalf("missing lawyers envelope: %s", rec.Body.String())
	}
	if len(lawyers) != 2 {
		t.Errorf("len = %d, want 2", len(lawyers))
	}

	first, _ := lawyers[0].(map[string]any)
	for _, key := range []string{"practiceArea", "hourlyRateMin", "locationState", "specialties"} {
		if _, ok := first[key]; !ok {
			t.Errorf("lawyer response missing %q key: %v", key, first)
		}
	}

	rec = api.do(t, http.MethodGet, "/api/lawyers?state=NSW", "", nil)
	lawyers, _ = decodeBody(t, rec)["lawyers"].([]any)
	if len(lawyers) != 1 {
		t.Errorf("filtered len = %d, want 1", len(lawyers))
	}
}

func TestLawyerGet(t *testing.T) {
	api := newTestAPI(t)
	seeded := api.seedLawyer(t, "Sarah Mitchell", "NSW")

	rec := api.do(t, http.MethodGet, fmt.Sprintf("/api/lawyers/%d", seeded.ID), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	lawyer, _ := decodeBody(t, rec)["lawyer"].(map[string]any)
	if lawyer["name"] != "Sarah Mitchell" {
		t.Errorf("name = %v", lawyer["name"])
	}

	rec = api.do(t, http.MethodGet, "/api/lawyers/9999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing lawyer status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = api.do(t, http.MethodGet, "/api/lawyers/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLawyerWritesRequireAdmin(t *testing.T) {
	api := newTestAPI(t)
	_, userToken := api.seedUser(t, "user@example.com", model.RoleUser)
	_, adminToken := api.seedUser(t, "admin@example.com", model.RoleAdmin)

	payload := map[string]any{
		"name":            "New Lawyer",
		"firm":            "New & Co",
		"practiceArea":    "property",
		"hourlyRateMin":   150,
		"hourlyRateMax":   300,
		"locationCity":    "Melbourne",
		"locationState":   "VIC",
		"experienceYears": 4,
	}

	rec := api.do(t, http.MethodPost, "/api/lawyers", "", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = api.do(t, http.MethodPost, "/api/lawyers", userToken, payload)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user create status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = api.do(t, http.MethodPost, "/api/lawyers", adminToken, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create status = %d, body %s", rec.Code, rec.Body.String())
	}
	created, _ := decodeBody(t, rec)["lawyer"].(map[string]any)
	if created["tier"] != model.TierMid {
		t.Errorf("tier = %v, want default %q", created["tier"], model.TierMid)
	}

	// Empty patch is rejected.
	id := int64(created["id"].(float64))
	rec = api.do(t, http.MethodPut, fmt.Sprintf("/api/lawyers/%d", id), adminToken, map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty patch status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = api.do(t, http.MethodPut, fmt.Sprintf("/api/lawyers/%d", id), adminToken, map[string]any{"name": "Renamed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/lawyers/%d", id), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/lawyers/%d", id), adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("re-delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestShortlistEndpoints(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.seedUser(t, "user@example.com", model.RoleUser)
	lawyer := api.seedLawyer(t, "Sarah Mitchell", "NSW")

	rec := api.do(t, http.MethodGet, "/api/shortlist", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	path := fmt.Sprintf("/api/shortlist/%d", lawyer.ID)
	if rec = api.do(t, http.MethodPost, path, token, nil); rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec = api.do(t, http.MethodPost, path, token, nil); rec.Code != http.StatusConflict {
		t.Errorf("duplicate add status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if rec = api.do(t, http.MethodPost, "/api/shortlist/9999", token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing lawyer add status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = api.do(t, http.MethodGet, "/api/shortlist", token, nil)
	entries, _ := decodeBody(t, rec)["shortlist"].([]any)
	if len(entries) != 1 {
		t.Errorf("shortlist len = %d, want 1", len(entries))
	}

	if rec = api.do(t, http.MethodDelete, path, token, nil); rec.Code != http.StatusOK {
		t.Errorf("remove status = %d", rec.Code)
	}
	if rec = api.do(t, http.MethodDelete, path, token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("re-remove status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestComparisonEndpoints(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.seedUser(t, "user@example.com", model.RoleUser)

	ids := make([]int64, 0, 4)
	for i := 0; i < 4; i++ {
		ids = append(ids, api.seedLawyer(t, fmt.Sprintf("Lawyer %d", i), "NSW").ID)
	}

	for _, id := range ids[:3] {
		rec := api.do(t, http.MethodPost, fmt.Sprintf("/api/comparison/%d", id), token, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add %d status = %d, body %s", id, rec.Code, rec.Body.String())
		}
	}

	rec := api.do(t, http.MethodPost, fmt.Sprintf("/api/comparison/%d", ids[3]), token, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("fourth add status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if body := decodeBody(t, rec); body["error"] != "maximum 3 lawyers can be compared" {
		t.Errorf("error = %v", body["error"])
	}

	rec = api.do(t, http.MethodGet, "/api/comparison", token, nil)
	entries, _ := decodeBody(t, rec)["comparison"].([]any)
	if len(entries) != model.ComparisonLimit {
		t.Errorf("comparison len = %d, want %d", len(entries), model.ComparisonLimit)
	}

	if rec = api.do(t, http.MethodDelete, "/api/comparison", token, nil); rec.Code != http.StatusOK {
		t.Errorf("clear status = %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, "/api/comparison", token, nil)
	entries, _ = decodeBody(t, rec)["comparison"].([]any)
	if len(entries) != 0 {
		t.Errorf("post-clear len = %d, want 0", len(entries))
	}
}

func TestHistoryEndpoints(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.seedUser(t, "user@example.com", model.RoleUser)

	rec := api.do(t, http.MethodPost, "/api/history", token, map[string]any{
		"practiceArea": "family",
		"state":        "NSW",
		"resultCount":  5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	// A search with no filters still records.
	rec = api.do(t, http.MethodPost, "/api/history", token, map[string]any{"resultCount": 0})
	if rec.Code != http.StatusCreated {
		t.Fatalf("empty-filter save status = %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/history", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	history, ok := decodeBody(t, rec)["history"].([]any)
	if !ok {
		t.Fatalf("missing history envelope: %s", rec.Body.String())
	}
	if len(history) != 2 {
		t.Errorf("history len = %d, want 2", len(history))
	}
	newest, _ := history[0].(map[string]any)
	if newest["practiceArea"] != nil {
		t.Errorf("newest practiceArea = %v, want null", newest["practiceArea"])
	}
}

func TestHealthAndNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if body := decodeBody(t, rec); body["error"] == nil {
		t.Error("404 missing error envelope")
	}

	rec = api.do(t, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}
