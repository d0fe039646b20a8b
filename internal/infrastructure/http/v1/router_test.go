package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/apperror"
	appctx "depo/internal/core/context"
	"depo/internal/domain/catalogs/location"
	"depo/internal/domain/catalogs/unit"
	"depo/internal/domain/catalogs/warehouse"
	"depo/internal/domain/catalogs/warehousetype"
	"depo/internal/domain/domaintest"
	"depo/internal/domain/form"
	"depo/internal/infrastructure/metrics"
)

const testToken = "good"

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	if token != testToken {
		return nil, errors.New("bad token")
	}
	return &appctx.UserContext{UserID: "u-1", Username: "admin", IsAdmin: true}, nil
}

type stubDB struct{ err error }

func (s stubDB) Ready(ctx context.Context) error { return s.err }

type env struct {
	router   http.Handler
	registry *form.Registry
	units    *domaintest.MemRepo[*unit.Unit]
	types    *domaintest.MemRepo[*warehousetype.WarehouseType]
	locs     *domaintest.MemRepo[*location.Location]
	whs      *domaintest.MemRepo[*warehouse.Warehouse]
	promReg  *prometheus.Registry
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		registry: form.NewRegistry(),
		units:    domaintest.NewMemRepo(unit.Kind, (*unit.Unit).Clone),
		types:    domaintest.NewMemRepo(warehousetype.Kind, (*warehousetype.WarehouseType).Clone),
		locs:     domaintest.NewMemRepo(location.Kind, (*location.Location).Clone),
		whs:      domaintest.NewMemRepo(warehouse.Kind, (*warehouse.Warehouse).Clone),
		promReg:  prometheus.NewRegistry(),
	}

	num := domaintest.NewSeqNumerator()
	typeSvc := warehousetype.NewService(e.types, nil, nil)
	locSvc := location.NewService(e.locs, nil, nil, num)

	e.router = NewRouter(RouterConfig{
		DB:             stubDB{},
		JWTValidator:   stubValidator{},
		Registry:       e.registry,
		Metrics:        metrics.NewForms(e.promReg, e.registry.Len),
		MetricsHandler: promhttp.HandlerFor(e.promReg, promhttp.HandlerOpts{}),
		Units:          unit.NewService(unit.ServiceConfig{Repo: e.units}),
		Locations:      locSvc,
		WarehouseTypes: typeSvc,
		Warehouses: warehouse.NewService(warehouse.ServiceConfig{
			Repo:      e.whs,
			Numerator: num,
			Types:     typeSvc,
			Locations: locSvc,
		}),
	})
	return e
}

func (e *env) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type sessionBody struct {
	SessionID string         `json:"sessionId"`
	Kind      string         `json:"kind"`
	View      map[string]any `json:"view"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *env) open(t *testing.T, kind, body string) sessionBody {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/forms/"+kind+"/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[sessionBody](t, w)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["code"].(string)
}

func TestRouter_RequiresToken(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/units/sessions", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeUnauthorized, errorCode(t, w))
}

func TestRouter_Health(t *testing.T) {
	e := newEnv(t)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUnitSession_PieceFlow(t *testing.T) {
	e := newEnv(t)

	s := e.open(t, "units", "")
	assert.Equal(t, "unit", s.Kind)
	assert.Equal(t, "new", s.View["header"])
	assert.Equal(t, false, s.View["canSubmit"])

	path := "/api/v1/forms/units/sessions/" + s.SessionID
	w := e.do(t, http.MethodPatch, path, `{"trName":"Adet","enName":"Piece","trSymbol":"ad","enSymbol":"pc"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view := decode[sessionBody](t, w).View
	assert.Equal(t, "PIECE", view["derivedCode"])
	assert.Equal(t, true, view["isPieceUnit"])
	assert.Equal(t, true, view["symbolsDisabled"])
	assert.Equal(t, "", view["trSymbol"])
	assert.Equal(t, "", view["enSymbol"])
	assert.Equal(t, true, view["canSubmit"])

	w = e.do(t, http.MethodPost, path+"/submit", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[map[string]string](t, w)["id"])
	assert.Equal(t, 1, e.units.Len())

	w = e.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeSessionNotFound, errorCode(t, w))
	assert.Equal(t, 0, e.registry.Len())
}

func TestUnitSession_SubmitNotReadyKeepsSession(t *testing.T) {
	e := newEnv(t)
	s := e.open(t, "units", "")
	path := "/api/v1/forms/units/sessions/" + s.SessionID

	e.do(t, http.MethodPatch, path, `{"enName":"Gram"}`)
	w := e.do(t, http.MethodPost, path+"/submit", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeFormNotSubmittable, errorCode(t, w))

	w = e.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gram", decode[sessionBody](t, w).View["enName"])
}

func TestUnitSession_DuplicateCodeStaysOpen(t *testing.T) {
	e := newEnv(t)
	e.units.Seed(unit.NewUnit("LITRE", "Litre", "Litre"))

	s := e.open(t, "units", "")
	path := "/api/v1/forms/units/sessions/" + s.SessionID
	e.do(t, http.MethodPatch, path, `{"trName":"Litre","enName":"Litre"}`)

	w := e.do(t, http.MethodPost, path+"/submit", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeDuplicate, errorCode(t, w))

	w = e.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[sessionBody](t, w).View
	assert.Equal(t, false, view["mutating"])
	assert.Equal(t, true, view["canSubmit"])
}

func TestUnitSession_EditMode(t *testing.T) {
	e := newEnv(t)
	u := unit.NewUnit("KG", "Kilogram", "Kilogram")
	u.TrSymbol, u.EnSymbol = "kg", "kg"
	e.units.Seed(u)

	s := e.open(t, "units", `{"entityId":"`+u.ID.String()+`"}`)
	assert.Equal(t, "edit", s.View["header"])
	assert.Equal(t, true, s.View["showActive"])
	assert.Equal(t, "KG", s.View["code"])

	path := "/api/v1/forms/units/sessions/" + s.SessionID
	e.do(t, http.MethodPatch, path, `{"active":false}`)
	w := e.do(t, http.MethodPost, path+"/submit", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := e.units.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "KG", got.Code)
}

func TestSession_OpenUnknownEntity(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/api/v1/forms/units/sessions", `{"entityId":"0190a000-0000-7000-8000-000000000000"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, e.registry.Len())
}

func TestSession_CancelRemoves(t *testing.T) {
	e := newEnv(t)
	s := e.open(t, "locations", "")
	path := "/api/v1/forms/locations/sessions/" + s.SessionID

	e.do(t, http.MethodPatch, path, `{"name":"Merkez"}`)
	w := e.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodPost, path+"/submit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, e.locs.Len())
}

func TestSession_WrongKindIsNotFound(t *testing.T) {
	e := newEnv(t)
	s := e.open(t, "units", "")

	w := e.do(t, http.MethodGet, "/api/v1/forms/locations/sessions/"+s.SessionID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/forms/units/sessions/"+s.SessionID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSession_InvalidSessionID(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/api/v1/forms/units/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWarehouseSession_Flow(t *testing.T) {
	e := newEnv(t)
	wt := warehousetype.NewWarehouseType("RAW", "Hammadde Deposu")
	loc := location.NewLocation("LOC-1", "Merkez")
	e.types.Seed(wt)
	e.locs.Seed(loc)

	s := e.open(t, "warehouses", "")
	path := "/api/v1/forms/warehouses/sessions/" + s.SessionID

	w := e.do(t, http.MethodPatch, path, `{"name":"Ana Depo","warehouseTypeId":"`+wt.ID.String()+`","locationId":"`+loc.ID.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode[sessionBody](t, w).View["canSubmit"])

	w = e.do(t, http.MethodPatch, path, `{"locationId":null}`)
	view := decode[sessionBody](t, w).View
	assert.Nil(t, view["locationId"])
	assert.Equal(t, wt.ID.String(), view["warehouseTypeId"])
	assert.Equal(t, false, view["canSubmit"])

	e.do(t, http.MethodPatch, path, `{"locationId":"`+loc.ID.String()+`"}`)
	w = e.do(t, http.MethodPost, path+"/submit", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, e.whs.Len())
}

func TestWarehouseSession_MissingReferenceKeepsOpen(t *testing.T) {
	e := newEnv(t)
	wt := warehousetype.NewWarehouseType("GEN", "Genel")
	e.types.Seed(wt)

	s := e.open(t, "warehouses", "")
	path := "/api/v1/forms/warehouses/sessions/" + s.SessionID
	e.do(t, http.MethodPatch, path, `{"name":"Depo","warehouseTypeId":"`+wt.ID.String()+`","locationId":"0190a000-0000-7000-8000-000000000001"}`)

	w := e.do(t, http.MethodPost, path+"/submit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalog_WarehouseTypesCarryIcons(t *testing.T) {
	e := newEnv(t)
	e.types.Seed(warehousetype.NewWarehouseType("RAW", "Hammadde"))
	e.types.Seed(warehousetype.NewWarehouseType("SPR", "Yedek Parça"))

	w := e.do(t, http.MethodGet, "/api/v1/catalog/warehouse-types", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[struct {
		Items []warehousetype.Option `json:"items"`
	}](t, w)
	icons := map[string]warehousetype.Icon{}
	for _, o := range body.Items {
		icons[o.Code] = o.Icon
	}
	assert.Equal(t, warehousetype.IconRawMaterial, icons["RAW"])
	assert.Equal(t, warehousetype.IconSpareParts, icons["SPR"])
}

func TestMetrics_CountSessions(t *testing.T) {
	e := newEnv(t)
	s := e.open(t, "locations", "")
	e.do(t, http.MethodDelete, "/api/v1/forms/locations/sessions/"+s.SessionID, "")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `depo_forms_sessions_opened_total{kind="location",mode="add"} 1`)
	assert.Contains(t, w.Body.String(), `depo_forms_sessions_cancelled_total{kind="location"} 1`)
}
