package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/go-zero/rest/router"

	"pricebatch/internal/config"
	"pricebatch/internal/errorx"
	"pricebatch/internal/handler"
	"pricebatch/internal/svc"
	"pricebatch/internal/types"
)

func TestMain(m *testing.M) {
	logx.Disable()
	httpx.SetErrorHandlerCtx(errorx.Handler)
	os.Exit(m.Run())
}

type api struct {
	t  *testing.T
	rt httpx.Router
}

func newAPI(t *testing.T, capacity int) *api {
	t.Helper()
	cfg := config.Config{}
	cfg.Batches.Capacity = capacity
	cfg.Batches.Shards = 4

	rt := router.NewRouter()
	for _, route := range handler.Routes(svc.NewServiceContext(cfg)) {
		require.NoError(t, rt.Handle(route.Method, route.Path, route.Handler))
	}
	return &api{t: t, rt: rt}
}

func (a *api) do(method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.rt.ServeHTTP(rec, req)
	return rec
}

func (a *api) create() int64 {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/batches/create", "", nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp types.CreateBatchResp
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Id
}

func (a *api) uploadJSON(batchID int64, items ...types.PriceItem) *httptest.ResponseRecorder {
	a.t.Helper()
	if items == nil {
		items = []types.PriceItem{}
	}
	body, err := json.Marshal(map[string]any{"prices": items})
	require.NoError(a.t, err)
	return a.do(http.MethodPut, fmt.Sprintf("/batches/%d/upload", batchID), "application/json", body)
}

func (a *api) price(id int64) (int, types.PriceResp) {
	a.t.Helper()
	rec := a.do(http.MethodGet, fmt.Sprintf("/prices/%d", id), "", nil)
	var resp types.PriceResp
	if rec.Code == http.StatusOK {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) errorx.CodeError {
	t.Helper()
	var ce errorx.CodeError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ce), rec.Body.String())
	return ce
}

func TestBatchLifecycle(t *testing.T) {
	a := newAPI(t, 10)

	id := a.create()
	assert.Equal(t, int64(1), id)

	rec := a.uploadJSON(id,
		types.PriceItem{Id: 42, AsOf: "2024-03-01T12:00:00Z", Payload: "old"},
		types.PriceItem{Id: 42, AsOf: "2024-03-01T12:05:00Z", Payload: "new"},
	)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	code, _ := a.price(42)
	assert.Equal(t, http.StatusNotFound, code, "uploads stay invisible until commit")

	rec = a.do(http.MethodPut, fmt.Sprintf("/batches/%d/commit", id), "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	code, got := a.price(42)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "new", got.Payload)
	assert.Equal(t, "2024-03-01T12:05:00Z", got.AsOf)

	rec = a.do(http.MethodPut, fmt.Sprintf("/batches/%d/commit", id), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "a closed batch is gone from the registry")
	assert.Equal(t, http.StatusNotFound, errorBody(t, rec).Code)
}

func TestDiscardHidesPrices(t *testing.T) {
	a := newAPI(t, 10)

	id := a.create()
	require.Equal(t, http.StatusNoContent, a.uploadJSON(id, types.PriceItem{Id: 7, AsOf: "2024-03-01T12:00:00Z", Payload: "x"}).Code)

	rec := a.do(http.MethodDelete, fmt.Sprintf("/batches/%d/discard", id), "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	code, _ := a.price(7)
	assert.Equal(t, http.StatusNotFound, code)

	rec = a.do(http.MethodDelete, fmt.Sprintf("/batches/%d/discard", id), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.uploadJSON(id, types.PriceItem{Id: 7, AsOf: "2024-03-01T12:00:00Z", Payload: "y"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownBatch(t *testing.T) {
	a := newAPI(t, 10)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPut, "/batches/99/commit"},
		{http.MethodDelete, "/batches/99/discard"},
	} {
		rec := a.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
	}
	assert.Equal(t, http.StatusNotFound, a.uploadJSON(99).Code)
}

func TestCreateOverCapacity(t *testing.T) {
	a := newAPI(t, 1)

	a.create()
	rec := a.do(http.MethodPost, "/batches/create", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, http.StatusServiceUnavailable, errorBody(t, rec).Code)
}

func TestUploadRejectsBadBodies(t *testing.T) {
	a := newAPI(t, 10)
	id := a.create()
	path := fmt.Sprintf("/batches/%d/upload", id)

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"unsupported content type", "text/plain", `{"prices":[]}`},
		{"missing prices", "application/json", `{}`},
		{"malformed json", "application/json", `{"prices":[`},
		{"bad asOf", "application/json", `{"prices":[{"id":1,"asOf":"yesterday","payload":"p"}]}`},
		{"negative id", "application/json", `{"prices":[{"id":-1,"asOf":"2024-03-01T12:00:00Z","payload":"p"}]}`},
		{"garbage msgpack", "application/x-msgpack", "\xc1\xc1"},
		{"msgpack without prices", "application/x-msgpack", "\x80"},
		{"msgpack nil prices", "application/msgpack", "\x81\xa6prices\xc0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(http.MethodPut, path, tt.contentType, []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	// Rejected bodies leave the batch open.
	require.Equal(t, http.StatusNoContent, a.uploadJSON(id).Code)

	empty, err := msgpack.Marshal(types.UploadBody{Prices: []types.PriceItem{}})
	require.NoError(t, err)
	rec := a.do(http.MethodPut, path, "application/x-msgpack", empty)
	assert.Equal(t, http.StatusNoContent, rec.Code, "an explicit empty list is a valid upload")
}

func TestUploadAcceptsLocalDateTime(t *testing.T) {
	a := newAPI(t, 10)
	id := a.create()

	require.Equal(t, http.StatusNoContent, a.uploadJSON(id, types.PriceItem{Id: 3, AsOf: "2024-03-01T12:00:00", Payload: "local"}).Code)
	require.Equal(t, http.StatusNoContent, a.do(http.MethodPut, fmt.Sprintf("/batches/%d/commit", id), "", nil).Code)

	code, got := a.price(3)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-03-01T12:00:00Z", got.AsOf)
}

func TestMsgpackUploadMatchesJSON(t *testing.T) {
	a := newAPI(t, 10)
	items := []types.PriceItem{
		{Id: 10, AsOf: "2024-03-01T12:00:00Z", Payload: "json"},
		{Id: 11, AsOf: "2024-03-01T12:00:00Z", Payload: "json"},
	}

	first := a.create()
	require.Equal(t, http.StatusNoContent, a.uploadJSON(first, items...).Code)
	require.Equal(t, http.StatusNoContent, a.do(http.MethodPut, fmt.Sprintf("/batches/%d/commit", first), "", nil).Code)

	second := a.create()
	newer := []types.PriceItem{
		{Id: 10, AsOf: "2024-03-01T12:01:00Z", Payload: "msgpack"},
		{Id: 11, AsOf: "2024-03-01T11:59:00Z", Payload: "msgpack"},
	}
	body, err := msgpack.Marshal(types.UploadBody{Prices: newer})
	require.NoError(t, err)
	rec := a.do(http.MethodPut, fmt.Sprintf("/batches/%d/upload", second), "application/x-msgpack", body)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusNoContent, a.do(http.MethodPut, fmt.Sprintf("/batches/%d/commit", second), "", nil).Code)

	_, got := a.price(10)
	assert.Equal(t, "msgpack", got.Payload, "newer asOf replaces the published price")
	_, got = a.price(11)
	assert.Equal(t, "json", got.Payload, "older asOf never overwrites")
}

func TestGetPriceBadPath(t *testing.T) {
	a := newAPI(t, 10)
	rec := a.do(http.MethodGet, "/prices/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
