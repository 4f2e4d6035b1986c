package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/inventory/internal/controller"
	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/input"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every mutation with a storage failure.
type failingStore struct {
	store.ProductStore
}

func (failingStore) Insert(context.Context, string, float64, int64) error {
	return perrors.NewStorageFailure("insert", errors.New("disk full"))
}

func (failingStore) Delete(context.Context, int64) error {
	return perrors.NewStorageFailure("delete", errors.New("disk full"))
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	ValidationErrors map[string]string `json:"validation_errors"`
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	ctrl    *controller.Controller
}

func newTestAPI(t *testing.T, s store.ProductStore) *testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := controller.New(s, logger)
	require.NoError(t, ctrl.Start(context.Background()))
	formatter, err := input.NewCurrencyFormatter("BRL")
	require.NoError(t, err)

	mux := server.NewChiRouter(logger)
	NewHandler(ctrl, formatter, logger).RegisterRoutes(mux)
	return &testAPI{t: t, handler: mux, ctrl: ctrl}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1/inventory"+path, reader)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) screen(rec *httptest.ResponseRecorder) ScreenDto {
	a.t.Helper()
	var dto ScreenDto
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &dto), rec.Body.String())
	return dto
}

func (a *testAPI) create(name, price, quantity string) {
	a.t.Helper()
	body, err := json.Marshal(FormUpdateDto{Name: &name, Price: &price, Quantity: &quantity})
	require.NoError(a.t, err)
	require.Equal(a.t, http.StatusOK, a.do(http.MethodPut, "/form", string(body)).Code)
	require.Equal(a.t, http.StatusCreated, a.do(http.MethodPost, "/save", "").Code)
}

func Test_InventoryAPI_UpdateForm_Masks(t *testing.T) {
	// given
	api := newTestAPI(t, store.NewInMemoryStore())

	// when
	rec := api.do(http.MethodPut, "/form", `{"name":"Banana","price":"R$ 12,345","quantity":"1a2"}`)

	// then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Banana","price":"12.34","quantity":"12"}`, rec.Body.String())
}

func Test_InventoryAPI_SaveAndScreen(t *testing.T) {
	// given
	api := newTestAPI(t, store.NewInMemoryStore())
	api.do(http.MethodPut, "/form", `{"name":"Banana","price":"2,50","quantity":"3"}`)

	// when
	rec := api.do(http.MethodPost, "/save", "")

	// then
	require.Equal(t, http.StatusCreated, rec.Code)
	screen := api.screen(rec)
	require.Len(t, screen.Items, 1)
	assert.Equal(t, ItemDto{ID: 1, Name: "Banana", Price: 2.5, PriceText: "R$2,50", Quantity: 3, ValueText: "R$7,50"}, screen.Items[0])
	assert.Equal(t, SummaryDto{Count: 1, TotalQuantity: 3, TotalValue: 7.5, TotalValueText: "R$7,50"}, screen.Summary)
	assert.Equal(t, []controller.Notice{{Level: controller.LevelInfo, Message: "Product saved."}}, screen.Notices)
	assert.Equal(t, controller.Form{}, screen.Form)
	assert.Equal(t, "BRL", screen.Currency)

	// notices are drained by the first read
	assert.Empty(t, api.screen(api.do(http.MethodGet, "/", "")).Notices)
}

// staleFormInventory reports a form that disagrees with what Save does, as when
// another request changes the form between the read and the write.
type staleFormInventory struct {
	*controller.Controller
	formEditing bool
	updated     bool
}

func (s staleFormInventory) Form() controller.Form {
	if s.formEditing {
		id := int64(1)
		return controller.Form{EditingID: &id}
	}
	return controller.Form{}
}

func (s staleFormInventory) Save(context.Context) (bool, error) {
	return s.updated, nil
}

func Test_InventoryAPI_Save_StatusFollowsWrite(t *testing.T) {
	testCases := []struct {
		name           string
		formEditing    bool
		updated        bool
		expectedStatus int
	}{
		{name: "insert while form looked edited", formEditing: true, updated: false, expectedStatus: http.StatusCreated},
		{name: "update while form looked new", formEditing: false, updated: true, expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			ctrl := controller.New(store.NewInMemoryStore(), logger)
			require.NoError(t, ctrl.Start(context.Background()))
			formatter, err := input.NewCurrencyFormatter("BRL")
			require.NoError(t, err)
			mux := server.NewChiRouter(logger)
			inventory := staleFormInventory{Controller: ctrl, formEditing: tc.formEditing, updated: tc.updated}
			NewHandler(inventory, formatter, logger).RegisterRoutes(mux)

			// when
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/inventory/save", nil))

			// then
			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func Test_InventoryAPI_Save_Validation(t *testing.T) {
	// given
	api := newTestAPI(t, store.NewInMemoryStore())
	api.do(http.MethodPut, "/form", `{"name":"  ","price":"0","quantity":""}`)

	// when
	rec := api.do(http.MethodPost, "/save", "")

	// then
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{
		"name":     "name is required",
		"price":    "price must be greater than zero",
		"quantity": "quantity is required",
	}, body.ValidationErrors)
	assert.Empty(t, api.ctrl.Items())
}

func Test_InventoryAPI_SearchAndSort(t *testing.T) {
	// given
	api := newTestAPI(t, store.NewInMemoryStore())
	api.create("Uva", "10", "1")
	api.create("banana", "2", "5")
	api.create("Abacaxi", "7", "2")

	testCases := []struct {
		name     string
		method   string
		path     string
		body     string
		expected []string
	}{
		{name: "recent first", method: http.MethodGet, path: "/", expected: []string{"Abacaxi", "banana", "Uva"}},
		{name: "next is alphabet", method: http.MethodPost, path: "/sort/next", expected: []string{"Abacaxi", "banana", "Uva"}},
		{name: "next is price", method: http.MethodPost, path: "/sort/next", expected: []string{"banana", "Abacaxi", "Uva"}},
		{name: "set quantity", method: http.MethodPut, path: "/sort", body: `{"mode":"quantity"}`, expected: []string{"Uva", "Abacaxi", "banana"}},
		{name: "search", method: http.MethodPut, path: "/search", body: `{"query":" AN "}`, expected: []string{"banana"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rec := api.do(tc.method, tc.path, tc.body)

			// then
			require.Equal(t, http.StatusOK, rec.Code)
			screen := api.screen(rec)
			got := make([]string, 0, len(screen.Items))
			for _, item := range screen.Items {
				got = append(got, item.Name)
			}
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, 3, screen.Summary.Count)
		})
	}
}

func Test_InventoryAPI_SetSort_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "unknown mode", body: `{"mode":"random"}`},
		{name: "missing mode", body: `{}`},
		{name: "bad json", body: `{`},
	}
	api := newTestAPI(t, store.NewInMemoryStore())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(http.MethodPut, "/sort", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func Test_InventoryAPI_EditFlow(t *testing.T) {
	// given
	api := newTestAPI(t, store.NewInMemoryStore())
	api.create("Banana", "2,5", "3")

	// when
	rec := api.do(http.MethodPost, "/items/1/edit", "")

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	form := api.screen(rec).Form
	require.NotNil(t, form.EditingID)
	assert.Equal(t, "2.5", form.PriceText)

	// when
	api.do(http.MethodPut, "/form", `{"quantity":"9"}`)
	rec = api.do(http.MethodPost, "/save", "")

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), api.screen(rec).Items[0].Quantity)
}

func Test_InventoryAPI_ItemErrors(t *testing.T) {
	testCases := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{name: "edit unknown", path: "/items/5/edit", expectedCode: http.StatusNotFound, expectedBody: `{"error":"Product not found"}`},
		{name: "delete unknown", path: "/items/5/delete", expectedCode: http.StatusNotFound, expectedBody: `{"error":"Product not found"}`},
		{name: "invalid id", path: "/items/abc/edit", expectedCode: http.StatusBadRequest, expectedBody: `{"error":"Invalid ID: abc"}`},
		{name: "confirm without request", path: "/delete/confirm", expectedCode: http.StatusConflict, expectedBody: `{"error":"No product is pending deletion"}`},
	}
	api := newTestAPI(t, store.NewInMemoryStore())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, tc.path, "")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func Test_InventoryAPI_DeleteFlow(t *testing.T) {
	// given
	api := newTestAPI(t, store.NewInMemoryStore())
	api.create("Banana", "1", "1")

	// when
	rec := api.do(http.MethodPost, "/items/1/delete", "")

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	pending := api.screen(rec).PendingDelete
	require.NotNil(t, pending)
	assert.Equal(t, "Banana", pending.Name)

	// when
	rec = api.do(http.MethodPost, "/delete/cancel", "")

	// then
	assert.Nil(t, api.screen(rec).PendingDelete)
	assert.Len(t, api.ctrl.Items(), 1)

	// when
	api.do(http.MethodPost, "/items/1/delete", "")
	rec = api.do(http.MethodPost, "/delete/confirm", "")

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, api.screen(rec).Items)
}

func Test_InventoryAPI_StorageFailures(t *testing.T) {
	// given
	mem := store.NewInMemoryStore()
	require.NoError(t, mem.Insert(context.Background(), "Banana", 1, 1))
	api := newTestAPI(t, failingStore{ProductStore: mem})

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/items/1/delete", "").Code)

	// when
	api.do(http.MethodPut, "/form", `{"name":"Uva","price":"1","quantity":"1"}`)
	saveRec := api.do(http.MethodPost, "/save", "")
	deleteRec := api.do(http.MethodPost, "/delete/confirm", "")

	// then
	for _, rec := range []*httptest.ResponseRecorder{saveRec, deleteRec} {
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Storage is unavailable, please try again", body.Error)
	}
	screen := api.screen(api.do(http.MethodGet, "/", ""))
	assert.Equal(t, "Uva", screen.Form.Name)
	assert.Len(t, screen.Items, 1)
	require.NotNil(t, screen.PendingDelete)
	assert.Equal(t, "Banana", screen.PendingDelete.Name)
	assert.Equal(t, []controller.Notice{
		{Level: controller.LevelError, Message: "Could not save the product. Please try again."},
		{Level: controller.LevelError, Message: "Could not delete the product. Please try again."},
	}, screen.Notices)
}

func Test_InventoryAPI_HealthCheck(t *testing.T) {
	api := newTestAPI(t, store.NewInMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
