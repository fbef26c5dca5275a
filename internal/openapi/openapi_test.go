package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBuilt(t *testing.T) *openapi3.T {
	t.Helper()
	data, err := json.Marshal(Build("1.0.0"))
	require.NoError(t, err)
	doc, err := openapi3.NewLoader().LoadFromData(data)
	require.NoError(t, err)
	return doc
}

func Test_Build_IsValid(t *testing.T) {
	// given
	doc := loadBuilt(t)

	// when
	err := doc.Validate(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, "Catalog API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
}

func Test_Build_DocumentsEveryRoute(t *testing.T) {
	doc := loadBuilt(t)
	testCases := []struct {
		path   string
		method string
		codes  []string
	}{
		{"/health", http.MethodGet, []string{"200"}},
		{"/api/users", http.MethodGet, []string{"200", "400"}},
		{"/api/users", http.MethodPost, []string{"201", "400"}},
		{"/api/users/active", http.MethodGet, []string{"200"}},
		{"/api/users/{id}", http.MethodGet, []string{"200", "400", "404"}},
		{"/api/users/{id}", http.MethodPut, []string{"200", "400", "404"}},
		{"/api/users/{id}", http.MethodPatch, []string{"200", "400", "404"}},
		{"/api/users/{id}", http.MethodDelete, []string{"204", "400", "404"}},
		{"/api/products", http.MethodGet, []string{"200", "400"}},
		{"/api/products", http.MethodPost, []string{"201", "400"}},
		{"/api/products/available", http.MethodGet, []string{"200"}},
		{"/api/products/{id}", http.MethodGet, []string{"200", "400", "404"}},
		{"/api/products/{id}", http.MethodPut, []string{"200", "400", "404"}},
		{"/api/products/{id}", http.MethodPatch, []string{"200", "400", "404"}},
		{"/api/products/{id}", http.MethodDelete, []string{"204", "400", "404"}},
		{"/api/products/{id}/stock", http.MethodPatch, []string{"200", "400", "404"}},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			// given
			item := doc.Paths.Value(tc.path)
			require.NotNil(t, item)
			// when
			op := item.GetOperation(tc.method)
			// then
			require.NotNil(t, op)
			codes := make([]string, 0, op.Responses.Len())
			for code := range op.Responses.Map() {
				codes = append(codes, code)
			}
			assert.ElementsMatch(t, tc.codes, codes)
		})
	}
}

func Test_Build_InputSchemas(t *testing.T) {
	// given
	doc := loadBuilt(t)

	// when
	productCreate := doc.Components.Schemas["ProductCreate"].Value
	stockUpdate := doc.Components.Schemas["StockUpdate"].Value

	// then
	assert.ElementsMatch(t, []string{"name", "description", "price", "stock", "category", "sku"}, productCreate.Required)
	assert.Len(t, productCreate.Properties["category"].Value.Enum, 7)
	assert.Equal(t, uint64(3), productCreate.Properties["sku"].Value.MinLength)
	assert.Equal(t, []string{"quantity"}, stockUpdate.Required)
}

func Test_Handlers(t *testing.T) {
	// given
	h, err := Handler(Build("test"))
	require.NoError(t, err)
	ui := UIHandler("Catalog API", "/api/openapi.json")

	// when
	specRec := httptest.NewRecorder()
	h.ServeHTTP(specRec, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	uiRec := httptest.NewRecorder()
	ui.ServeHTTP(uiRec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

	// then
	assert.Equal(t, "application/json", specRec.Header().Get("Content-Type"))
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(specRec.Body.Bytes(), &parsed))
	assert.Equal(t, "3.0.3", parsed["openapi"])
	assert.Contains(t, uiRec.Body.String(), "openapi.json")
	assert.Contains(t, uiRec.Body.String(), "SwaggerUIBundle")
}
