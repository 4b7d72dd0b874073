package delivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog_service/internal/repository"
	"catalog_service/internal/storetest"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageBody struct {
	Content []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	Empty         bool  `json:"empty"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := storetest.Logger()
	gormDB := storetest.Open(t, true)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)

	store := repository.NewGormStore(gormDB, log)
	return NewRouter(log, NewMetrics(prometheus.NewRegistry()),
		NewProductHandler(usecase.NewProductUseCase(store, log), log),
		NewCategoryHandler(usecase.NewCategoryUseCase(store, log), log),
		NewHealthHandler(sqlDB, log),
	)
}

func perform(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validProduct = `{
	"name": "Phone Plus",
	"description": "Good phone",
	"price": 800.0,
	"imgUrl": "https://img.example.com/phone.jpg",
	"date": "2020-07-20T10:00:00Z",
	"categories": [{"id": 2}]
}`

func TestProductHandler_ListProducts(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantLen    int
		wantFirst  string
		wantSize   int
	}{
		{"first page", "/products?page=0&size=10", http.StatusOK, 10, "The Lord of the Rings", 10},
		{"defaults", "/products", http.StatusOK, 20, "The Lord of the Rings", 20},
		{"size capped", "/products?size=500", http.StatusOK, 25, "The Lord of the Rings", 100},
		{"invalid numbers fall back", "/products?page=x&size=-4", http.StatusOK, 20, "The Lord of the Rings", 20},
		{"beyond the data", "/products?page=50&size=10", http.StatusOK, 0, "", 10},
		{"huge page index", "/products?page=1152921504606846976&size=16", http.StatusOK, 0, "", 16},
		{"wildcard name filter", "/products?name=%25", http.StatusOK, 0, "", 20},
		{"sorted by name", "/products?page=0&size=3&sort=name,asc", http.StatusOK, 3, "Macbook Pro", 3},
		{"sorted by two properties", "/products?size=1&sort=price,desc&sort=name", http.StatusOK, 1, "PC Gamer Foo", 1},
		{"name filter", "/products?name=macbook", http.StatusOK, 1, "Macbook Pro", 20},
		{"category filter", "/products?categoryId=1", http.StatusOK, 2, "The Lord of the Rings", 20},
		{"unknown sort property", "/products?sort=stock", http.StatusBadRequest, 0, "", 0},
		{"unknown sort direction", "/products?sort=name,up", http.StatusBadRequest, 0, "", 0},
		{"invalid category filter", "/products?categoryId=abc", http.StatusBadRequest, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, http.MethodGet, tt.target, "")

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			var page pageBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
			assert.Equal(t, tt.wantSize, page.Size)
			require.Len(t, page.Content, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page.Content[0].Name)
			} else {
				assert.True(t, page.Empty)
			}
		})
	}
}

func TestProductHandler_GetProductByID(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/products/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"Status"`, "resources are returned without the envelope")
	var product struct {
		Name       string `json:"name"`
		Categories []struct {
			ID int64 `json:"id"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Smart TV", product.Name)
	assert.Len(t, product.Categories, 2)

	w = perform(router, http.MethodGet, "/products/1000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"Status":"Fail"`)

	w = perform(router, http.MethodGet, "/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_CreateProduct(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPost, "/products", validProduct)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/products/26", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestProductHandler_CreateProductValidation(t *testing.T) {
	router := newTestRouter(t)
	body := strings.Replace(validProduct, `"price": 800.0`, `"price": -1`, 1)
	body = strings.Replace(body, `"name": "Phone Plus"`, `"name": ""`, 1)

	w := perform(router, http.MethodPost, "/products", body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Fail", resp.Status)
	fields := map[string]string{}
	for _, f := range resp.Errors {
		fields[f.Field] = f.Error
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be positive", fields["price"])
}

func TestProductHandler_CreateProductMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPost, "/products", `{"name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_CreateProductUnknownCategory(t *testing.T) {
	router := newTestRouter(t)
	body := strings.Replace(validProduct, `[{"id": 2}]`, `[{"id": 77}]`, 1)

	w := perform(router, http.MethodPost, "/products", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPut, "/products/1", validProduct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = perform(router, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Phone Plus"`)

	w = perform(router, http.MethodPut, "/products/1000", validProduct)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodDelete, "/products/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = perform(router, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(router, http.MethodDelete, "/products/1000", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Fail", resp.Status)
	assert.Contains(t, resp.Message, "Id not found 1000")

	w = perform(router, http.MethodGet, "/products?size=1", "")
	var page pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(24), page.TotalElements)
}

func TestCategoryHandler(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/categories?sort=name", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Content, 3)
	assert.Equal(t, "Computadores", page.Content[0].Name)

	w = perform(router, http.MethodPost, "/categories", `{"name":"Games"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/categories/4", w.Header().Get("Location"))

	w = perform(router, http.MethodPost, "/categories", `{"name":"Livros"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(router, http.MethodPut, "/categories/4", `{"name":"Video Games"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Video Games"`)

	w = perform(router, http.MethodDelete, "/categories/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodDelete, "/categories/4", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = perform(router, http.MethodGet, "/categories/4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Status":"Success"`)

	perform(router, http.MethodGet, "/products/1", "")
	w = perform(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `catalog_http_requests_total{method="GET",route="/products/:id",status="200"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/orders", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMapErrorToStatus(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, mapErrorToStatus(assert.AnError))
}
