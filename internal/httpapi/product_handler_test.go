package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuscart/campuscart/internal/catalog/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductRouter(repo *mockProductRepository) chi.Router {
	handler := NewProductHandler(repo, 5*time.Second)

	r := chi.NewRouter()
	r.Get("/products", handler.List)
	r.Get("/products/featured", handler.ListFeatured)
	r.Get("/products/{id}", handler.Get)
	r.Post("/products", handler.Create)
	r.Put("/products/{id}", handler.Update)
	r.Delete("/products/{id}", handler.Delete)
	return r
}

func TestListProducts_Success(t *testing.T) {
	repo := newMockProductRepository(
		catalogProduct("p1", "Calculus Textbook", "75.00"),
		catalogProduct("p2", "MacBook Pro", "850.00"),
	)
	router := newProductRouter(repo)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp ProductsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Len(t, resp.Products, 2)
}

func TestListProducts_UnknownCategoryReturns400(t *testing.T) {
	router := newProductRouter(newMockProductRepository())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products?category=vehicles", nil))

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "invalid_filter", resp.Code)
}

func TestListProducts_UnknownSortReturns400(t *testing.T) {
	router := newProductRouter(newMockProductRepository())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products?sort=alphabetical", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListProducts_BadPriceReturns400(t *testing.T) {
	router := newProductRouter(newMockProductRepository())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products?min_price=abc", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetProduct_BumpsViewCounter(t *testing.T) {
	repo := newMockProductRepository(catalogProduct("p1", "Calculus Textbook", "75.00"))
	router := newProductRouter(repo)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products/p1", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var p domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&p))
	assert.Equal(t, int64(1), p.Views)
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newProductRouter(newMockProductRepository())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products/ghost", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateProduct_Success(t *testing.T) {
	repo := newMockProductRepository()
	router := newProductRouter(repo)

	body := bytes.NewBufferString(`{
		"title": "Mini Fridge",
		"description": "Compact fridge for dorms",
		"price": "90.00",
		"category": "dorm-supplies",
		"condition": "good",
		"seller_id": "user-7",
		"seller_name": "Chris Park",
		"location": "South Dorms",
		"tags": ["fridge", "dorm"]
	}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/products", body))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var p domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Mini Fridge", p.Title)
	assert.Equal(t, domain.CategoryDormSupplies, p.Category)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreateProduct_RejectsUnknownEnums(t *testing.T) {
	router := newProductRouter(newMockProductRepository())

	for name, body := range map[string]string{
		"category":  `{"title":"X","price":"1.00","category":"vehicles","condition":"good"}`,
		"condition": `{"title":"X","price":"1.00","category":"other","condition":"mint"}`,
		"price":     `{"title":"X","price":"-5","category":"other","condition":"good"}`,
		"title":     `{"title":"","price":"1.00","category":"other","condition":"good"}`,
	} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("POST", "/products", bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "bad %s should be rejected", name)
	}
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := newMockProductRepository(catalogProduct("p1", "Calculus Textbook", "75.00"))
	router := newProductRouter(repo)

	body := bytes.NewBufferString(`{"price":"60.00","is_featured":true}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/products/p1", body))

	require.Equal(t, http.StatusOK, recorder.Code)

	var p domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&p))
	assert.Equal(t, "Calculus Textbook", p.Title) // untouched
	assert.Equal(t, "60", p.Price.String())
	assert.True(t, p.IsFeatured)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	router := newProductRouter(newMockProductRepository())

	body := bytes.NewBufferString(`{"price":"60.00"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("PUT", "/products/ghost", body))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteProduct(t *testing.T) {
	repo := newMockProductRepository(catalogProduct("p1", "Calculus Textbook", "75.00"))
	router := newProductRouter(repo)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/products/p1", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products/p1", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListFeatured_OnlyFeatured(t *testing.T) {
	featured := catalogProduct("p1", "Calculus Textbook", "75.00")
	featured.IsFeatured = true
	repo := newMockProductRepository(featured, catalogProduct("p2", "MacBook Pro", "850.00"))
	router := newProductRouter(repo)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/products/featured", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp ProductsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "p1", resp.Products[0].ID)
}
