package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooyyss26/product-api/models"
	"github.com/ooyyss26/product-api/repository"
	"github.com/ooyyss26/product-api/service"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]models.Product
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]models.Product{}}
}

func (f *fakeRepo) Create(_ context.Context, name string, price float64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.items[f.nextID] = models.Product{ID: f.nextID, Name: name, Price: price}
	return f.nextID, nil
}

func (f *fakeRepo) List(_ context.Context, search string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]int64, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products := []models.Product{}
	for _, id := range ids {
		p := f.items[id]
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return models.Product{}, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, name string, price float64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return repository.ErrProductNotFound
	}
	f.items[id] = models.Product{ID: id, Name: name, Price: price}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.items, id)
	return nil
}

func newTestServer(t *testing.T) (*gin.Engine, *fakeRepo, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeRepo()
	tokens := service.NewTokenService("test-secret")
	products := service.NewProductService(repo)

	r := gin.New()
	NewAuthController(tokens, "admin", "admin").Register(r)
	NewProductController(products, tokens).Register(r)

	token, err := tokens.Issue("admin")
	require.NoError(t, err)
	return r, repo, token
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), "body: %s", rec.Body.String())
	return m
}

func TestLoginIssuesUsableToken(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := do(r, http.MethodPost, "/login", "", `{"username":"admin","password":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	token, ok := body["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	rec = do(r, http.MethodGet, "/products", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsInvalidCredentials(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := do(r, http.MethodPost, "/login", "", `{"username":"admin","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["error"])
}

func TestLoginMissingFieldsRejectedAsInvalid(t *testing.T) {
	r, _, _ := newTestServer(t)

	for _, body := range []string{`{}`, `{"username":"admin"}`, `{"password":"admin"}`} {
		rec := do(r, http.MethodPost, "/login", "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "body: %s", body)
		assert.Equal(t, "Invalid credentials", decode(t, rec)["error"])
	}
}

func TestProductsRequireAuth(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := do(r, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing or invalid token", decode(t, rec)["error"])

	rec = do(r, http.MethodGet, "/products", "tampered-token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decode(t, rec)["error"])
}

func TestInvalidFormatRejected(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodGet, "/products?format=bogus", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Invalid format. Use json or xml", decode(t, rec)["error"])
}

func TestCreateThenGetMatches(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodPost, "/products", token, `{"name":"Test Product","price":99.99}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Product created", body["message"])
	id, ok := body["id"].(float64)
	require.True(t, ok)

	rec = do(r, http.MethodGet, "/products/"+strconv.Itoa(int(id)), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode(t, rec)
	assert.Equal(t, "Test Product", got["name"])
	assert.Equal(t, 99.99, got["price"])
	assert.Equal(t, id, got["id"])
}

func TestCreateValidationFailure(t *testing.T) {
	r, repo, token := newTestServer(t)

	rec := do(r, http.MethodPost, "/products", token, `{"name":"","price":-10}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["error"])
	details, ok := body["details"].([]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(details), 2)

	// the pipeline never reached the store
	assert.Empty(t, repo.items)
}

func TestCreateBodyRequired(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodPost, "/products", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "JSON data required", decode(t, rec)["error"])

	rec = do(r, http.MethodPost, "/products", token, "not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "JSON data required", decode(t, rec)["error"])
}

func TestGetMissingProduct(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodGet, "/products/9999", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])
}

func TestNonIntegerIDAnswersNotFound(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodGet, "/products/abc", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])
}

func TestUpdateProduct(t *testing.T) {
	r, repo, token := newTestServer(t)

	rec := do(r, http.MethodPost, "/products", token, `{"name":"Old","price":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodPut, "/products/1", token, `{"name":"New","price":2.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product updated", decode(t, rec)["message"])
	assert.Equal(t, models.Product{ID: 1, Name: "New", Price: 2.5}, repo.items[1])

	rec = do(r, http.MethodPut, "/products/42", token, `{"name":"New","price":2.5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])
}

func TestDeleteSecondTimeNotFound(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodPost, "/products", token, `{"name":"Doomed","price":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodDelete, "/products/1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted", decode(t, rec)["message"])

	rec = do(r, http.MethodDelete, "/products/1", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])
}

func TestListAndSearch(t *testing.T) {
	r, _, token := newTestServer(t)

	for _, body := range []string{
		`{"name":"Laptop","price":899.99}`,
		`{"name":"Wireless Mouse","price":24.5}`,
		`{"name":"Laptop Stand","price":35}`,
	} {
		rec := do(r, http.MethodPost, "/products", token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(r, http.MethodGet, "/products", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode(t, rec)["products"].([]any)
	assert.Len(t, products, 3)

	rec = do(r, http.MethodGet, "/products?search=laptop", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	products = decode(t, rec)["products"].([]any)
	require.Len(t, products, 2)
	first := products[0].(map[string]any)
	assert.Equal(t, "Laptop", first["name"])
}

func TestListRendersXML(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodPost, "/products", token, `{"name":"Laptop","price":899.99}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodGet, "/products?format=xml", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))

	type xmlProduct struct {
		ID    int64   `xml:"id"`
		Name  string  `xml:"name"`
		Price float64 `xml:"price"`
	}
	var parsed struct {
		XMLName  xml.Name     `xml:"response"`
		Products []xmlProduct `xml:"products>item"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &parsed))
	require.Len(t, parsed.Products, 1)
	assert.Equal(t, xmlProduct{ID: 1, Name: "Laptop", Price: 899.99}, parsed.Products[0])
}

func TestErrorsRenderInNegotiatedFormat(t *testing.T) {
	r, _, token := newTestServer(t)

	rec := do(r, http.MethodGet, "/products/9999?format=xml", token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<response><error>Product not found</error></response>", rec.Body.String())
}

func TestStoreFailureAnswers500(t *testing.T) {
	r, repo, token := newTestServer(t)
	repo.err = assert.AnError

	rec := do(r, http.MethodGet, "/products", token, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Database error", body["error"])
	assert.Equal(t, assert.AnError.Error(), body["details"])
}
