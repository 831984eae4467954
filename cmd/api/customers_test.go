package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memCustomerRepo struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]domain.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[primitive.ObjectID]domain.Customer)}
}

func (m *memCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.customers[c.ID] = *c
	return nil
}

func (m *memCustomerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := c
	return &out, nil
}

func (m *memCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCustomerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCustomerRepo) ListActive(_ context.Context) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Customer
	for _, c := range m.customers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCustomerRepo) SearchByName(_ context.Context, fragment string) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Customer
	for _, c := range m.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(fragment)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	m.customers[c.ID] = *c
	return nil
}

func newTestApp(t *testing.T) (*application, http.Handler) {
	t.Helper()

	logger := zap.NewNop().Sugar()
	app := &application{
		config:          config{env: "test"},
		logger:          logger,
		customerService: service.NewCustomerService(newMemCustomerRepo(), nil, logger),
	}

	return app, app.mount()
}

func doRequest(t *testing.T, mux http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	return rr
}

func TestRegisterCustomerEndpoint(t *testing.T) {
	_, mux := newTestApp(t)

	rr := doRequest(t, mux, http.MethodPost, "/api/v1/customers", CustomerRequest{
		Name:    "Maria Oliveira",
		Phone:   "11988887777",
		Email:   "maria@email.com",
		Address: "Rua A, 123",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Data domain.Customer `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Data.Active)
	assert.False(t, resp.Data.ID.IsZero())
	assert.Equal(t, "maria@email.com", resp.Data.Email)
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	_, mux := newTestApp(t)

	body := CustomerRequest{
		Name:    "Maria Oliveira",
		Phone:   "11988887777",
		Email:   "maria@email.com",
		Address: "Rua A, 123",
	}

	rr := doRequest(t, mux, http.MethodPost, "/api/v1/customers", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, mux, http.MethodPost, "/api/v1/customers", body)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Email já cadastrado")
}

func TestRegisterCustomerRejectsBadPayload(t *testing.T) {
	_, mux := newTestApp(t)

	rr := doRequest(t, mux, http.MethodPost, "/api/v1/customers", CustomerRequest{
		Name:    "M",
		Phone:   "abc",
		Email:   "not-an-email",
		Address: "",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCustomerNotFound(t *testing.T) {
	_, mux := newTestApp(t)

	rr := doRequest(t, mux, http.MethodGet, "/api/v1/customers/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetCustomerRejectsMalformedID(t *testing.T) {
	_, mux := newTestApp(t)

	rr := doRequest(t, mux, http.MethodGet, "/api/v1/customers/not-a-hex-id", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeactivateCustomerEndpoint(t *testing.T) {
	_, mux := newTestApp(t)

	rr := doRequest(t, mux, http.MethodPost, "/api/v1/customers", CustomerRequest{
		Name:    "Maria Oliveira",
		Phone:   "11988887777",
		Email:   "maria@email.com",
		Address: "Rua A, 123",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Data domain.Customer `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	path := "/api/v1/customers/" + resp.Data.ID.Hex()

	rr = doRequest(t, mux, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// second soft delete fails, the customer is already inactive
	rr = doRequest(t, mux, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := bearerToken(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Basic abc")
	_, err = bearerToken(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Bearer token-123")
	token, err := bearerToken(req)
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
}
