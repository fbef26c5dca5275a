package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/catalog/internal/service"
	"github.com/abgdnv/catalog/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestRouter mounts the handlers the way the application does.
func newTestRouter(users service.UserService, products service.ProductService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		if users != nil {
			NewUserHandler(users, discard).RegisterRoutes(r)
		}
		if products != nil {
			NewProductHandler(products, discard).RegisterRoutes(r)
		}
	})
	return r
}

// newInMemoryRouter wires handlers to services backed by fresh stores.
func newInMemoryRouter() http.Handler {
	observer := service.NewObserver(nil, nil, discard)
	return newTestRouter(
		service.NewUserService(store.NewUserStore(), observer),
		service.NewProductService(store.NewProductStore(), observer),
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func mustCreate[T any](t *testing.T, h http.Handler, path, body string) T {
	t.Helper()
	rr := do(t, h, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())
	return decodeBody[T](t, rr)
}

// failingUsers fails every operation with err.
type failingUsers struct {
	err error
}

func (f failingUsers) FindAll(context.Context) ([]service.UserDto, error) { return nil, f.err }

func (f failingUsers) FindByRole(context.Context, store.Role) ([]service.UserDto, error) {
	return nil, f.err
}

func (f failingUsers) FindActive(context.Context) ([]service.UserDto, error) { return nil, f.err }

func (f failingUsers) FindByID(context.Context, uuid.UUID) (*service.UserDto, error) {
	return nil, f.err
}

func (f failingUsers) FindByEmail(context.Context, string) (*service.UserDto, error) {
	return nil, f.err
}

func (f failingUsers) Create(context.Context, service.UserCreateDto) (*service.UserDto, error) {
	return nil, f.err
}

func (f failingUsers) Update(context.Context, uuid.UUID, service.UserUpdateDto) (*service.UserDto, error) {
	return nil, f.err
}

func (f failingUsers) Delete(context.Context, uuid.UUID) error { return f.err }

// failingProducts fails every operation with err.
type failingProducts struct {
	err error
}

func (f failingProducts) FindAll(context.Context) ([]service.ProductDto, error) { return nil, f.err }

func (f failingProducts) FindByCategory(context.Context, store.Category) ([]service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) Search(context.Context, string) ([]service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) FindAvailable(context.Context) ([]service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) FindByID(context.Context, uuid.UUID) (*service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) FindBySku(context.Context, string) (*service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) Create(context.Context, service.ProductCreateDto) (*service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) Update(context.Context, uuid.UUID, service.ProductUpdateDto) (*service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) UpdateStock(context.Context, uuid.UUID, int) (*service.ProductDto, error) {
	return nil, f.err
}

func (f failingProducts) Delete(context.Context, uuid.UUID) error { return f.err }
