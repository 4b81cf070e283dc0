package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookfans/internal/models"
	"bookfans/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken service.AccessToken
	loginErr   error
	user       models.User
	resolveErr error

	lastLoginUsername string
	lastLoginPassword string
	lastResolveToken  string
}

func (m *mockAuth) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	return m.user, m.loginErr
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (service.AccessToken, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ResolveCurrentUser(ctx context.Context, token string) (models.User, error) {
	m.lastResolveToken = token
	return m.user, m.resolveErr
}

type mockUsers struct {
	created  models.User
	got      models.User
	list     []models.User
	err      error
	lastIn   models.UserCreate
	lastID   int
	lastPage service.Page
}

func (m *mockUsers) Register(ctx context.Context, in models.UserCreate) (models.User, error) {
	m.lastIn = in
	return m.created, m.err
}

func (m *mockUsers) Get(ctx context.Context, id int) (models.User, error) {
	m.lastID = id
	return m.got, m.err
}

func (m *mockUsers) List(ctx context.Context, p service.Page) ([]models.User, error) {
	m.lastPage = p
	return m.list, m.err
}

type mockBooks struct {
	created  models.Book
	got      models.Book
	list     []models.Book
	err      error
	lastIn   models.BookCreate
	lastID   int
	lastPage service.Page
}

func (m *mockBooks) Create(ctx context.Context, in models.BookCreate) (models.Book, error) {
	m.lastIn = in
	return m.created, m.err
}

func (m *mockBooks) Get(ctx context.Context, id int) (models.Book, error) {
	m.lastID = id
	return m.got, m.err
}

func (m *mockBooks) List(ctx context.Context, p service.Page) ([]models.Book, error) {
	m.lastPage = p
	return m.list, m.err
}

type mockCategories struct {
	created models.Category
	got     models.Category
	list    []models.Category
	err     error
}

func (m *mockCategories) Create(ctx context.Context, in models.CategoryCreate) (models.Category, error) {
	return m.created, m.err
}

func (m *mockCategories) Get(ctx context.Context, id int) (models.Category, error) {
	return m.got, m.err
}

func (m *mockCategories) List(ctx context.Context, p service.Page) ([]models.Category, error) {
	return m.list, m.err
}

type mockReviews struct {
	created    models.Review
	list       []models.Review
	err        error
	lastBookID int
	lastUserID int
}

func (m *mockReviews) Create(ctx context.Context, bookID, userID int, in models.ReviewCreate) (models.Review, error) {
	m.lastBookID = bookID
	m.lastUserID = userID
	return m.created, m.err
}

func (m *mockReviews) ListByBook(ctx context.Context, bookID int, p service.Page) ([]models.Review, error) {
	m.lastBookID = bookID
	return m.list, m.err
}

type mockActivity struct {
	resp   []models.ActivityEvent
	err    error
	lastF  service.ActivityFilter
	called int
}

func (m *mockActivity) List(ctx context.Context, f service.ActivityFilter) ([]models.ActivityEvent, error) {
	m.called++
	m.lastF = f
	return m.resp, m.err
}

type mockStats struct {
	stats models.CatalogStats
	err   error
}

func (m *mockStats) Snapshot(ctx context.Context) (models.CatalogStats, error) {
	return m.stats, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}

func doRequest(t *testing.T, r http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
