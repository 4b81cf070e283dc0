package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"bookfans/internal/models"
	"bookfans/internal/service"
	"bookfans/internal/validation"
)

func TestUsers_CreateListGet(t *testing.T) {
	users := &mockUsers{
		created: models.User{ID: 1, Username: "rei", PasswordHash: "digest"},
		got:     models.User{ID: 1, Username: "rei"},
		list:    []models.User{{ID: 1, Username: "rei"}},
	}
	r := newTestRouter(&service.Service{Users: users})

	w := doRequest(t, r, http.MethodPost, "/api/users/", `{"username":"rei","password":"secret1"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "digest") || strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", w.Body.String())
	}
	if users.lastIn.Username != "rei" || users.lastIn.Password != "secret1" {
		t.Fatalf("payload not forwarded: %+v", users.lastIn)
	}

	w = doRequest(t, r, http.MethodGet, "/api/users/?skip=5&limit=10", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	if users.lastPage != (service.Page{Skip: 5, Limit: 10}) {
		t.Fatalf("page = %+v", users.lastPage)
	}
	var list []models.User
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("unexpected list: %s", w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/api/users/1", "", nil)
	if w.Code != http.StatusOK || users.lastID != 1 {
		t.Fatalf("get status=%d id=%d", w.Code, users.lastID)
	}
}

func TestUsers_DefaultPage(t *testing.T) {
	users := &mockUsers{}
	r := newTestRouter(&service.Service{Users: users}, WithPagination(25, 50))

	if w := doRequest(t, r, http.MethodGet, "/api/users/", "", nil); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if users.lastPage != (service.Page{Skip: 0, Limit: 25}) {
		t.Fatalf("page = %+v", users.lastPage)
	}

	for _, q := range []string{"?limit=51", "?limit=0", "?skip=-1", "?limit=abc"} {
		if w := doRequest(t, r, http.MethodGet, "/api/users/"+q, "", nil); w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: status=%d want 422", q, w.Code)
		}
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"conflict", &service.ConflictError{Field: "username", Message: "username already registered"}, http.StatusBadRequest, "username already registered"},
		{"not found", &service.NotFoundError{Resource: "user", ID: 9}, http.StatusNotFound, "user not found"},
		{"validation", validation.Errors{{Field: "username", Message: "must be between 3 and 50 characters"}}, http.StatusUnprocessableEntity, `"field":"username"`},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Users: &mockUsers{err: tc.err}})
			w := doRequest(t, r, http.MethodPost, "/api/users/", `{"username":"rei","password":"secret1"}`, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tc.wantBody) {
				t.Fatalf("body %s does not contain %q", w.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestBindJSON_RequiredFieldsAre422(t *testing.T) {
	users := &mockUsers{}
	r := newTestRouter(&service.Service{Users: users})

	w := doRequest(t, r, http.MethodPost, "/api/users/", `{"username":"rei"}`, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d want 422 body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"field":"password"`) {
		t.Fatalf("expected json field name in body: %s", w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/api/users/", `not json`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", w.Code)
	}
}

func TestUsers_Me(t *testing.T) {
	auth := &mockAuth{user: models.User{ID: 7, Username: "rei"}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(t, r, http.MethodGet, "/api/users/me", "", authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var u models.User
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if u.ID != 7 || u.Username != "rei" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if w := doRequest(t, r, http.MethodGet, "/api/users/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token=%d want 401", w.Code)
	}
}

func TestBooks(t *testing.T) {
	books := &mockBooks{
		created: models.Book{ID: 3, Title: "Dune", Author: "Herbert"},
		got:     models.Book{ID: 3, Title: "Dune", Author: "Herbert"},
	}
	r := newTestRouter(&service.Service{Books: books})

	w := doRequest(t, r, http.MethodPost, "/api/books/", `{"title":"Dune","author":"Herbert","isbn":"978-1","category_id":2}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if books.lastIn.ISBN == nil || *books.lastIn.ISBN != "978-1" || books.lastIn.CategoryID == nil || *books.lastIn.CategoryID != 2 {
		t.Fatalf("payload not forwarded: %+v", books.lastIn)
	}

	if w := doRequest(t, r, http.MethodGet, "/api/books/3", "", nil); w.Code != http.StatusOK || books.lastID != 3 {
		t.Fatalf("get status=%d id=%d", w.Code, books.lastID)
	}
	if w := doRequest(t, r, http.MethodGet, "/api/books/abc", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("non-numeric id status=%d want 404", w.Code)
	}

	books.err = service.ErrCategoryNotFound
	w = doRequest(t, r, http.MethodPost, "/api/books/", `{"title":"X","author":"Y","category_id":99}`, nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "category not found") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestReviews(t *testing.T) {
	auth := &mockAuth{user: models.User{ID: 7, Username: "rei"}}
	reviews := &mockReviews{created: models.Review{ID: 1, Content: "classic", BookID: 3, UserID: 7}}
	r := newTestRouter(&service.Service{Authorization: auth, Reviews: reviews})

	w := doRequest(t, r, http.MethodPost, "/api/books/3/reviews", `{"content":"classic","rating":5}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous review status=%d want 401", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/api/books/3/reviews", `{"content":"classic","rating":5}`, authHeader("tok"))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if reviews.lastBookID != 3 || reviews.lastUserID != 7 {
		t.Fatalf("book/user not taken from route and token: %d/%d", reviews.lastBookID, reviews.lastUserID)
	}

	w = doRequest(t, r, http.MethodGet, "/api/books/3/reviews", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}

	reviews.err = &service.NotFoundError{Resource: "book", ID: 4}
	if w := doRequest(t, r, http.MethodGet, "/api/books/4/reviews", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing book status=%d want 404", w.Code)
	}
}

func TestCategories(t *testing.T) {
	cats := &mockCategories{
		created: models.Category{ID: 1, Name: "Sci-Fi"},
		got:     models.Category{ID: 1, Name: "Sci-Fi"},
		list:    []models.Category{{ID: 1, Name: "Sci-Fi"}},
	}
	r := newTestRouter(&service.Service{Categories: cats})

	if w := doRequest(t, r, http.MethodPost, "/api/categories/", `{"name":"Sci-Fi"}`, nil); w.Code != http.StatusCreated {
		t.Fatalf("create status=%d", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/api/categories/", "", nil); w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/api/categories/1", "", nil); w.Code != http.StatusOK {
		t.Fatalf("get status=%d", w.Code)
	}

	cats.err = &service.ConflictError{Field: "name", Message: "category name already exists"}
	w := doRequest(t, r, http.MethodPost, "/api/categories/", `{"name":"Sci-Fi"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status=%d want 400", w.Code)
	}
}

func TestStatsAndMeta(t *testing.T) {
	stats := &mockStats{stats: models.CatalogStats{Users: 2, Books: 5}}
	r := newTestRouter(&service.Service{Stats: stats})

	w := doRequest(t, r, http.MethodGet, "/api/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status=%d", w.Code)
	}
	var st models.CatalogStats
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if st.Users != 2 || st.Books != 5 {
		t.Fatalf("unexpected stats: %+v", st)
	}

	if w := doRequest(t, r, http.MethodGet, "/", "", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Welcome") {
		t.Fatalf("welcome status=%d body=%s", w.Code, w.Body.String())
	}
	if w := doRequest(t, r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}
