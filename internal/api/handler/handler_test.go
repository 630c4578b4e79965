package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

var alice = domain.Identity{Username: "alice", UserID: 1, Role: domain.RoleUser, TokenID: "jti-1"}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.AccessToken, error)
	logoutFn   func(ctx context.Context, id domain.Identity) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.AccessToken, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, id domain.Identity) error {
	return s.logoutFn(ctx, id)
}

type stubTodoService struct {
	todos  []*domain.Todo
	err    error
	lastIn ports.TodoInput
	lastID uint64
	calls  int
}

func (s *stubTodoService) List(context.Context, domain.Identity) ([]*domain.Todo, error) {
	s.calls++
	return s.todos, s.err
}

func (s *stubTodoService) Get(_ context.Context, _ domain.Identity, todoID uint64) (*domain.Todo, error) {
	s.calls++
	s.lastID = todoID
	if s.err != nil {
		return nil, s.err
	}
	return s.todos[0], nil
}

func (s *stubTodoService) Create(_ context.Context, id domain.Identity, in ports.TodoInput) (*domain.Todo, error) {
	s.calls++
	s.lastIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Todo{ID: 10, Title: in.Title, Description: in.Description, Priority: in.Priority, Complete: in.Complete, OwnerID: id.UserID}, nil
}

func (s *stubTodoService) Update(_ context.Context, _ domain.Identity, todoID uint64, in ports.TodoInput) error {
	s.calls++
	s.lastID = todoID
	s.lastIn = in
	return s.err
}

func (s *stubTodoService) Delete(_ context.Context, _ domain.Identity, todoID uint64) error {
	s.calls++
	s.lastID = todoID
	return s.err
}

func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}

// --- Auth ---

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Password != "s3cret!" || in.Email != "a@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, Username: in.Username, Role: domain.RoleUser, PasswordHash: "hash", IsActive: true}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/auth/", `{"username":"alice","password":"s3cret!","email":"a@example.com"}`, nil)

	if err := NewAuthHandler(stub, false).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_MissingPassword(t *testing.T) {
	stub := &stubAuthService{registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}}
	c, _ := newContext(http.MethodPost, "/auth/", `{"username":"alice"}`, nil)

	err := NewAuthHandler(stub, false).Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "password is required") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAuthHandler_Register_BadJSON(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/auth/", `{"username":`, nil)

	err := NewAuthHandler(&stubAuthService{}, false).Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Form(t *testing.T) {
	expires := time.Now().Add(30 * time.Minute)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.AccessToken, error) {
			if username != "alice" || password != "s3cret!" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &ports.AccessToken{Token: "tok", TokenType: "bearer", ExpiresAt: expires}, nil
		},
	}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("username=alice&password=s3cret%21"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewAuthHandler(stub, false).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "tok" || resp.TokenType != "bearer" || resp.ExpiresIn <= 0 {
		t.Fatalf("unexpected token response: %+v", resp)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.AccessTokenCookie {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value != "tok" || !cookie.HttpOnly {
		t.Fatalf("access token cookie not set: %+v", cookie)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AccessToken, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/token", `{"username":"alice","password":"nope"}`, nil)

	if err := NewAuthHandler(stub, false).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var got domain.Identity
	stub := &stubAuthService{logoutFn: func(_ context.Context, id domain.Identity) error {
		got = id
		return nil
	}}
	c, rec := newContext(http.MethodPost, "/auth/logout", "", &alice)

	if err := NewAuthHandler(stub, false).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got.TokenID != "jti-1" {
		t.Fatalf("logout called with %+v", got)
	}
}

// --- Todos ---

func TestTodoHandler_Create(t *testing.T) {
	stub := &stubTodoService{}
	c, rec := newContext(http.MethodPost, "/todos/todo", `{"title":"Buy milk","description":"Two litres","priority":3,"is_complete":true}`, &alice)

	if err := NewTodoHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !stub.lastIn.Complete || stub.lastIn.Priority != 3 {
		t.Fatalf("unexpected input: %+v", stub.lastIn)
	}

	var todo domain.Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &todo); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if todo.OwnerID != alice.UserID {
		t.Fatalf("unexpected owner: %d", todo.OwnerID)
	}
}

func TestTodoHandler_Create_InvalidPriority(t *testing.T) {
	for _, priority := range []string{"0", "6"} {
		t.Run("priority "+priority, func(t *testing.T) {
			stub := &stubTodoService{}
			c, _ := newContext(http.MethodPost, "/todos/todo", `{"title":"Buy milk","description":"Two litres","priority":`+priority+`}`, &alice)

			err := NewTodoHandler(stub).Create(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if stub.calls != 0 {
				t.Fatalf("service must not be called")
			}
		})
	}
}

func TestTodoHandler_Get_InvalidID(t *testing.T) {
	for _, raw := range []string{"0", "abc", "-1"} {
		t.Run(raw, func(t *testing.T) {
			stub := &stubTodoService{}
			c, _ := newContext(http.MethodGet, "/todos/todo/"+raw, "", &alice)
			c.SetParamNames("id")
			c.SetParamValues(raw)

			if err := NewTodoHandler(stub).Get(c); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if stub.calls != 0 {
				t.Fatalf("service must not be called")
			}
		})
	}
}

func TestTodoHandler_Get_NotFound(t *testing.T) {
	stub := &stubTodoService{err: domain.ErrTodoNotFound}
	c, _ := newContext(http.MethodGet, "/todos/todo/7", "", &alice)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := NewTodoHandler(stub).Get(c); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
	if stub.lastID != 7 {
		t.Fatalf("expected id 7, got %d", stub.lastID)
	}
}

func TestTodoHandler_Update(t *testing.T) {
	stub := &stubTodoService{}
	c, rec := newContext(http.MethodPut, "/todos/todo/4", `{"title":"Buy bread","description":"Sourdough","priority":5,"is_complete":false}`, &alice)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := NewTodoHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.lastID != 4 || stub.lastIn.Title != "Buy bread" {
		t.Fatalf("unexpected call: %d %+v", stub.lastID, stub.lastIn)
	}
}

func TestTodoHandler_List_RequiresIdentity(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/todos/", "", nil)

	if err := NewTodoHandler(&stubTodoService{}).List(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestPageHandler_TodoPage(t *testing.T) {
	stub := &stubTodoService{todos: []*domain.Todo{{ID: 1, Title: "<script>x</script>", Description: "desc", Priority: 2, OwnerID: 1}}}
	c, rec := newContext(http.MethodGet, "/todos/todo-page", "", &alice)

	if err := NewPageHandler(stub).TodoPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alice") || strings.Contains(body, "<script>x") {
		t.Fatalf("unexpected page: %s", body)
	}
}

func newFormContext(target, form string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml,*/*;q=0.8")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}

func TestAuthHandler_BrowserFormsRedirect(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "zoe" || in.Password != "Hunter2Secret" || in.FirstName != "Zoe" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 2, Username: in.Username, Role: domain.RoleUser}, nil
		},
		loginFn: func(context.Context, string, string) (*ports.AccessToken, error) {
			return &ports.AccessToken{Token: "tok", TokenType: "bearer", ExpiresAt: time.Now().Add(time.Minute)}, nil
		},
		logoutFn: func(context.Context, domain.Identity) error { return nil },
	}
	h := NewAuthHandler(stub, false)

	for _, tc := range []struct {
		name     string
		target   string
		form     string
		id       *domain.Identity
		call     func(echo.Context) error
		location string
	}{
		{"register", "/auth/", "username=zoe&first_name=Zoe&password=Hunter2Secret", nil, h.Register, LoginPagePath},
		{"login", "/auth/token", "username=zoe&password=Hunter2Secret", nil, h.Login, TodoPagePath},
		{"logout", "/auth/logout", "", &alice, h.Logout, LoginPagePath},
	} {
		c, rec := newFormContext(tc.target, tc.form, tc.id)
		if err := tc.call(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != tc.location {
			t.Fatalf("%s: expected 303 to %s, got %d %q", tc.name, tc.location, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}
}

func TestAuthHandler_Register_PasswordOverByteLimit(t *testing.T) {
	stub := &stubAuthService{registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}}
	body := `{"username":"alice","password":"` + strings.Repeat("é", 40) + `"}`
	c, _ := newContext(http.MethodPost, "/auth/", body, nil)

	err := NewAuthHandler(stub, false).Register(c)
	if !errors.Is(err, domain.ErrValidation) || !strings.Contains(err.Error(), "password must be at most 72 bytes") {
		t.Fatalf("expected byte limit error, got %v", err)
	}
}

func TestPageHandler_RegisterFormPosts(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/auth/register-page", "", nil)

	if err := NewPageHandler(&stubTodoService{}).RegisterPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `<form method="post" action="/auth/">`) {
		t.Fatalf("register form must post to /auth/: %s", rec.Body.String())
	}
}
