package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

const (
	LoginPagePath = "/auth/login-page"
	TodoPagePath  = "/todos/todo-page"
)

var pages = template.Must(template.New("pages").Parse(`
{{define "login"}}<!doctype html>
<html><head><title>Login</title></head><body>
<h1>Login</h1>
<form method="post" action="/auth/token">
<input name="username" placeholder="Username" required>
<input name="password" type="password" placeholder="Password" required>
<button type="submit">Login</button>
</form>
<p><a href="/auth/register-page">Register</a></p>
</body></html>{{end}}

{{define "register"}}<!doctype html>
<html><head><title>Register</title></head><body>
<h1>Register</h1>
<form method="post" action="/auth/">
<input name="username" placeholder="Username" required>
<input name="email" type="email" placeholder="Email">
<input name="first_name" placeholder="First name">
<input name="last_name" placeholder="Last name">
<input name="password" type="password" placeholder="Password" required>
<button type="submit">Register</button>
</form>
<p><a href="/auth/login-page">Login</a></p>
</body></html>{{end}}

{{define "todos"}}<!doctype html>
<html><head><title>Todos</title></head><body>
<h1>{{.Username}}'s todos</h1>
<table>
<tr><th>Title</th><th>Description</th><th>Priority</th><th>Done</th></tr>
{{range .Todos}}<tr><td>{{.Title}}</td><td>{{.Description}}</td><td>{{.Priority}}</td><td>{{if .Complete}}yes{{else}}no{{end}}</td></tr>
{{else}}<tr><td colspan="4">Nothing to do.</td></tr>
{{end}}</table>
<form method="post" action="/auth/logout"><button type="submit">Logout</button></form>
</body></html>{{end}}
`))

// PageHandler serves the minimal browser pages.
type PageHandler struct {
	todos ports.TodoService
}

func NewPageHandler(todos ports.TodoService) *PageHandler {
	return &PageHandler{todos: todos}
}

func (h *PageHandler) LoginPage(c echo.Context) error {
	return render(c, "login", nil)
}

func (h *PageHandler) RegisterPage(c echo.Context) error {
	return render(c, "register", nil)
}

// TodoPage lists the caller's todos. It runs behind PageAuth.
func (h *PageHandler) TodoPage(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	todos, err := h.todos.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return render(c, "todos", struct {
		Username string
		Todos    []*domain.Todo
	}{id.Username, todos})
}

// fromBrowserForm reports whether the request is an HTML form submission,
// which gets a redirect instead of a JSON body.
func fromBrowserForm(c echo.Context) bool {
	req := c.Request()
	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) &&
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

func render(c echo.Context, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
