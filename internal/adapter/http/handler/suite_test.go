package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/adapter/session"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/service"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()

	accountRepo := repository.NewAccountRepository(db, nil)
	todoRepo := repository.NewTodoRepository(db, nil)

	registrationSvc := service.NewRegistrationService(accountRepo)
	authSvc := service.NewAuthService(accountRepo)
	todoSvc := service.NewTodoService(todoRepo, nil)

	sessions := session.NewMemoryStore(time.Minute)

	authHandler := handler.NewAuthHandler(registrationSvc, authSvc, sessions, time.Minute)
	todoHandler := handler.NewTodoHandler(todoSvc, nil)

	return routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler:  authHandler,
		TodoHandler:  todoHandler,
		SessionStore: sessions,
	})
}

// apiClient drives the API the way a browser would: it carries the session
// cookie and echoes the CSRF token back on state-changing requests.
type apiClient struct {
	router    *gin.Engine
	cookie    *http.Cookie
	csrfToken string
}

func newAPIClient(router *gin.Engine) *apiClient {
	return &apiClient{router: router}
}

func (c *apiClient) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	if c.csrfToken != "" {
		req.Header.Set(middleware.CSRFTokenHeaderName, c.csrfToken)
	}

	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			c.cookie = cookie
		}
	}

	return rr
}

// FetchCsrfToken primes the client with a session cookie and token.
func (c *apiClient) FetchCsrfToken() *httptest.ResponseRecorder {
	rr := c.do("GET", "/api/csrf_token", "")

	if rr.Code == http.StatusOK {
		var data response.CsrfTokenResponse

		body, _ := io.ReadAll(rr.Body)
		json.Unmarshal(body, &data)

		// put the body back so callers can read it again
		rr.Body = bytes.NewBuffer(body)

		c.csrfToken = data.CsrfTokenValue
	}

	return rr
}

func (c *apiClient) Signup(userName, password string) *httptest.ResponseRecorder {
	return c.do("POST", "/api/signup", `{"userName": "`+userName+`", "password": "`+password+`"}`)
}

func (c *apiClient) Login(userName, password string) *httptest.ResponseRecorder {
	return c.do("POST", "/api/login", `{"userName": "`+userName+`", "password": "`+password+`"}`)
}

// SignupAndLogin runs the whole pre-flight a fresh user needs before
// touching /api/todos.
func (c *apiClient) SignupAndLogin(userName, password string) {
	Expect(c.FetchCsrfToken().Code).To(Equal(http.StatusOK))
	Expect(c.Signup(userName, password).Code).To(Equal(http.StatusNoContent))
	Expect(c.Login(userName, password).Code).To(Equal(http.StatusNoContent))

	// login rotated the session, fetch the token bound to the new one
	Expect(c.FetchCsrfToken().Code).To(Equal(http.StatusOK))
}

func decodeTodo(rr *httptest.ResponseRecorder) response.TodoResponse {
	var todo response.TodoResponse

	body, _ := io.ReadAll(rr.Body)
	json.Unmarshal(body, &todo)

	return todo
}

func decodeTodos(rr *httptest.ResponseRecorder) []response.TodoResponse {
	var todos []response.TodoResponse

	body, _ := io.ReadAll(rr.Body)
	json.Unmarshal(body, &todos)

	return todos
}

func decodeError(rr *httptest.ResponseRecorder) response.ErrorResponse {
	var data response.ErrorResponse

	body, _ := io.ReadAll(rr.Body)
	json.Unmarshal(body, &data)

	return data
}
