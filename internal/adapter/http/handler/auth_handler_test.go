package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/core/model/response"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerSuite struct {
	suite.Suite
	Router *gin.Engine
}

func (s *AuthHandlerSuite) SetupTest() {
	s.Router = setupTestRouter()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) TestCsrfTokenIssuesSessionAndToken() {
	client := newAPIClient(s.Router)

	rr := client.FetchCsrfToken()

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)
	data := response.CsrfTokenResponse{}
	json.Unmarshal(body, &data)

	Expect(data.CsrfTokenHeaderName).To(Equal(middleware.CSRFTokenHeaderName))
	Expect(client.csrfToken).ToNot(BeEmpty())
	Expect(client.cookie).ToNot(BeNil())
	Expect(client.cookie.Name).To(Equal(middleware.SessionCookieName))
	Expect(client.cookie.HttpOnly).To(BeTrue())
}

func (s *AuthHandlerSuite) TestCsrfTokenIsStablePerSession() {
	client := newAPIClient(s.Router)

	client.FetchCsrfToken()
	first := client.csrfToken

	client.FetchCsrfToken()

	Expect(client.csrfToken).To(Equal(first))
}

func (s *AuthHandlerSuite) TestSignupSuccess() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()

	rr := client.Signup("alice", "pass1234")

	Expect(rr.Code).To(Equal(http.StatusNoContent))
}

func (s *AuthHandlerSuite) TestSignupWithoutCsrfToken() {
	client := newAPIClient(s.Router)

	rr := client.Signup("alice", "pass1234")

	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *AuthHandlerSuite) TestSignupWithWrongCsrfToken() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()
	client.csrfToken = "forged-token"

	rr := client.Signup("alice", "pass1234")

	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *AuthHandlerSuite) TestSignupDuplicateName() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()

	Expect(client.Signup("alice", "pass1234").Code).To(Equal(http.StatusNoContent))

	rr := client.Signup("alice", "otherpass")

	Expect(rr.Code).To(Equal(http.StatusConflict))

	data := decodeError(rr)

	Expect(data.Error.Code).To(Equal("CONFLICT"))
}

func (s *AuthHandlerSuite) TestSignupValidationError() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()

	rr := client.do("POST", "/api/signup", `{"userName": "alice"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	data := decodeError(rr)

	Expect(data.Error.Code).To(Equal("VALIDATION_ERROR"))
	Expect(len(data.Error.Errors)).To(BeNumerically(">", 0))
}

func (s *AuthHandlerSuite) TestLoginRotatesSession() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()

	Expect(client.Signup("alice", "pass1234").Code).To(Equal(http.StatusNoContent))

	before := client.cookie.Value

	rr := client.Login("alice", "pass1234")

	Expect(rr.Code).To(Equal(http.StatusNoContent))
	Expect(client.cookie.Value).ToNot(Equal(before))
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()

	Expect(client.Signup("alice", "pass1234").Code).To(Equal(http.StatusNoContent))

	rr := client.Login("alice", "wrongpass")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	data := decodeError(rr)

	Expect(data.Error.Errors[0].Message).To(Equal("Invalid user name or password"))
}

func (s *AuthHandlerSuite) TestLoginUnknownUserLooksLikeWrongPassword() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()

	rr := client.Login("nobody", "pass1234")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	data := decodeError(rr)

	Expect(data.Error.Errors[0].Message).To(Equal("Invalid user name or password"))
}

func (s *AuthHandlerSuite) TestLogoutEndsSession() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	Expect(client.do("GET", "/api/todos", "").Code).To(Equal(http.StatusOK))

	rr := client.do("POST", "/api/logout", "")

	Expect(rr.Code).To(Equal(http.StatusNoContent))

	// the session is gone server side, so the old cookie no longer works
	Expect(client.do("GET", "/api/todos", "").Code).To(Equal(http.StatusForbidden))
}
