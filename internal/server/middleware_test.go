package server

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"jobboard/internal/seed"
	"jobboard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFullApp returns the test server with the production middleware chain in front of the routes.
func newFullApp(t *testing.T) *testServer {
	t.Helper()
	ts := newTestServer(t, "")
	ts.app = ts.srv.NewApp()
	return ts
}

func csrfCookieFrom(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == csrfCookie {
			return c
		}
	}
	return nil
}

func TestCSRF_RejectsMissingToken(t *testing.T) {
	ts := newFullApp(t)

	resp := ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", loginValues("someone", "secret1"), ""))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode(t, resp)["code"])
}

func TestCSRF_AcceptsHeaderOrFormToken(t *testing.T) {
	ts := newFullApp(t)

	resp := ts.do(t, getRequest("/LoginPage/Login", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := csrfCookieFrom(resp)
	require.NotNil(t, cookie)
	token := decode(t, resp)["csrfToken"]
	require.Equal(t, cookie.Value, token)

	// Passing the check lands in the handler, which rejects the unknown user.
	req := formRequest(http.MethodPost, "/LoginPage/Login", loginValues("someone", "secret1"), "")
	req.AddCookie(cookie)
	req.Header.Set(csrfHeader, cookie.Value)
	resp = ts.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	values := loginValues("someone", "secret1")
	values.Set(csrfFormField, cookie.Value)
	req = formRequest(http.MethodPost, "/LoginPage/Login", values, "")
	req.AddCookie(cookie)
	resp = ts.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = formRequest(http.MethodPost, "/LoginPage/Login", loginValues("someone", "secret1"), "")
	req.AddCookie(cookie)
	req.Header.Set(csrfHeader, "forged")
	resp = ts.do(t, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCSRF_BearerClientsAreExempt(t *testing.T) {
	ts := newFullApp(t)
	ctx := context.Background()
	_, err := seed.EnsurePopulated(ctx, ts.db)
	require.NoError(t, err)

	result, err := ts.srv.accounts.RegisterEmployee(ctx, validation.EmployeeRegistration{
		FirstName:       "Ann",
		LastName:        "Tester",
		Email:           "ann@example.test",
		PhoneNumber:     "+49 30 1234567",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	req := formRequest(http.MethodPost, "/AppliedJobs/Apply", url.Values{"id": {"1"}}, "")
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+result.Session.Token)
	resp := ts.do(t, req)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// The same token in the cookie is a browser session and needs the anti-forgery token.
	req = formRequest(http.MethodPost, "/AppliedJobs/Apply", url.Values{"id": {"1"}}, result.Session.Token)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+result.Session.Token)
	resp = ts.do(t, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMiddleware_PanicIsRecovered(t *testing.T) {
	ts := newFullApp(t)
	ts.app.Get("/explode", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp := ts.do(t, getRequest("/explode", ""))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "An unexpected error occurred", body["error"])
}

func TestMiddleware_SecurityAndRequestHeaders(t *testing.T) {
	ts := newFullApp(t)

	resp := ts.do(t, getRequest("/JobPost", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.Equal(t, "nosniff", resp.Header.Get(fiber.HeaderXContentTypeOptions))
}
