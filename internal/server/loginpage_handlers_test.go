package server

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginValues(user, password string) url.Values {
	return url.Values{"username": {user}, "password": {password}}
}

func TestLogin_RedirectsAndCookies(t *testing.T) {
	ts := newTestServer(t, "")
	ts.registerEmployee(t, "Ann", "ann@example.test")

	values := loginValues("ann@example.test", "secret1")
	values.Set("returnUrl", "/AppliedJobs")
	resp := ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", values, ""))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/AppliedJobs", resp.Header.Get(fiber.HeaderLocation))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Expires.IsZero(), "session cookie without rememberMe")

	body := decode(t, resp)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, []any{"Employee"}, user["roles"])

	values = loginValues("ANN@example.test", "secret1")
	values.Set("returnUrl", "//evil.example")
	values.Set("rememberMe", "on")
	resp = ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", values, ""))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/JobPost", resp.Header.Get(fiber.HeaderLocation))
	cookie = sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.False(t, cookie.Expires.IsZero(), "persistent cookie with rememberMe")
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t, "")
	ts.registerEmployee(t, "Ann", "ann@example.test")

	resp := ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", loginValues("ann@example.test", "wrong-pass"), ""))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	wrongPassword := decode(t, resp)["error"]

	resp = ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", loginValues("nobody@example.test", "secret1"), ""))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	unknownUser := decode(t, resp)["error"]

	assert.Equal(t, "Invalid login attempt.", wrongPassword)
	assert.Equal(t, wrongPassword, unknownUser)
	assert.Nil(t, sessionCookie(resp))
}

func TestLogin_MissingFieldsEchoWithoutPassword(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", url.Values{"password": {"secret1"}}, ""))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode(t, resp)
	assert.Contains(t, body["fields"], "UserName")
	input := body["input"].(map[string]any)
	assert.Equal(t, "", input["password"])
}

func TestLogin_Lockout(t *testing.T) {
	ts := newTestServer(t, "")
	ts.registerEmployee(t, "Ann", "ann@example.test")

	for i := 0; i < 3; i++ {
		ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", loginValues("ann@example.test", "wrong-pass"), ""))
	}
	resp := ts.do(t, formRequest(http.MethodPost, "/LoginPage/Login", loginValues("ann@example.test", "secret1"), ""))
	assert.Equal(t, http.StatusLocked, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_LOCKED", decode(t, resp)["code"])
}

func TestLogout_RevokesSession(t *testing.T) {
	ts := newTestServer(t, "")
	token := ts.registerEmployee(t, "Ann", "ann@example.test")

	resp := ts.do(t, getRequest("/AppliedJobs", token))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, formRequest(http.MethodPost, "/LoginPage/Logout", url.Values{}, token))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/JobPost", resp.Header.Get(fiber.HeaderLocation))
	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	resp = ts.do(t, getRequest("/AppliedJobs", token))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, getRequest("/LoginPage/Logout", ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterEmployer_DuplicateContactEmail(t *testing.T) {
	ts := newTestServer(t, "")
	ts.registerEmployer(t, "Acme", "hr@acme.test")

	resp := ts.do(t, formRequest(http.MethodPost, "/LoginPage/RegisterEmployer", url.Values{
		"companyName":     {"Acme Two"},
		"contactEmail":    {"hr@acme.test"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}, ""))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
	body := decode(t, resp)
	assert.Equal(t, "DUPLICATE_ACCOUNT", body["code"])
	assert.Contains(t, body["fields"], "ContactEmail")
	input := body["input"].(map[string]any)
	assert.Equal(t, "Acme Two", input["companyName"])
	assert.Equal(t, "", input["password"])
}

func TestRegisterEmployee_Validation(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.do(t, formRequest(http.MethodPost, "/LoginPage/RegisterEmployee", url.Values{
		"firstName":       {"Ann"},
		"email":           {"not-an-email"},
		"phoneNumber":     {"+49 30 1234567"},
		"password":        {"secret1"},
		"confirmPassword": {"secret2"},
	}, ""))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	fields := decode(t, resp)["fields"].(map[string]any)
	assert.Contains(t, fields, "LastName")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "ConfirmPassword")
}

func TestRegistration_FlagsCloseSignup(t *testing.T) {
	ts := newTestServer(t, "employer_signup=off")

	resp := ts.do(t, getRequest("/LoginPage/RegisterEmployer", ""))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.do(t, formRequest(http.MethodPost, "/LoginPage/RegisterEmployer", url.Values{
		"companyName":     {"Acme"},
		"contactEmail":    {"hr@acme.test"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}, ""))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.do(t, getRequest("/LoginPage/RegisterEmployee", ""))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginWithTwoFactor_NotImplemented(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.do(t, getRequest("/LoginPage/LoginWith2fa", ""))
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestLoginForm_SanitizesReturnURL(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.do(t, getRequest("/LoginPage/Login?returnUrl="+url.QueryEscape("http://evil.example/"), ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/JobPost", decode(t, resp)["returnUrl"])
}
