package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployee_FullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tt := range tests {
		e := Employee{FirstName: tt.first, LastName: tt.last}
		assert.Equal(t, tt.want, e.FullName())
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("Manager").Valid())
	assert.False(t, Role("admin").Valid())
}

func TestPrincipal(t *testing.T) {
	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.HasRole(RoleAdmin))
	assert.False(t, nilPrincipal.Authenticated())

	account := &Account{
		ID:       7,
		UserName: "Acme",
		Email:    "hr@acme.test",
		Roles:    []RoleRecord{{Name: RoleEmployer}, {Name: RoleAdmin}},
	}
	p := NewPrincipal(account)
	assert.True(t, p.Authenticated())
	assert.Equal(t, []Role{RoleAdmin, RoleEmployer}, p.Roles)
	assert.Equal(t, "Acme", p.DisplayName)
	assert.True(t, p.HasRole(RoleEmployer))
	assert.False(t, p.HasRole(RoleEmployee))
	assert.True(t, account.HasRole(RoleAdmin))
}

func TestAccount_IsLockedOut(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &Account{}
	assert.False(t, a.IsLockedOut(now))

	future := now.Add(time.Minute)
	a.LockoutEnd = &future
	assert.True(t, a.IsLockedOut(now))

	past := now.Add(-time.Minute)
	a.LockoutEnd = &past
	assert.False(t, a.IsLockedOut(now))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ACME CORP", NormalizeUserName("  Acme Corp "))
	assert.Equal(t, "hr@acme.test", NormalizeEmail(" HR@Acme.Test "))
}

func TestAppError(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Job", 3))
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeForbidden))
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))

	internal := NewInternalError(errors.New("db down"))
	assert.Equal(t, "Internal server error: db down", internal.Error())
	assert.ErrorIs(t, internal, internal.Err)

	dup := NewDuplicateAccountError("Email", "Email 'a@b.c' is already taken.")
	assert.Equal(t, map[string]string{"Email": "Email 'a@b.c' is already taken."}, dup.Fields)
}

func TestStatusForCode(t *testing.T) {
	cases := map[string]int{
		CodeNotFound:         fiber.StatusNotFound,
		CodeUnauthorized:     fiber.StatusUnauthorized,
		CodeForbidden:        fiber.StatusForbidden,
		CodeValidation:       fiber.StatusUnprocessableEntity,
		CodeConflict:         fiber.StatusConflict,
		CodeDuplicateAccount: fiber.StatusConflict,
		CodeAccountLocked:    fiber.StatusLocked,
		CodeInternal:         fiber.StatusInternalServerError,
		"SOMETHING_ELSE":     fiber.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, StatusForCode(code), code)
	}
}

func TestRespondWithError_HidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, NewInternalError(errors.New("secret dsn")))
	})
	app.Get("/fields", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusUnprocessableEntity, NewFieldValidationError(map[string]string{"Title": "required"}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/internal", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var body ErrorResponse
	require.NoError(t, decodeJSON(resp.Body, &body))
	assert.Equal(t, CodeInternal, body.Code)
	assert.Empty(t, body.Details)

	resp, err = app.Test(httptest.NewRequest("GET", "/fields", nil))
	require.NoError(t, err)
	body = ErrorResponse{}
	require.NoError(t, decodeJSON(resp.Body, &body))
	assert.Equal(t, "required", body.Fields["Title"])
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
