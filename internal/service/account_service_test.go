package service

import (
	"context"
	"strings"
	"testing"

	"jobboard/internal/identity"
	"jobboard/internal/models"
	"jobboard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocalURL(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"/AppliedJobs", true},
		{"/JobPost?page=2", true},
		{"/", true},
		{"", false},
		{"AppliedJobs", false},
		{"//evil.example/path", false},
		{"/\\evil.example", false},
		{"https://evil.example/JobPost", false},
		{"javascript:alert(1)", false},
		{"/JobPost\r\nSet-Cookie: x=y", false},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalURL(tt.target))
		})
	}
	assert.Equal(t, "/JobPost", LocalRedirect("https://evil.example", LandingPage))
}

func TestAccountService_LoginRedirects(t *testing.T) {
	f := newFixture(t, "")
	f.registerEmployee(t, "Ada", "ada@example.com")
	ctx := context.Background()

	t.Run("Same Origin Return Target", func(t *testing.T) {
		res, err := f.accounts.Login(ctx, LoginInput{UserName: "ada@example.com", Password: "secret1", ReturnURL: "/AppliedJobs"})
		require.NoError(t, err)
		assert.Equal(t, "/AppliedJobs", res.RedirectTo)
		require.NotNil(t, res.Session)
		assert.True(t, res.Session.Principal.HasRole(models.RoleEmployee))
	})

	t.Run("Cross Origin Falls Back To Landing Page", func(t *testing.T) {
		for _, target := range []string{"https://evil.example/", "//evil.example", ""} {
			res, err := f.accounts.Login(ctx, LoginInput{UserName: "ada@example.com", Password: "secret1", ReturnURL: target})
			require.NoError(t, err)
			assert.Equal(t, LandingPage, res.RedirectTo)
		}
	})

	t.Run("Wrong Credentials Are Indistinguishable", func(t *testing.T) {
		_, wrongPassword := f.accounts.Login(ctx, LoginInput{UserName: "ada@example.com", Password: "nope-nope"})
		_, unknownUser := f.accounts.Login(ctx, LoginInput{UserName: "ghost@example.com", Password: "secret1"})

		require.Error(t, wrongPassword)
		require.Error(t, unknownUser)
		assert.True(t, models.IsCode(wrongPassword, models.CodeUnauthorized))
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
		assert.Equal(t, invalidLoginMsg, unknownUser.Error())
	})

	t.Run("Missing Fields", func(t *testing.T) {
		_, err := f.accounts.Login(ctx, LoginInput{})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Contains(t, appErr.Fields, "UserName")
		assert.Contains(t, appErr.Fields, "Password")
	})
}

func TestAccountService_LoginLockout(t *testing.T) {
	f := newFixture(t, "")
	f.registerEmployee(t, "Ada", "ada@example.com")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.accounts.Login(ctx, LoginInput{UserName: "ada@example.com", Password: "wrong-pass"})
		assert.True(t, models.IsCode(err, models.CodeUnauthorized))
	}
	_, err := f.accounts.Login(ctx, LoginInput{UserName: "ada@example.com", Password: "wrong-pass"})
	assert.True(t, models.IsCode(err, models.CodeAccountLocked), "third failure locks the account")

	_, err = f.accounts.Login(ctx, LoginInput{UserName: "ada@example.com", Password: "secret1"})
	assert.True(t, models.IsCode(err, models.CodeAccountLocked))
}

func TestAccountService_LoginTwoFactor(t *testing.T) {
	f := newFixture(t, "")
	f.registerEmployee(t, "Ada", "ada@example.com")
	require.NoError(t, f.db.Model(&models.Account{}).
		Where("email = ?", "ada@example.com").
		Update("two_factor_enabled", true).Error)

	res, err := f.accounts.Login(context.Background(), LoginInput{
		UserName:   "ada@example.com",
		Password:   "secret1",
		RememberMe: true,
		ReturnURL:  "/AppliedJobs",
	})
	require.NoError(t, err)
	assert.True(t, res.RequiresTwoFactor)
	assert.Nil(t, res.Session)
	assert.True(t, strings.HasPrefix(res.RedirectTo, TwoFactorPage+"?"))
	assert.Contains(t, res.RedirectTo, "returnUrl=%2FAppliedJobs")
	assert.Contains(t, res.RedirectTo, "rememberMe=true")
}

func TestAccountService_RegisterEmployerDuplicateEmail(t *testing.T) {
	f := newFixture(t, "")
	f.registerEmployer(t, "Acme", "hr@acme.test")
	ctx := context.Background()

	res, err := f.accounts.RegisterEmployer(ctx, validation.EmployerRegistration{
		CompanyName:     "Acme Two",
		ContactEmail:    "HR@acme.test",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	assert.Nil(t, res, "no session is created")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicateAccount, appErr.Code)
	assert.Contains(t, appErr.Fields, "ContactEmail")

	var accounts, employers int64
	require.NoError(t, f.db.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(t, f.db.Model(&models.Employer{}).Count(&employers).Error)
	assert.Equal(t, int64(1), accounts)
	assert.Equal(t, int64(1), employers)

	_, err = f.accounts.RegisterEmployer(ctx, validation.EmployerRegistration{
		CompanyName:     "acme",
		ContactEmail:    "other@acme.test",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicateAccount, appErr.Code)
	assert.Contains(t, appErr.Fields, "CompanyName")
}

func TestAccountService_RegisterEmployee(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	principal := f.registerEmployee(t, "Ada", "Ada@Example.com")
	assert.Equal(t, "ada@example.com", principal.Email)
	assert.Equal(t, []models.Role{models.RoleEmployee}, principal.Roles)

	_, err := f.accounts.RegisterEmployee(ctx, validation.EmployeeRegistration{
		FirstName: "Ada", LastName: "Again", Email: "ada@example.com", PhoneNumber: "12345",
		Password: "secret1", ConfirmPassword: "secret1",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicateAccount, appErr.Code)
	assert.Contains(t, appErr.Fields, "Email")

	_, err = f.accounts.RegisterEmployee(ctx, validation.EmployeeRegistration{
		FirstName: "Bob", LastName: "Builder", Email: "bob@example.com", PhoneNumber: "12345",
		Password: "secret1", ConfirmPassword: "secret2",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "ConfirmPassword")

	var employees int64
	require.NoError(t, f.db.Model(&models.Employee{}).Count(&employees).Error)
	assert.Equal(t, int64(1), employees)
}

func TestAccountService_SignupFlags(t *testing.T) {
	f := newFixture(t, "employer_signup=off,employee_signup=off")
	ctx := context.Background()

	_, err := f.accounts.RegisterEmployer(ctx, validation.EmployerRegistration{
		CompanyName: "Acme", ContactEmail: "hr@acme.test", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.True(t, models.IsCode(err, models.CodeForbidden))

	_, err = f.accounts.RegisterEmployee(ctx, validation.EmployeeRegistration{
		FirstName: "Ada", LastName: "Tester", Email: "ada@example.com", PhoneNumber: "12345",
		Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.True(t, models.IsCode(err, models.CodeForbidden))
}

func TestAccountService_Logout(t *testing.T) {
	f := newFixture(t, "")
	f.registerEmployee(t, "Ada", "ada@example.com")
	ctx := context.Background()

	res, err := f.accounts.Login(ctx, LoginInput{UserName: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	redirect, err := f.accounts.Logout(ctx, res.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, LandingPage, redirect)

	_, err = f.idm.ParseSession(ctx, res.Session.Token)
	assert.ErrorIs(t, err, identity.ErrSessionRevoked)

	redirect, err = f.accounts.Logout(ctx, "not-a-token")
	require.NoError(t, err)
	assert.Equal(t, LandingPage, redirect)
}
