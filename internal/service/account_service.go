package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"jobboard/internal/featureflags"
	"jobboard/internal/identity"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"gorm.io/gorm"
)

const (
	// LandingPage is where sign-in, sign-up and sign-out end up by default.
	LandingPage     = "/JobPost"
	TwoFactorPage   = "/LoginPage/LoginWith2fa"
	invalidLoginMsg = "Invalid login attempt."
)

// AccountService runs the registration, login and logout flows.
type AccountService struct {
	db       *gorm.DB
	identity *identity.Manager
	flags    *featureflags.Manager
}

// AuthResult is the outcome of a successful registration or login step.
type AuthResult struct {
	// Session is nil when a further step (two-factor) is required.
	Session           *identity.Session
	RedirectTo        string
	RequiresTwoFactor bool
}

type LoginInput struct {
	UserName   string
	Password   string
	RememberMe bool
	ReturnURL  string
}

func NewAccountService(db *gorm.DB, idm *identity.Manager, flags *featureflags.Manager) *AccountService {
	return &AccountService{db: db, identity: idm, flags: flags}
}

// IsLocalURL reports whether target is a same-origin path that is safe to redirect to.
func IsLocalURL(target string) bool {
	if target == "" || target[0] != '/' {
		return false
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return false
	}
	if strings.ContainsAny(target, "\r\n\t") {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// LocalRedirect returns target when it is local, otherwise fallback.
func LocalRedirect(target, fallback string) string {
	if IsLocalURL(target) {
		return target
	}
	return fallback
}

// remapFields renames field keys of a validation or duplicate-account error.
func remapFields(err error, names map[string]string) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}
	fields := make(map[string]string, len(appErr.Fields))
	for k, v := range appErr.Fields {
		if renamed, ok := names[k]; ok {
			k = renamed
		}
		fields[k] = v
	}
	cp := *appErr
	cp.Fields = fields
	return &cp
}

// RegisterEmployee creates an Employee account keyed by email and signs it in.
// Nothing is persisted when any step fails.
func (s *AccountService) RegisterEmployee(ctx context.Context, in validation.EmployeeRegistration) (*AuthResult, error) {
	if !s.flags.Enabled(featureflags.EmployeeSignup, 0) {
		return nil, models.NewForbiddenError("Employee registration is currently closed")
	}
	if err := validation.ValidateEmployeeRegistration(in).Err(); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	var account *models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		account, err = s.identity.WithAccounts(repository.NewAccountRepository(tx)).CreateAccount(ctx, identity.NewAccount{
			UserName: email,
			Email:    email,
			Password: in.Password,
			Roles:    []models.Role{models.RoleEmployee},
		})
		if err != nil {
			return remapFields(err, map[string]string{"UserName": "Email"})
		}
		return repository.NewEmployeeRepository(tx).Create(ctx, &models.Employee{
			FirstName:   strings.TrimSpace(in.FirstName),
			LastName:    strings.TrimSpace(in.LastName),
			Email:       email,
			PhoneNumber: strings.TrimSpace(in.PhoneNumber),
			AccountID:   &account.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.signIn(account, LandingPage)
}

// RegisterEmployer creates an Employer account named after the company and signs it in.
func (s *AccountService) RegisterEmployer(ctx context.Context, in validation.EmployerRegistration) (*AuthResult, error) {
	if !s.flags.Enabled(featureflags.EmployerSignup, 0) {
		return nil, models.NewForbiddenError("Employer registration is currently closed")
	}
	if err := validation.ValidateEmployerRegistration(in).Err(); err != nil {
		return nil, err
	}

	company := strings.TrimSpace(in.CompanyName)
	email := strings.TrimSpace(in.ContactEmail)
	var account *models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		account, err = s.identity.WithAccounts(repository.NewAccountRepository(tx)).CreateAccount(ctx, identity.NewAccount{
			UserName: company,
			Email:    email,
			Password: in.Password,
			Roles:    []models.Role{models.RoleEmployer},
		})
		if err != nil {
			return remapFields(err, map[string]string{"UserName": "CompanyName", "Email": "ContactEmail"})
		}
		return repository.NewEmployerRepository(tx).Create(ctx, &models.Employer{
			CompanyName:  company,
			ContactEmail: models.NormalizeEmail(email),
			AccountID:    &account.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.signIn(account, LandingPage)
}

func (s *AccountService) signIn(account *models.Account, redirectTo string) (*AuthResult, error) {
	session, err := s.identity.IssueSession(account)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{Session: session, RedirectTo: redirectTo}, nil
}

// Login checks credentials. Unknown accounts and wrong passwords produce the same error.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if strings.TrimSpace(in.UserName) == "" || in.Password == "" {
		errs := validation.FieldErrors{}
		if strings.TrimSpace(in.UserName) == "" {
			errs.Add("UserName", "The UserName field is required.")
		}
		if in.Password == "" {
			errs.Add("Password", "The Password field is required.")
		}
		return nil, errs.Err()
	}

	result, err := s.identity.PasswordSignIn(ctx, strings.TrimSpace(in.UserName), in.Password)
	if err != nil {
		return nil, err
	}

	switch {
	case result.Succeeded:
		middleware.LoginAttempts.WithLabelValues("success").Inc()
		return s.signIn(result.Account, LocalRedirect(in.ReturnURL, LandingPage))
	case result.RequiresTwoFactor:
		middleware.LoginAttempts.WithLabelValues("two_factor").Inc()
		q := url.Values{}
		q.Set("returnUrl", LocalRedirect(in.ReturnURL, LandingPage))
		if in.RememberMe {
			q.Set("rememberMe", "true")
		}
		return &AuthResult{RedirectTo: TwoFactorPage + "?" + q.Encode(), RequiresTwoFactor: true}, nil
	case result.IsLockedOut:
		middleware.LoginAttempts.WithLabelValues("locked_out").Inc()
		middleware.Logger.WarnContext(ctx, "account locked out", "account_id", result.Account.ID)
		return nil, models.NewAccountLockedError()
	default:
		middleware.LoginAttempts.WithLabelValues("failed").Inc()
		return nil, models.NewUnauthorizedError(invalidLoginMsg)
	}
}

// Logout revokes the session token if it is still valid. An invalid token is already signed out.
func (s *AccountService) Logout(ctx context.Context, token string) (string, error) {
	if token == "" {
		return LandingPage, nil
	}
	claims, err := s.identity.ParseSession(ctx, token)
	if err != nil {
		return LandingPage, nil
	}
	if err := s.identity.Revoke(ctx, claims); err != nil {
		return "", models.NewInternalError(err)
	}
	return LandingPage, nil
}
