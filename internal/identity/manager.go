// Package identity owns sign-in accounts: password hashing, lockout, roles and session tokens.
package identity

import (
	"context"
	"time"

	"jobboard/internal/cache"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"github.com/redis/go-redis/v9"
)

// Options configure a Manager.
type Options struct {
	Secret            string
	SessionTTL        time.Duration
	MaxFailedAttempts int
	LockoutDuration   time.Duration
	// PasswordCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	PasswordCost int
}

// SignInResult is the outcome of a password sign-in. At most one flag is set;
// none set means the credentials were rejected.
type SignInResult struct {
	Succeeded         bool
	IsLockedOut       bool
	RequiresTwoFactor bool
	Account           *models.Account
}

// NewAccount is the input to CreateAccount.
type NewAccount struct {
	UserName string
	Email    string
	Password string
	Roles    []models.Role
}

// Manager is the identity provider used by the registration and login flows.
type Manager struct {
	accounts repository.AccountRepository
	redis    *redis.Client
	opts     Options
	now      func() time.Time
}

func NewManager(accounts repository.AccountRepository, rdb *redis.Client, opts Options) *Manager {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.LockoutDuration <= 0 {
		opts.LockoutDuration = 5 * time.Minute
	}
	return &Manager{
		accounts: accounts,
		redis:    rdb,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithAccounts returns a copy of m backed by accounts, typically a transaction-scoped repository.
func (m *Manager) WithAccounts(accounts repository.AccountRepository) *Manager {
	cp := *m
	cp.accounts = accounts
	return &cp
}

// SessionTTL is the lifetime of issued sessions.
func (m *Manager) SessionTTL() time.Duration {
	return m.opts.SessionTTL
}

// EnsureRoles creates the fixed role set.
func (m *Manager) EnsureRoles(ctx context.Context) error {
	return m.accounts.EnsureRoles(ctx, models.AllRoles...)
}

// UserNameTaken reports whether an account already uses userName (case-insensitive).
func (m *Manager) UserNameTaken(ctx context.Context, userName string) (bool, error) {
	account, err := m.accounts.GetByUserName(ctx, userName)
	return account != nil, err
}

// EmailTaken reports whether an account already uses email (case-insensitive).
func (m *Manager) EmailTaken(ctx context.Context, email string) (bool, error) {
	account, err := m.accounts.GetByEmail(ctx, email)
	return account != nil, err
}

// CreateAccount validates the password, rejects duplicates and stores the account with its roles.
func (m *Manager) CreateAccount(ctx context.Context, in NewAccount) (*models.Account, error) {
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewFieldValidationError(map[string]string{"Password": err.Error()})
	}
	for _, role := range in.Roles {
		if !role.Valid() {
			return nil, models.NewValidationError("unknown role " + string(role))
		}
	}

	if taken, err := m.UserNameTaken(ctx, in.UserName); err != nil {
		return nil, err
	} else if taken {
		return nil, models.NewDuplicateAccountError("UserName", "Username '"+in.UserName+"' is already taken.")
	}
	if taken, err := m.EmailTaken(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, models.NewDuplicateAccountError("Email", "Email '"+in.Email+"' is already taken.")
	}

	hash, err := HashPassword(in.Password, m.opts.PasswordCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	roles, err := m.accounts.FindRoles(ctx, in.Roles...)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		UserName:     in.UserName,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        roles,
	}
	if err := m.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// AddToRoles grants roles and drops the cached principal.
func (m *Manager) AddToRoles(ctx context.Context, accountID uint, roles ...models.Role) error {
	if err := m.accounts.AddRoles(ctx, accountID, roles...); err != nil {
		return err
	}
	cache.InvalidatePrincipal(ctx, accountID)
	return nil
}

// PasswordSignIn checks credentials for a user name or email and applies the lockout policy.
func (m *Manager) PasswordSignIn(ctx context.Context, login, password string) (SignInResult, error) {
	account, err := m.accounts.GetByUserName(ctx, login)
	if err != nil {
		return SignInResult{}, err
	}
	if account == nil {
		if account, err = m.accounts.GetByEmail(ctx, login); err != nil {
			return SignInResult{}, err
		}
	}
	if account == nil {
		return SignInResult{}, nil
	}

	now := m.now()
	if account.IsLockedOut(now) {
		return SignInResult{IsLockedOut: true, Account: account}, nil
	}

	if !CheckPassword(account.PasswordHash, password) {
		return m.recordFailure(ctx, account, now)
	}

	if account.AccessFailedCount > 0 || account.LockoutEnd != nil {
		if err := m.accounts.ResetAccessFailed(ctx, account.ID); err != nil {
			return SignInResult{}, err
		}
		account.AccessFailedCount = 0
		account.LockoutEnd = nil
	}

	if account.TwoFactorEnabled {
		return SignInResult{RequiresTwoFactor: true, Account: account}, nil
	}
	return SignInResult{Succeeded: true, Account: account}, nil
}

// recordFailure bumps the failure counter; reaching the limit locks the account and restarts the count.
func (m *Manager) recordFailure(ctx context.Context, account *models.Account, now time.Time) (SignInResult, error) {
	failed := account.AccessFailedCount + 1
	var lockoutEnd *time.Time
	if m.opts.MaxFailedAttempts > 0 && failed >= m.opts.MaxFailedAttempts {
		until := now.Add(m.opts.LockoutDuration)
		lockoutEnd = &until
		failed = 0
	}
	if err := m.accounts.RecordFailedAccess(ctx, account.ID, failed, lockoutEnd); err != nil {
		return SignInResult{}, err
	}
	account.AccessFailedCount = failed
	account.LockoutEnd = lockoutEnd

	if lockoutEnd != nil {
		return SignInResult{IsLockedOut: true, Account: account}, nil
	}
	return SignInResult{Account: account}, nil
}

// Principal loads the request principal for accountID, cached in Redis.
func (m *Manager) Principal(ctx context.Context, accountID uint) (*models.Principal, error) {
	var p models.Principal
	err := cache.Aside(ctx, cache.PrincipalKey(accountID), &p, cache.PrincipalTTL, func() error {
		account, err := m.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		p = *models.NewPrincipal(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
