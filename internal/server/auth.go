package server

import (
	"errors"
	"strings"
	"time"

	"jobboard/internal/identity"
	"jobboard/internal/middleware"
	"jobboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

const localPrincipal = "principal"

const (
	csrfCookie     = "csrf_"
	csrfHeader     = "X-CSRF-Token"
	csrfFormField  = "_csrf"
	csrfContextKey = "csrf"
)

var errCSRFTokenMissing = errors.New("missing anti-forgery token")

// csrfExtractor reads the token from the header first, then from the form body.
func csrfExtractor(c *fiber.Ctx) (string, error) {
	if token := c.Get(csrfHeader); token != "" {
		return token, nil
	}
	if token := c.FormValue(csrfFormField); token != "" {
		return token, nil
	}
	return "", errCSRFTokenMissing
}

// skipCSRF exempts token-authenticated API clients. A browser always sends the
// session cookie, so any request carrying it is checked.
func skipCSRF(c *fiber.Ctx) bool {
	if c.Cookies(identity.SessionCookieName) != "" {
		return false
	}
	return strings.HasPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
}

func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(identity.SessionCookieName); token != "" {
		return token
	}
	if token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// authenticate resolves the caller from the session token. A missing, expired,
// revoked or orphaned session is anonymous, not an error.
func (s *Server) authenticate(c *fiber.Ctx) (*models.Principal, error) {
	token := sessionToken(c)
	if token == "" {
		return nil, nil
	}
	claims, err := s.identity.ParseSession(c.UserContext(), token)
	if err != nil {
		return nil, nil
	}
	p, err := s.identity.Principal(c.UserContext(), claims.AccountID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func setPrincipal(c *fiber.Ctx, p *models.Principal) {
	c.Locals(localPrincipal, p)
	c.Locals(middleware.LocalAccountID, p.AccountID)
	c.SetUserContext(middleware.WithAccountID(c.UserContext(), p.AccountID))
}

// currentPrincipal returns the caller or nil for anonymous requests.
func currentPrincipal(c *fiber.Ctx) *models.Principal {
	p, _ := c.Locals(localPrincipal).(*models.Principal)
	return p
}

// OptionalAuth loads the principal when a valid session is present.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := s.authenticate(c)
		if err != nil {
			return err
		}
		if p != nil {
			setPrincipal(c, p)
		}
		return c.Next()
	}
}

// AuthRequired rejects anonymous requests with 401.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := s.authenticate(c)
		if err != nil {
			return err
		}
		if p == nil {
			return respondAppError(c, models.NewUnauthorizedError("Authentication required"))
		}
		setPrincipal(c, p)
		return c.Next()
	}
}

// RoleRequired must run after AuthRequired.
func (s *Server) RoleRequired(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !currentPrincipal(c).HasRole(role) {
			return respondAppError(c, models.NewForbiddenError("The "+string(role)+" role is required"))
		}
		return c.Next()
	}
}

// setSessionCookie writes the session cookie. Without rememberMe it is a browser-session cookie.
func (s *Server) setSessionCookie(c *fiber.Ctx, session *identity.Session, rememberMe bool) {
	cookie := &fiber.Cookie{
		Name:     identity.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if rememberMe {
		cookie.Expires = session.ExpiresAt
	} else {
		cookie.SessionOnly = true
	}
	c.Cookie(cookie)
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     identity.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
