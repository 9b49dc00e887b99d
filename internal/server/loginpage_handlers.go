package server

import (
	"jobboard/internal/featureflags"
	"jobboard/internal/models"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LoginForm handles GET /LoginPage/Login
// @Summary Login form
// @Tags auth
// @Produce json
// @Param returnUrl query string false "Local path to return to after login"
// @Success 200 {object} map[string]interface{}
// @Router /LoginPage/Login [get]
func (s *Server) LoginForm(c *fiber.Ctx) error {
	body := fiber.Map{
		"returnUrl": service.LocalRedirect(c.Query("returnUrl"), service.LandingPage),
		"csrfToken": csrfToken(c),
	}
	if p := currentPrincipal(c); p != nil {
		body["signedInAs"] = p.DisplayName
	}
	return c.JSON(body)
}

// Login handles POST /LoginPage/Login
// @Summary Log in
// @Description The user name may also be the account email. Failures never reveal whether the account exists.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body loginForm true "Credentials"
// @Success 303 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} invalidResponse
// @Failure 423 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /LoginPage/Login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var form loginForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	result, err := s.accounts.Login(c.UserContext(), service.LoginInput{
		UserName:   form.UserName,
		Password:   form.Password,
		RememberMe: bool(form.RememberMe),
		ReturnURL:  form.ReturnURL,
	})
	if err != nil {
		return respondWithInput(c, err, form.echo())
	}
	if result.RequiresTwoFactor {
		return seeOther(c, result.RedirectTo, fiber.Map{"requiresTwoFactor": true})
	}

	s.setSessionCookie(c, result.Session, bool(form.RememberMe))
	return seeOther(c, result.RedirectTo, sessionBody(result))
}

// LoginWithTwoFactor handles GET /LoginPage/LoginWith2fa
// @Summary Two-factor step (not available)
// @Tags auth
// @Produce json
// @Failure 501 {object} models.ErrorResponse
// @Router /LoginPage/LoginWith2fa [get]
func (s *Server) LoginWithTwoFactor(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).JSON(models.ErrorResponse{
		Error: "Two-factor authentication is not available",
	})
}

// RegisterEmployeeForm handles GET /LoginPage/RegisterEmployee
// @Summary Employee registration form
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Router /LoginPage/RegisterEmployee [get]
func (s *Server) RegisterEmployeeForm(c *fiber.Ctx) error {
	return s.registrationForm(c, featureflags.EmployeeSignup, "Employee")
}

// RegisterEmployee handles POST /LoginPage/RegisterEmployee
// @Summary Register a job seeker
// @Description The email doubles as the user name. The new account is signed in.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body employeeForm true "Employee"
// @Success 303 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} invalidResponse
// @Failure 422 {object} invalidResponse
// @Router /LoginPage/RegisterEmployee [post]
func (s *Server) RegisterEmployee(c *fiber.Ctx) error {
	var form employeeForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	result, err := s.accounts.RegisterEmployee(c.UserContext(), form.registration())
	if err != nil {
		return respondWithInput(c, err, form.echo())
	}
	s.setSessionCookie(c, result.Session, false)
	return seeOther(c, result.RedirectTo, sessionBody(result))
}

// RegisterEmployerForm handles GET /LoginPage/RegisterEmployer
// @Summary Employer registration form
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Router /LoginPage/RegisterEmployer [get]
func (s *Server) RegisterEmployerForm(c *fiber.Ctx) error {
	return s.registrationForm(c, featureflags.EmployerSignup, "Employer")
}

// RegisterEmployer handles POST /LoginPage/RegisterEmployer
// @Summary Register a company
// @Description The company name doubles as the user name. The new account is signed in.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body employerForm true "Employer"
// @Success 303 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} invalidResponse
// @Failure 422 {object} invalidResponse
// @Router /LoginPage/RegisterEmployer [post]
func (s *Server) RegisterEmployer(c *fiber.Ctx) error {
	var form employerForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	result, err := s.accounts.RegisterEmployer(c.UserContext(), form.registration())
	if err != nil {
		return respondWithInput(c, err, form.echo())
	}
	s.setSessionCookie(c, result.Session, false)
	return seeOther(c, result.RedirectTo, sessionBody(result))
}

// Logout handles GET and POST /LoginPage/Logout
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 303 {object} map[string]interface{}
// @Security SessionCookie
// @Router /LoginPage/Logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	target, err := s.accounts.Logout(c.UserContext(), sessionToken(c))
	if err != nil {
		return respondError(c, err)
	}
	s.clearSessionCookie(c)
	return seeOther(c, target, nil)
}

func (s *Server) registrationForm(c *fiber.Ctx, flag, kind string) error {
	if !s.featureFlags.Enabled(flag, 0) {
		return respondAppError(c, models.NewForbiddenError(kind+" registration is currently closed"))
	}
	return c.JSON(fiber.Map{"csrfToken": csrfToken(c)})
}

// sessionBody exposes the token for clients that authenticate with a Bearer header.
func sessionBody(result *service.AuthResult) fiber.Map {
	return fiber.Map{
		"token":     result.Session.Token,
		"expiresAt": result.Session.ExpiresAt,
		"user":      result.Session.Principal,
	}
}
