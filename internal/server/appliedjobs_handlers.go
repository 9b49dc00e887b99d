package server

import (
	"jobboard/internal/models"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

const appliedJobsPage = "/AppliedJobs"

// MyApplications handles GET /AppliedJobs
// @Summary Jobs the caller applied to
// @Tags applications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /AppliedJobs [get]
func (s *Server) MyApplications(c *fiber.Ctx) error {
	jobs, err := s.applications.ListMyApplications(c.UserContext(), currentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"jobs":      jobs,
		"csrfToken": csrfToken(c),
	})
}

// bindApplyForm accepts the job id from the body or the query string.
func bindApplyForm(c *fiber.Ctx) (applyForm, error) {
	var form applyForm
	if len(c.Body()) > 0 {
		if err := bindForm(c, &form); err != nil {
			return form, err
		}
	}
	if form.ID == 0 {
		if id := c.QueryInt("id"); id > 0 {
			form.ID = uint(id)
		}
	}
	if form.ReturnURL == "" {
		form.ReturnURL = c.Query("returnUrl")
	}
	if form.ID == 0 {
		_ = respondAppError(c, models.NewNotFoundError("Job", 0))
		return form, errResponseWritten
	}
	return form, nil
}

// Apply handles POST /AppliedJobs/Apply
// @Summary Apply to a job
// @Description Applying twice is a no-op. Redirects to returnUrl when it is a local path.
// @Tags applications
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body applyForm true "Job to apply to"
// @Success 303 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /AppliedJobs/Apply [post]
func (s *Server) Apply(c *fiber.Ctx) error {
	form, err := bindApplyForm(c)
	if err != nil {
		return nil
	}
	if err := s.applications.Apply(c.UserContext(), form.ID, currentPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return seeOther(c, service.LocalRedirect(form.ReturnURL, appliedJobsPage), nil)
}

// CancelApply handles POST /AppliedJobs/CancelApply
// @Summary Withdraw an application
// @Description Withdrawing an application that does not exist is a no-op.
// @Tags applications
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body applyForm true "Job to withdraw from"
// @Success 303 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /AppliedJobs/CancelApply [post]
func (s *Server) CancelApply(c *fiber.Ctx) error {
	form, err := bindApplyForm(c)
	if err != nil {
		return nil
	}
	if err := s.applications.CancelApply(c.UserContext(), form.ID, currentPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return seeOther(c, service.LocalRedirect(form.ReturnURL, appliedJobsPage), nil)
}
