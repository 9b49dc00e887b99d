package server

import (
	"time"

	"jobboard/internal/models"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListJobs handles GET /JobPost
// @Summary List jobs
// @Description Search jobs by title, job type, location and posted year. Results are ordered by title.
// @Tags jobs
// @Produce json
// @Param searchText query string false "Title substring"
// @Param jobType query string false "Exact job type"
// @Param location query string false "Exact location"
// @Param year query int false "Posted year"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5)
// @Success 200 {object} jobListView
// @Failure 400 {object} models.ErrorResponse
// @Router /JobPost [get]
func (s *Server) ListJobs(c *fiber.Ctx) error {
	var q jobQuery
	if err := c.QueryParser(&q); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid query parameters"))
	}
	caller := currentPrincipal(c)

	listing, err := s.jobService.List(c.UserContext(), service.ListJobsInput{
		SearchText: q.SearchText,
		JobType:    q.JobType,
		Location:   q.Location,
		Year:       q.Year,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Caller:     caller,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newJobListView(listing, q, caller))
}

// JobDetails handles GET /JobPost/Details/:id
// @Summary Job details
// @Description Owners also see the applicants; employees see whether they applied.
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} jobDetailsView
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /JobPost/Details/{id} [get]
func (s *Server) JobDetails(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.jobService.GetDetails(c.UserContext(), id, currentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}

	view := jobDetailsView{
		Job:        result.Job,
		IsOwner:    result.IsOwner,
		CanManage:  result.CanManage,
		HasApplied: result.HasApplied,
		CSRFToken:  csrfToken(c),
	}
	if result.IsOwner {
		view.Applicants = newApplicantViews(result.Applicants)
	}
	return c.JSON(view)
}

// JobApplicants handles GET /JobPost/Applicants/:id
// @Summary List applicants of a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /JobPost/Applicants/{id} [get]
func (s *Server) JobApplicants(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	job, applicants, err := s.jobService.ListApplicants(c.UserContext(), id, currentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"job":        job,
		"applicants": newApplicantViews(applicants),
	})
}

// CreateJobForm handles GET /JobPost/Create
// @Summary Job creation form
// @Tags jobs
// @Produce json
// @Success 200 {object} jobFormView
// @Security SessionCookie
// @Router /JobPost/Create [get]
func (s *Server) CreateJobForm(c *fiber.Ctx) error {
	employers, err := s.jobService.EmployerChoices(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobFormView{
		Job:       jobForm{PostedDate: time.Now().UTC().Format(time.RFC3339)},
		Employers: newEmployerChoices(employers, nil),
		CSRFToken: csrfToken(c),
	})
}

// CreateJob handles POST /JobPost/Create
// @Summary Create a job
// @Description Without employerId the caller's own employer profile owns the job.
// @Tags jobs
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body jobForm true "Job"
// @Success 303 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} invalidResponse
// @Security SessionCookie
// @Router /JobPost/Create [post]
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var form jobForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	in, err := form.input(currentPrincipal(c))
	if err != nil {
		return respondWithInput(c, err, form)
	}

	job, err := s.jobService.Create(c.UserContext(), in)
	if err != nil {
		return respondWithInput(c, err, form)
	}
	return seeOther(c, service.LandingPage, fiber.Map{"id": job.ID})
}

// EditJobForm handles GET /JobPost/Edit/:id
// @Summary Job edit form
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} jobFormView
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /JobPost/Edit/{id} [get]
func (s *Server) EditJobForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	job, err := s.jobService.GetForManage(c.UserContext(), id, currentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	employers, err := s.jobService.EmployerChoices(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobFormView{
		Job:       jobFormFrom(job),
		Employers: newEmployerChoices(employers, job.EmployerID),
		CSRFToken: csrfToken(c),
	})
}

// EditJob handles POST /JobPost/Edit/:id
// @Summary Update a job
// @Description Send the version that was read to detect concurrent edits.
// @Tags jobs
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Job ID"
// @Param request body jobForm true "Job"
// @Success 303 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} invalidResponse
// @Security SessionCookie
// @Router /JobPost/Edit/{id} [post]
func (s *Server) EditJob(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var form jobForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}
	if form.ID != 0 && form.ID != id {
		return respondAppError(c, models.NewNotFoundError("Job", form.ID))
	}
	form.ID = id

	caller := currentPrincipal(c)
	in, inputErr := form.input(caller)
	if inputErr != nil {
		// Ownership is decided before the payload is judged.
		if _, err := s.jobService.GetForManage(c.UserContext(), id, caller); err != nil {
			return respondError(c, err)
		}
		return respondWithInput(c, inputErr, form)
	}

	job, err := s.jobService.Update(c.UserContext(), id, in)
	if err != nil {
		return respondWithInput(c, err, form)
	}
	return seeOther(c, service.LandingPage, fiber.Map{"id": job.ID, "version": job.Version})
}

// DeleteJobConfirm handles GET /JobPost/Delete/:id
// @Summary Job deletion confirmation
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /JobPost/Delete/{id} [get]
func (s *Server) DeleteJobConfirm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	job, err := s.jobService.GetForManage(c.UserContext(), id, currentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"job":       job,
		"csrfToken": csrfToken(c),
	})
}

// DeleteJob handles POST /JobPost/Delete/:id
// @Summary Delete a job
// @Description Also withdraws every application to the job.
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 303 {object} map[string]interface{}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security SessionCookie
// @Router /JobPost/Delete/{id} [post]
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.jobService.Delete(c.UserContext(), id, currentPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return seeOther(c, service.LandingPage, nil)
}
