package server

import (
	"strings"
	"time"

	"jobboard/internal/models"
	"jobboard/internal/service"
	"jobboard/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// postedDateLayouts are tried in order; the second is what an HTML datetime-local input sends.
var postedDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parsePostedDate returns the zero time for a blank value.
func parsePostedDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

type jobForm struct {
	ID          uint   `json:"id" form:"id"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Company     string `json:"company" form:"company"`
	Location    string `json:"location" form:"location"`
	Salary      *int   `json:"salary" form:"salary"`
	JobType     string `json:"jobType" form:"jobType"`
	PostedDate  string `json:"postedDate" form:"postedDate"`
	EmployerID  *uint  `json:"employerId" form:"employerId"`
	Version     uint   `json:"version" form:"version"`
}

// input converts the form. An unparseable date is reported as a field error.
func (f jobForm) input(caller *models.Principal) (service.JobInput, error) {
	posted, ok := parsePostedDate(f.PostedDate)
	in := service.JobInput{
		Fields: validation.JobFields{
			Title:       strings.TrimSpace(f.Title),
			Description: strings.TrimSpace(f.Description),
			Company:     strings.TrimSpace(f.Company),
			Location:    strings.TrimSpace(f.Location),
			JobType:     strings.TrimSpace(f.JobType),
			Salary:      f.Salary,
			PostedDate:  posted,
		},
		EmployerID: f.EmployerID,
		Version:    f.Version,
		Caller:     caller,
	}
	if !ok {
		errs := validation.ValidateJob(in.Fields)
		errs.Add("PostedDate", "The value '"+f.PostedDate+"' is not valid for PostedDate.")
		return in, errs.Err()
	}
	return in, nil
}

// checkbox accepts what browsers and JSON clients send for a boolean: "on", "true", "1" or a JSON bool.
type checkbox bool

func (b *checkbox) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "on", "true", "1", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

func (b *checkbox) UnmarshalJSON(data []byte) error {
	return b.UnmarshalText([]byte(strings.Trim(string(data), `"`)))
}

type applyForm struct {
	ID        uint   `json:"id" form:"id"`
	ReturnURL string `json:"returnUrl" form:"returnUrl"`
}

type loginForm struct {
	UserName   string   `json:"username" form:"username"`
	Password   string   `json:"password" form:"password"`
	RememberMe checkbox `json:"rememberMe" form:"rememberMe"`
	ReturnURL  string   `json:"returnUrl" form:"returnUrl"`
}

// echo drops the password before the form is sent back.
func (f loginForm) echo() loginForm {
	f.Password = ""
	return f
}

type employeeForm struct {
	FirstName       string `json:"firstName" form:"firstName"`
	LastName        string `json:"lastName" form:"lastName"`
	Email           string `json:"email" form:"email"`
	PhoneNumber     string `json:"phoneNumber" form:"phoneNumber"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

func (f employeeForm) registration() validation.EmployeeRegistration {
	return validation.EmployeeRegistration{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Email:           f.Email,
		PhoneNumber:     f.PhoneNumber,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	}
}

func (f employeeForm) echo() employeeForm {
	f.Password, f.ConfirmPassword = "", ""
	return f
}

type employerForm struct {
	CompanyName     string `json:"companyName" form:"companyName"`
	ContactEmail    string `json:"contactEmail" form:"contactEmail"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

func (f employerForm) registration() validation.EmployerRegistration {
	return validation.EmployerRegistration{
		CompanyName:     f.CompanyName,
		ContactEmail:    f.ContactEmail,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	}
}

func (f employerForm) echo() employerForm {
	f.Password, f.ConfirmPassword = "", ""
	return f
}

// bindForm parses a form or JSON body. On failure it writes a 400 and returns errResponseWritten.
func bindForm(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}
