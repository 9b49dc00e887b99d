package validation

import (
	"strings"
	"testing"

	"jobboard/internal/models"

	"github.com/stretchr/testify/assert"
)

func validJob() JobFields {
	salary := 50000
	return JobFields{
		Title:       "Backend Engineer",
		Description: "Build services",
		Company:     "Acme",
		Location:    "Remote",
		JobType:     "Full-time",
		Salary:      &salary,
	}
}

func TestValidateJob(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		mutate    func(*JobFields)
		wantField string
	}{
		{"Valid", func(*JobFields) {}, ""},
		{"Missing Title", func(j *JobFields) { j.Title = "  " }, "Title"},
		{"Title At Limit", func(j *JobFields) { j.Title = strings.Repeat("a", MaxJobTitle) }, ""},
		{"Title Too Long", func(j *JobFields) { j.Title = strings.Repeat("a", MaxJobTitle+1) }, "Title"},
		{"Multibyte Title At Limit", func(j *JobFields) { j.Title = strings.Repeat("é", MaxJobTitle) }, ""},
		{"Description Too Long", func(j *JobFields) { j.Description = strings.Repeat("d", MaxJobDescription+1) }, "Description"},
		{"Missing Company", func(j *JobFields) { j.Company = "" }, "Company"},
		{"Location Too Long", func(j *JobFields) { j.Location = strings.Repeat("l", MaxJobLocation+1) }, "Location"},
		{"JobType Too Long", func(j *JobFields) { j.JobType = strings.Repeat("t", MaxJobType+1) }, "JobType"},
		{"Salary Omitted", func(j *JobFields) { j.Salary = nil }, ""},
		{"Negative Salary", func(j *JobFields) { s := -1; j.Salary = &s }, "Salary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validJob()
			tt.mutate(&job)
			errs := ValidateJob(job)
			if tt.wantField == "" {
				assert.Empty(t, errs)
				assert.NoError(t, errs.Err())
				return
			}
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.wantField)
			assert.True(t, models.IsCode(errs.Err(), models.CodeValidation))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	emailAt254 := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 185) + ".com"
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Exactly 254 Characters", emailAt254, false},
		{"Too Long", "a" + emailAt254, true},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Multiple At Symbols", "user@@example.com", true},
		{"Space In Local Part", "user @example.com", true},
		{"Trailing Dot In Domain", "user@example.com.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword("abcdef"))
}

func TestValidateEmployeeRegistration(t *testing.T) {
	t.Parallel()
	valid := EmployeeRegistration{
		FirstName:       "Grace",
		LastName:        "Hopper",
		Email:           "grace@example.com",
		PhoneNumber:     "+1 555-0100",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
	assert.Empty(t, ValidateEmployeeRegistration(valid))

	bad := valid
	bad.Email = "nope"
	bad.PhoneNumber = "call me"
	bad.ConfirmPassword = "other"
	errs := ValidateEmployeeRegistration(bad)
	assert.Contains(t, errs, "Email")
	assert.Contains(t, errs, "PhoneNumber")
	assert.Contains(t, errs, "ConfirmPassword")
	assert.NotContains(t, errs, "Password")

	long := valid
	long.PhoneNumber = "1234567890123456"
	assert.Contains(t, ValidateEmployeeRegistration(long), "PhoneNumber")
}

func TestValidateEmployerRegistration(t *testing.T) {
	t.Parallel()
	errs := ValidateEmployerRegistration(EmployerRegistration{
		CompanyName:  "",
		ContactEmail: "hr@acme.test",
		Password:     "abc",
	})
	assert.Contains(t, errs, "CompanyName")
	assert.Contains(t, errs, "Password")
	assert.Contains(t, errs, "ConfirmPassword")
	assert.NotContains(t, errs, "ContactEmail")
}
