package server

import (
	"errors"

	"jobboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// invalidResponse echoes the submitted input next to the field errors so a
// client can redisplay the form.
type invalidResponse struct {
	models.ErrorResponse
	Input any `json:"input,omitempty"`
}

// parseID extracts a route parameter as a positive uint.
// A missing or malformed id is treated like an unknown one and answered with 404.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = respondAppError(c, models.NewNotFoundError("Job", c.Params(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

func respondAppError(c *fiber.Ctx, appErr *models.AppError) error {
	return models.RespondWithError(c, models.StatusForCode(appErr.Code), appErr)
}

// respondError writes AppErrors directly and hands anything else to the ErrorHandler.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return respondAppError(c, appErr)
	}
	return err
}

// respondWithInput is respondError that also echoes input on validation and
// duplicate-account failures.
func respondWithInput(c *fiber.Ctx, err error, input any) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return err
	}
	if appErr.Code != models.CodeValidation && appErr.Code != models.CodeDuplicateAccount {
		return respondAppError(c, appErr)
	}
	return c.Status(models.StatusForCode(appErr.Code)).JSON(invalidResponse{
		ErrorResponse: models.ErrorResponse{
			Error:  appErr.Message,
			Code:   appErr.Code,
			Fields: appErr.Fields,
		},
		Input: input,
	})
}

// csrfToken returns the anti-forgery token issued for this request, if any.
func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals(csrfContextKey).(string)
	return token
}

// seeOther answers a successful form post with 303 and the redirect target in
// both the Location header and the body.
func seeOther(c *fiber.Ctx, target string, extra fiber.Map) error {
	body := fiber.Map{"redirect": target}
	for k, v := range extra {
		body[k] = v
	}
	c.Location(target)
	return c.Status(fiber.StatusSeeOther).JSON(body)
}
