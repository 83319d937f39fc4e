package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends a 200 OK response with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return write(c, fiber.StatusOK, message, data, metadata)
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return write(c, fiber.StatusCreated, message, data, metadata)
}

func write(c *fiber.Ctx, code int, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(code).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// StatusMap maps service errors to HTTP status codes.
type StatusMap map[error]int

// FromError writes err with the status of the entry in m it matches with
// errors.Is. When it wraps several mapped errors the lowest status wins.
// Unknown errors become a 500 without leaking the message.
func FromError(c *fiber.Ctx, err error, m StatusMap) error {
	matched := 0
	for target, code := range m {
		if errors.Is(err, target) && (matched == 0 || code < matched) {
			matched = code
		}
	}
	if matched != 0 {
		return Error(c, err.Error(), matched, nil)
	}
	c.Locals("error_message", err.Error())
	return Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
