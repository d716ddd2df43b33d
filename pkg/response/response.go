package response

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the error payload envelope returned by the API.
type Response struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Details []any  `json:"details,omitempty"`
}

var EmptyRequestBodyResponse = Response{
	Status:  StatusError,
	Error:   "Empty Request Body",
	Message: "Request body is empty. Please provide necessary data.",
}

var BadRequestResponse = Response{
	Status:  StatusError,
	Error:   "Bad Request",
	Message: "The request body is malformed.",
}

var InvalidURLResponse = Response{
	Status:  StatusError,
	Error:   "Invalid URL",
	Message: "Please provide a valid URL.",
}

var InvalidShortCodeResponse = Response{
	Status:  StatusError,
	Error:   "Invalid short code",
	Message: "Short code must be 6 alphanumeric characters.",
}

var ResourceNotFoundResponse = Response{
	Status:  StatusError,
	Error:   "Not found",
	Message: "Short URL not found.",
}

var ShortCodeExhaustedResponse = Response{
	Status:  StatusError,
	Error:   "Service temporarily unavailable",
	Message: "Unable to generate short code. Please try again.",
}

var ServerErrorResponse = Response{
	Status:  StatusError,
	Error:   "Server Error",
	Message: "An internal server error occurred. Please try again later.",
}

// ValidationError describes a single failed field validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse builds an error response from validator errors,
// one detail entry per failed field.
func ValidationErrorResponse(err error) Response {
	resp := Response{
		Status:  StatusError,
		Error:   "Validation Error",
		Message: "The request contains invalid data.",
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			resp.Details = append(resp.Details, ValidationError{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	}

	return resp
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", err.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", err.Field())
	}
}
