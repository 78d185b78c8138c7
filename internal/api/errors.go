package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vocabdeck/vocabdeck-api/internal/api/shared"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/domain/vocabimport"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
	"github.com/vocabdeck/vocabdeck-api/internal/service/auth"
	"github.com/vocabdeck/vocabdeck-api/internal/service/studysession"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

// Errors raised by the handlers themselves.
var (
	// ErrUnsupportedFile is returned for an import upload that is not a .txt file.
	ErrUnsupportedFile = errors.New("only .txt files can be imported")

	// ErrMissingFile is returned for an import request without a file part.
	ErrMissingFile = errors.New("no file uploaded")
)

// userCredentialErrors are returned by domain.NewUser for bad input.
var userCredentialErrors = []error{
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrEmptyPassword,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
}

// MapErrorToStatusCode maps an error from the service layer to an HTTP
// status. Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, studysession.ErrSessionNotOwned):
		return http.StatusForbidden

	case errors.Is(err, service.ErrFolderNotFound),
		errors.Is(err, service.ErrStudySetNotFound),
		errors.Is(err, studysession.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, studysession.ErrWrongMode):
		return http.StatusConflict

	case errors.Is(err, vocabimport.ErrImportEmpty),
		errors.Is(err, service.ErrEmptyVocabulary):
		return http.StatusUnprocessableEntity

	case errors.Is(err, ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, studysession.ErrInvalidMode),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, ErrMissingFile),
		isUserCredentialError(err):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrExamplesUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

func isUserCredentialError(err error) bool {
	for _, target := range userCredentialErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		lineErr       *vocabimport.LineError
		validationErr *domain.ValidationError
	)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not have access to this resource"
	case errors.Is(err, studysession.ErrSessionNotOwned):
		return "You do not have access to this session"

	case errors.Is(err, service.ErrFolderNotFound), errors.Is(err, store.ErrFolderNotFound):
		return "Folder not found"
	case errors.Is(err, service.ErrStudySetNotFound), errors.Is(err, store.ErrStudySetNotFound):
		return "Study set not found"
	case errors.Is(err, studysession.ErrSessionNotFound):
		return "Study session not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, studysession.ErrWrongMode):
		return "Operation does not match the session's study mode"

	case errors.Is(err, vocabimport.ErrImportEmpty):
		return "No valid vocabulary entries found"
	case errors.Is(err, service.ErrEmptyVocabulary):
		return "At least one term with a definition is required"
	case errors.Is(err, ErrUnsupportedFile):
		return "Only .txt files can be imported"
	case errors.Is(err, ErrMissingFile):
		return "No file uploaded"
	case errors.Is(err, studysession.ErrInvalidMode):
		return "Invalid study mode"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.As(err, &lineErr):
		return fmt.Sprintf("Line %d: %s", lineErr.Line, GetSafeErrorMessage(lineErr.Err))
	case errors.As(err, &validationErr):
		if validationErr.Field == "" {
			return "Invalid " + validationErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrEmptyEmail):
		return "Invalid email"
	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyPassword):
		return "Password must be between 12 and 72 characters"
	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	case errors.Is(err, service.ErrExamplesUnavailable):
		return "Example generation is not available"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid ID"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted details. A non-empty message overrides the default client
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// handleValidationError writes a 400 for a failed request validation.
func handleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// handleDecodeError writes a 400 for an unreadable request body.
func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	message := "Invalid request format"
	if errors.Is(err, shared.ErrEmptyBody) {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}

// handleServiceError reports a service failure. Client errors get their safe
// message; server errors get fallback.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if MapErrorToStatusCode(err) >= http.StatusInternalServerError {
		HandleAPIError(w, r, err, fallback)
		return
	}
	HandleAPIError(w, r, err, "")
}
