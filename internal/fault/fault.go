// Package fault defines the structured failure shape every operation
// returns to callers: a client/server category, an HTTP-like status, a
// stable numeric code, and a human-readable detail. Faults are
// transport-neutral; the envelope layers serialize them as-is.
package fault

import (
	"errors"
	"fmt"

	"tradegate/internal/service/auth"
	"tradegate/internal/store"
)

// Category separates caller mistakes from server-side failures.
type Category string

const (
	CategoryClient Category = "Client"
	CategoryServer Category = "Server"
)

// Stable fault codes. The 1xxx family covers request shape and validation,
// 2xxx authentication and authorization, 3xxx missing resources, and 5xxx
// server-side failures.
const (
	CodeUnknownOperation = 1000
	CodeValidation       = 1001
	CodeInvalidPassword  = 1002
	CodeEmailRegistered  = 1003
	CodeAuthRequired     = 2001
	CodeInvalidToken     = 2002
	CodeUnauthorized     = 2003
	CodeNotFound         = 3001
	CodeInternal         = 5000
)

// Fault is the structured failure returned in place of a result. Field is
// only set when the failure concerns a single named parameter.
type Fault struct {
	Category Category `json:"category"        xml:"category"`
	Title    string   `json:"title"           xml:"title"`
	Status   int      `json:"status"          xml:"status"`
	Detail   string   `json:"detail"          xml:"detail"`
	Code     int      `json:"code"            xml:"code"`
	Field    string   `json:"field,omitempty" xml:"field,omitempty"`
}

// Error makes Fault usable as a return value anywhere an error is expected;
// handlers surface business failures this way and the dispatcher unwraps
// them with FromError.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Title, f.Detail)
}

// AuthenticationRequired signals a protected operation called without a
// bearer token.
func AuthenticationRequired() *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Authentication Required",
		Status:   401,
		Detail:   "Authentication token is required",
		Code:     CodeAuthRequired,
	}
}

// InvalidToken covers every token verification failure. Expired, malformed
// and badly signed tokens are deliberately indistinguishable to callers.
func InvalidToken() *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Invalid Token",
		Status:   401,
		Detail:   "Authentication token is invalid or expired",
		Code:     CodeInvalidToken,
	}
}

// Unauthorized signals an authenticated caller acting on a resource it does
// not own. The detail is the same for every operation so responses never
// hint at what the caller would need to succeed.
func Unauthorized() *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Unauthorized",
		Status:   403,
		Detail:   "Not authorized to perform this action",
		Code:     CodeUnauthorized,
	}
}

// ValidationError signals a missing or malformed parameter. field may be
// empty when the failure is not attributable to one parameter.
func ValidationError(detail, field string) *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Validation Error",
		Status:   400,
		Detail:   detail,
		Code:     CodeValidation,
		Field:    field,
	}
}

// InvalidPassword signals a password that fails the minimum-length rule.
func InvalidPassword() *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Invalid Password",
		Status:   422,
		Detail:   "Password must be at least 8 characters long",
		Code:     CodeInvalidPassword,
		Field:    "password",
	}
}

// EmailAlreadyRegistered signals a signup with an email that already has an
// account.
func EmailAlreadyRegistered() *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Email Already Registered",
		Status:   409,
		Detail:   "The email address is already registered",
		Code:     CodeEmailRegistered,
		Field:    "email",
	}
}

// InvalidCredentials signals a failed login. The same fault covers unknown
// emails and wrong passwords so the response never reveals which one it was.
func InvalidCredentials() *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Invalid Credentials",
		Status:   401,
		Detail:   "Invalid email or password",
		Code:     CodeAuthRequired,
	}
}

// ResourceNotFound signals a read or mutation aimed at a row that does not
// exist (or, for scoped reads, is not visible to the caller). kind is the
// display name of the entity, e.g. "user".
func ResourceNotFound(kind string) *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Resource Not Found",
		Status:   404,
		Detail:   fmt.Sprintf("The requested %s was not found", kind),
		Code:     CodeNotFound,
	}
}

// UnknownOperation signals a dispatch request naming no registered
// operation.
func UnknownOperation(name string) *Fault {
	return &Fault{
		Category: CategoryClient,
		Title:    "Unknown Operation",
		Status:   400,
		Detail:   fmt.Sprintf("Unknown operation %q", name),
		Code:     CodeUnknownOperation,
	}
}

// Internal wraps any failure the taxonomy does not recognize. The original
// error text is preserved in Detail.
func Internal(detail string) *Fault {
	return &Fault{
		Category: CategoryServer,
		Title:    "Internal Server Error",
		Status:   500,
		Detail:   detail,
		Code:     CodeInternal,
	}
}

// FromError translates any handler error into a Fault. Handlers return
// *Fault values directly for business failures; store and credential
// sentinels are mapped here; everything else becomes an Internal fault with
// the error text preserved.
func FromError(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return InvalidToken()
	case errors.Is(err, store.ErrEmailExists):
		return EmailAlreadyRegistered()
	case errors.Is(err, store.ErrUserNotFound):
		return ResourceNotFound("user")
	case errors.Is(err, store.ErrProductNotFound):
		return ResourceNotFound("product")
	case errors.Is(err, store.ErrOrderNotFound):
		return ResourceNotFound("order")
	case errors.Is(err, store.ErrNotFound):
		return ResourceNotFound("resource")
	case errors.Is(err, store.ErrInvalidEntity):
		return ValidationError(err.Error(), "")
	default:
		return Internal(err.Error())
	}
}
