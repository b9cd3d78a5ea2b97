package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a client-safe description of an error
type ErrorInfo struct {
	Code    string
	Message string
}

// IsNotFound reports whether err means a missing row
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique/primary key violation.
// gorm translates it when TranslateError is on; the message checks cover
// drivers that do not.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "primary key constraint")
}

// IsForeignKey reports whether err is a foreign key violation
func IsForeignKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// ParseError maps err to a code and message without leaking driver details
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
	}

	switch {
	case IsNotFound(err):
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	case IsDuplicateKey(err):
		return parseDuplicateKeyError(err.Error())
	case IsForeignKey(err):
		return parseForeignKeyError(err.Error())
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") {
		return ErrorInfo{Code: InternalExternalAPI, Message: "An external service is unavailable"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "username") {
		return ErrorInfo{Code: AuthUsernameExists, Message: "Username already exists."}
	}
	if strings.Contains(errLower, "likes") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Cafe already liked"}
	}

	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Resource already exists"}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "city_code") || strings.Contains(errLower, "fk_cafes_city") {
		return ErrorInfo{Code: CityNotFound, Message: "City does not exist"}
	}
	if strings.Contains(errLower, "cafe_id") {
		return ErrorInfo{Code: CafeNotFound, Message: "Cafe does not exist"}
	}

	return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record does not exist"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "cafe"):
		return "Cafe not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "city"):
		return "City not found"
	}
	return "Not found"
}

// ParseAndRespond parses err and writes it as a JSON error payload
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	info := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
