package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo is a response-safe code and message pair
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns a persistence or infrastructure error into a code and a
// message safe to show to the client. context names the operation, e.g.
// "create review".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: getNotFoundMessage(context)}
	}

	// pgx reports SQLSTATE directly
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := strings.ToLower(pgErr.ConstraintName + " " + pgErr.ColumnName + " " + pgErr.Message + " " + pgErr.Detail)
		switch pgErr.Code {
		case pgUniqueViolation:
			return parseDuplicateKeyError(detail)
		case pgForeignKeyViolation:
			return parseForeignKeyError(detail)
		case pgNotNullViolation:
			return parseNotNullError(detail)
		case pgCheckViolation:
			return parseCheckConstraintError(detail)
		}
	}

	// sqlite and wrapped driver errors only carry text
	errStrLower := strings.ToLower(err.Error())

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}
	if strings.Contains(errStrLower, "not null constraint") || strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStrLower)
	}
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStrLower)
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: getDefaultErrorMessage(context)}
}

func parseDuplicateKeyError(detail string) ErrorInfo {
	switch {
	case strings.Contains(detail, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "The email has already been taken."}
	case strings.Contains(detail, "username"):
		return ErrorInfo{Code: AuthUsernameExists, Message: "The username has already been taken."}
	case strings.Contains(detail, "product_genres"), strings.Contains(detail, "genre_id"):
		return ErrorInfo{Code: RelationExists, Message: "This product already has that genre"}
	case strings.Contains(detail, "name"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "The name has already been taken."}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists"}
}

func parseForeignKeyError(detail string) ErrorInfo {
	if strings.Contains(detail, "still referenced") {
		return ErrorInfo{Code: ResourceConflict, Message: "The record is still referenced by other data"}
	}

	switch {
	case strings.Contains(detail, "type_id"), strings.Contains(detail, "product_types"):
		return ErrorInfo{Code: ProductTypeNotFound, Message: "Product type not found"}
	case strings.Contains(detail, "genre_id"), strings.Contains(detail, "fk_genres"):
		return ErrorInfo{Code: GenreNotFound, Message: "Genre not found"}
	case strings.Contains(detail, "review_id"), strings.Contains(detail, "fk_reviews"):
		return ErrorInfo{Code: ReviewNotFound, Message: "Review not found."}
	case strings.Contains(detail, "product_id"), strings.Contains(detail, "fk_products"):
		return ErrorInfo{Code: ProductNotFound, Message: "Product not found"}
	case strings.Contains(detail, "user_id"), strings.Contains(detail, "fk_users"):
		return ErrorInfo{Code: UserNotFound, Message: "User not found"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
}

func parseNotNullError(detail string) ErrorInfo {
	for _, field := range []string{"email", "password", "username", "title", "content", "name"} {
		if strings.Contains(detail, field) {
			return ErrorInfo{Code: ValidationRequired, Message: "The " + field + " field is required."}
		}
	}
	return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
}

func parseCheckConstraintError(detail string) ErrorInfo {
	if strings.Contains(detail, "score") {
		return ErrorInfo{Code: ReviewInvalidScore, Message: "The score must be between 1 and 100."}
	}
	return ErrorInfo{Code: ValidationInvalidInput, Message: "The given data was invalid."}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product type"):
		return "Product type not found"
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "genre"):
		return "Genre not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found."
	case strings.Contains(contextLower, "comment"):
		return "Comment not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "The requested record was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"), strings.Contains(contextLower, "store"):
		return "Failed to create the record. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update the record. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the record. Please try again later"
	}
	return "Internal server error. Please try again later"
}

// StatusFor maps a parsed code to the HTTP status it is reported with.
func StatusFor(code string) int {
	switch code {
	case ResourceNotFound, ProductNotFound, GenreNotFound, ReviewNotFound, CommentNotFound, UserNotFound, RelationNotFound:
		return 404
	case ResourceAlreadyExists, ResourceConflict, RelationExists:
		return 409
	case AuthEmailAlreadyExists, AuthUsernameExists, ValidationRequired, ValidationInvalidInput,
		ReviewInvalidScore, ProductTypeNotFound:
		return 422
	case InternalExternalAPI:
		return 503
	}
	return 500
}

// ParseAndRespond parses err and writes it with the status that fits its code.
func ParseAndRespond(c interface {
	JSON(int, interface{})
}, err error, context string) {
	info := ParseError(err, context)
	status := StatusFor(info.Code)
	c.JSON(status, ErrorResponse{
		Status:   false,
		Error:    info.Code,
		Message:  info.Message,
		HTTPCode: status,
	})
}
