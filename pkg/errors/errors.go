package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey a unique constraint rejected the write
var ErrDuplicateKey = errors.New("duplicate key")

// pgUniqueViolation SQLSTATE unique_violation
const pgUniqueViolation = "23505"

// IsDuplicateKey reports whether err is a unique-constraint violation from
// PostgreSQL, SQLite or gorm's translated error.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
