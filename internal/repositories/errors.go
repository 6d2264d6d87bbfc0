package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrPermissionDenied carries the localized message shown to admin users when
// the backend rejects an operation with insufficient privileges.
var ErrPermissionDenied = errors.New("Недостаточно прав для выполнения операции")

// ErrSchemaMissing means a required relation does not exist. This is a
// configuration error: fatal when detected during startup.
var ErrSchemaMissing = errors.New("required database relation does not exist")

// ErrNotFound is the generic missing-record error for all repositories.
var ErrNotFound = errors.New("record not found")

const (
	pgInsufficientPrivilege = "42501"
	pgUndefinedTable        = "42P01"
)

// TranslateProbe classifies a startup schema-probe failure so the connector
// can treat a missing relation as fatal configuration.
func TranslateProbe(err error) error {
	return translateError("schema probe", err)
}

// translateError maps backend failures onto the store error taxonomy so
// handlers can show a localized message for permission problems and main can
// treat a missing schema as fatal.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInsufficientPrivilege:
			return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
		case pgUndefinedTable:
			return fmt.Errorf("%s: %w", op, ErrSchemaMissing)
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
