package postgres

import (
	"errors"

	"github.com/lib/pq"

	"tourtrack/internal/repository"
)

const pqForeignKeyViolation = "23503"

// translateError maps driver errors that carry domain meaning onto repository errors.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	if pqErr.Code == pqForeignKeyViolation {
		return repository.ErrInvalidReference
	}
	return err
}
