package orm

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKeyErr reconoce violaciones de unicidad en postgres y sqlite.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") || // postgres 23505
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite 2067
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
