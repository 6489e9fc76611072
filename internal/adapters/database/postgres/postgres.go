package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
)

// translate maps gorm's record-not-found and duplicate-key errors onto
// the domain taxonomy so services never see driver errors. Duplicate
// keys rely on gorm's TranslateError being enabled on the connection.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorz.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorz.ErrConflict
	}
	return err
}
