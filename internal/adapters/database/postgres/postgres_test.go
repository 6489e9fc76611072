package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))

	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), errorz.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("first: %w", gorm.ErrRecordNotFound)), errorz.ErrNotFound)

	// A unique index violation must surface as a domain conflict, not a
	// driver error. Re-adding a removed member or recreating a deleted
	// club depends on this backstop.
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), errorz.ErrConflict)
	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), errorz.ErrConflict)

	boom := errors.New("boom")
	assert.ErrorIs(t, translate(boom), boom)
}
