package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: pgUniqueViolationCode}
	assert.True(t, IsUniqueViolation(uniqueErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", uniqueErr)),
		"wrapped unique violations should still be detected")

	fkErr := &pgconn.PgError{Code: pgForeignKeyViolationCode}
	assert.False(t, IsUniqueViolation(fkErr))

	assert.False(t, IsUniqueViolation(errors.New("some other error")))
	assert.False(t, IsUniqueViolation(nil))
}
