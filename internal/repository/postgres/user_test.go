package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestClassifyUniqueViolation_NotPgError(t *testing.T) {
	assert.Nil(t, classifyUniqueViolation(assert.AnError))
	assert.Nil(t, classifyUniqueViolation(nil))
}
