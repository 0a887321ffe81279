package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseErrorClassification(t *testing.T) {
	cases := []struct {
		name       string
		cause      error
		wantStatus int
	}{
		{"postgres duplicate", errors.New(`duplicate key value violates unique constraint "idx_members_email"`), http.StatusBadRequest},
		{"mysql duplicate", errors.New("Error 1062: Duplicate entry 'ada@club.dev' for key 'email'"), http.StatusBadRequest},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: members.email"), http.StatusBadRequest},
		{"foreign key", errors.New(`insert or update on table "tasks" violates foreign key constraint`), http.StatusBadRequest},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), http.StatusServiceUnavailable},
		{"anything else", errors.New("syntax error at or near"), http.StatusInternalServerError},
		{"nil cause", nil, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := NewDatabaseError("create", "member", tc.cause)
			assert.Equal(t, tc.wantStatus, apiErr.StatusCode)
		})
	}
}

func TestNewDatabaseErrorSentinels(t *testing.T) {
	conflict := NewDatabaseError("create", "member", errors.New("duplicate key value"))
	assert.True(t, errors.Is(conflict, ErrAlreadyExists))

	missing := NewDatabaseError("find", "member", gorm.ErrRecordNotFound)
	assert.True(t, IsNotFound(missing))
}

func TestApiErrUnwrap(t *testing.T) {
	err := NewForbiddenError("authors only")
	assert.True(t, IsForbidden(err))
	assert.Contains(t, err.Error(), "authors only")
}
