package server

import (
	"errors"
	"net/http"
	"testing"

	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError_DuplicateKeyConflicts(t *testing.T) {
	duplicates := []error{
		gorm.ErrDuplicatedKey,
		errors.New(`duplicate key value violates unique constraint "idx_tax_zones_code"`),
		errors.New("Error 1062 (23000): Duplicate entry 'west-coast' for key 'idx_tax_zones_code'"),
		errors.New("constraint failed: UNIQUE constraint failed: tax_zones.code (2067)"),
	}

	for _, err := range duplicates {
		status, payload := mapError(err)
		assert.Equal(t, http.StatusConflict, status, "error %q", err)
		assert.Equal(t, "conflict", payload.Type)

		errType, _ := classifyErrorForLog(err)
		assert.Equal(t, "conflict", errType)
	}
}

func TestMapError_StatusMapping(t *testing.T) {
	status, payload := mapError(taxzonedomain.ErrZoneInUse)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", payload.Type)

	status, payload = mapError(taxzonedomain.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", payload.Type)

	status, payload = mapError(taxzonedomain.ErrInvalidName)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)

	status, payload = mapError(errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
}
