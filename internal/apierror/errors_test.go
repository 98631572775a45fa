package apierror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("loading product: %w", NotFound("Product not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestError_StatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated:          http.StatusUnauthorized,
		KindCrossTenantAccess:        http.StatusForbidden,
		KindReferentialDeleteBlocked: http.StatusConflict,
		KindInsufficientStock:        http.StatusConflict,
		KindInvalidInput:             http.StatusBadRequest,
		Kind("unknown"):              http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, E(kind, "x").Status(), string(kind))
	}
}

func TestAs_ExtractsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", E(KindConflict, "duplicate"))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "duplicate", e.Envelope().Detail)
	assert.Equal(t, KindConflict, e.Envelope().Code)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
