package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolationsReportsLoadErrors(t *testing.T) {
	_, err := Violations(Boundary{
		Pattern:   "foodwhere/no/such/package",
		Forbidden: Under("foodwhere/internal"),
	})
	require.Error(t, err)
}

func TestViolationsFindsForbiddenImports(t *testing.T) {
	viols, err := Violations(Boundary{
		Pattern:   "foodwhere/internal/blob",
		Forbidden: Under("foodwhere/internal/infra/blob"),
	})
	require.NoError(t, err)
	assert.Contains(t, viols, "foodwhere/internal/blob: foodwhere/internal/infra/blob/fs")
}

func TestUnder(t *testing.T) {
	under := Under("foodwhere/internal")
	assert.True(t, under("foodwhere/internal"))
	assert.True(t, under("foodwhere/internal/core"))
	assert.False(t, under("foodwhere/internalx"))
	assert.False(t, under("testing/internal/testdeps"))
}
