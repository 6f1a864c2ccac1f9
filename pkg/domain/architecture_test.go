package domain

import (
	"foodwhere/testutil"
	"strings"
	"testing"
)

// The domain package must stay free of implementation packages so that
// stores and the CLI can depend on it without cycles.
func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertBoundary(t, testutil.Boundary{
		Pattern: "foodwhere/pkg/domain",
		Exempt: func(pkg string) bool {
			return strings.HasSuffix(pkg, ".test")
		},
		Forbidden: testutil.Under("foodwhere/internal"),
		Reason:    "domain must not depend on internal packages",
	})
}
