// Package testutil holds test helpers that enforce package boundaries.
package testutil

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Boundary describes an import rule: packages outside Exempt must not import
// any path matching Forbidden.
type Boundary struct {
	Pattern   string
	Exempt    func(pkgPath string) bool
	Forbidden func(importPath string) bool
	Reason    string
}

// Violations loads the packages named by b.Pattern, test variants included,
// and returns "pkg: import" pairs that break the rule, sorted. A package that
// fails to load is an error rather than a pass.
func Violations(b Boundary) ([]string, error) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, b.Pattern)
	if err != nil {
		return nil, err
	}
	var loadErrs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, fmt.Errorf("%s: %w", pkg.PkgPath, e))
		}
	}
	if len(loadErrs) > 0 {
		return nil, errors.Join(loadErrs...)
	}
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if b.Exempt != nil && b.Exempt(pkg.PkgPath) {
			continue
		}
		for importPath := range pkg.Imports {
			if b.Forbidden(importPath) {
				seen[pkg.PkgPath+": "+importPath] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// AssertBoundary fails t for every violation of b.
func AssertBoundary(t testing.TB, b Boundary) {
	t.Helper()
	viols, err := Violations(b)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	for _, v := range viols {
		t.Errorf("forbidden import %s (%s)", v, b.Reason)
	}
}

// Under returns a predicate matching prefix itself and everything below it.
func Under(prefix string) func(string) bool {
	return func(path string) bool {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
}
