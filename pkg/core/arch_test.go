package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/leapsolve"

// nonTestImports returns import path -> importing file for the non-test
// Go files directly inside dir.
func nonTestImports(t *testing.T, dir string) map[string]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	imports := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[strings.Trim(imp.Path.Value, `"`)] = entry.Name()
		}
	}
	return imports
}

// TestCoreImportsOnly verifies pkg/core only imports pkg/token and stdlib.
func TestCoreImportsOnly(t *testing.T) {
	allowedExternal := map[string]bool{
		modulePath + "/pkg/token": true,
	}

	for importPath, file := range nonTestImports(t, ".") {
		// stdlib paths have no dot in the first element
		if !strings.Contains(importPath, ".") {
			continue
		}
		if !allowedExternal[importPath] {
			t.Errorf("%s imports forbidden package: %s", file, importPath)
		}
	}
}

// TestPkgDoesNotImportInternal verifies no public package depends on
// internal/, so the solver stays usable as a library.
func TestPkgDoesNotImportInternal(t *testing.T) {
	entries, err := os.ReadDir("..")
	if err != nil {
		t.Fatalf("Failed to read pkg directory: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		for importPath, file := range nonTestImports(t, filepath.Join("..", entry.Name())) {
			if strings.HasPrefix(importPath, modulePath+"/internal/") {
				t.Errorf("pkg/%s/%s imports internal package: %s", entry.Name(), file, importPath)
			}
		}
	}
}
