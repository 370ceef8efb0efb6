package internal_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "d3console/internal"

// TestTUIImportRestrictions ensures the TUI reaches the connection only through
// the api interfaces and the shared event types
func TestTUIImportRestrictions(t *testing.T) {
	allowedPrefixes := []string{
		"d3console/internal/api",               // Core API
		"d3console/internal/log",               // Logging
		"d3console/internal/markup",            // Display conversion
		"d3console/internal/theme",             // UI theming
		"d3console/internal/components",        // Shared UI pieces
		"d3console/internal/console/streaming", // Event types
		"d3console/internal/console/database",  // Journal records
		"d3console/internal/console",           // Color markers and Stats
		"d3console/internal/tui",               // TUI can import its own subpackages
	}

	forbiddenPrefixes := []string{
		"d3console/internal/metrics", // Wired in main only
		"d3console/internal/config",  // Wired in main only
	}

	checkImports(t, "./tui", allowedPrefixes, forbiddenPrefixes)
}

// TestConsoleImportRestrictions ensures the connection core never depends on a frontend
func TestConsoleImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"d3console/internal/tui",
		"d3console/internal/api",
		"d3console/internal/markup",
		"d3console/internal/metrics",
		"d3console/internal/theme",
		"d3console/internal/components",
	}

	checkImports(t, "./console", nil, forbiddenPrefixes)
}

// TestStreamingHasNoTransport ensures parsing stays independent of sockets,
// files and storage
func TestStreamingHasNoTransport(t *testing.T) {
	forbidden := map[string]bool{
		"net":                                 true,
		"os":                                  true,
		"database/sql":                        true,
		"d3console/internal/console":          true,
		"d3console/internal/console/database": true,
	}

	walkImports(t, "./console/streaming", func(path, importPath string) {
		if forbidden[importPath] {
			t.Errorf("FORBIDDEN import in %s: %s", path, importPath)
		}
	})
}

func checkImports(t *testing.T, packageDir string, allowedPrefixes, forbiddenPrefixes []string) {
	walkImports(t, packageDir, func(path, importPath string) {
		// Skip standard library and third-party imports
		if !strings.HasPrefix(importPath, modulePrefix) {
			return
		}

		// Check forbidden imports
		for _, forbidden := range forbiddenPrefixes {
			if strings.HasPrefix(importPath, forbidden) {
				t.Errorf("FORBIDDEN import in %s: %s", path, importPath)
			}
		}

		// Check allowed imports (if specified)
		if len(allowedPrefixes) > 0 {
			allowed := false
			for _, prefix := range allowedPrefixes {
				if strings.HasPrefix(importPath, prefix) {
					allowed = true
					break
				}
			}
			if !allowed {
				t.Errorf("DISALLOWED import in %s: %s (not in allowed list)", path, importPath)
			}
		}
	})
}

// walkImports calls check for every import of every non-test Go file under packageDir
func walkImports(t *testing.T, packageDir string, check func(path, importPath string)) {
	err := filepath.Walk(packageDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			return nil
		}

		for _, imp := range node.Imports {
			check(path, strings.Trim(imp.Path.Value, `"`))
		}
		return nil
	})

	if err != nil {
		t.Errorf("Failed to walk directory %s: %v", packageDir, err)
	}
}
