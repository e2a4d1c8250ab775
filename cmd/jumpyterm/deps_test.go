package main

import (
	"go/build"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/guilhermepo2/JumpyJump"

// moduleImports walks the module-local import graph from dir and returns
// every package reached, with the path that first imported it.
func moduleImports(t *testing.T, root, dir string) map[string]string {
	t.Helper()
	seen := map[string]string{}
	var walk func(dir, from string)
	walk = func(dir, from string) {
		pkg, err := build.Default.ImportDir(dir, 0)
		if err != nil {
			t.Fatalf("import %s: %v", dir, err)
		}
		for _, imp := range pkg.Imports {
			if _, ok := seen[imp]; ok {
				continue
			}
			seen[imp] = from
			if rel, ok := strings.CutPrefix(imp, modulePath+"/"); ok {
				walk(filepath.Join(root, filepath.FromSlash(rel)), imp)
			}
		}
	}
	walk(dir, "cmd/jumpyterm")
	return seen
}

func TestTerminalRunnerDoesNotLinkEbiten(t *testing.T) {
	imports := moduleImports(t, filepath.Join("..", ".."), ".")

	for _, core := range []string{"input", "physics", "player", "scene"} {
		if _, ok := imports[modulePath+"/"+core]; !ok {
			t.Fatalf("expected %s in the import graph", core)
		}
	}
	for imp, from := range imports {
		if strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten") {
			t.Fatalf("%s imports %s", from, imp)
		}
	}
}
