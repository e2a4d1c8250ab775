package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the level loaded when none is named.
const Default = "level_01.json"

// Load reads a level, preferring levels/<name> on disk over the embedded copy
// so edits can be picked up without rebuilding.
func Load(name string) (*Level, error) {
	data, err := ReadRaw(name)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ReadRaw returns the level file bytes, disk first.
func ReadRaw(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return data, nil
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() ([]string, error) {
	return fs.Glob(LevelsFS, "*.json")
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if s != "" && !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
