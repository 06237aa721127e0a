// Package catalog loads and saves star catalogs and turns them into the
// star field consumed by the projector.
//
// Catalogs are stored as YAML (optionally gzip or zstd compressed) or as a
// SQLite database. The format is chosen from the file extension.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/litescript/ls-skydome/internal/astro"
)

// Format identifies a catalog file encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatYAMLGzip
	FormatYAMLZstd
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatYAMLGzip:
		return "yaml+gzip"
	case FormatYAMLZstd:
		return "yaml+zstd"
	case FormatSQLite:
		return "sqlite"
	}
	return "unknown"
}

// ErrUnknownFormat is returned for unrecognized file extensions.
var ErrUnknownFormat = errors.New("unknown catalog format")

// DetectFormat picks a format from a file name.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".yaml.gz"), strings.HasSuffix(name, ".yml.gz"):
		return FormatYAMLGzip
	case strings.HasSuffix(name, ".yaml.zst"), strings.HasSuffix(name, ".yml.zst"):
		return FormatYAMLZstd
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return FormatYAML
	case strings.HasSuffix(name, ".db"), strings.HasSuffix(name, ".sqlite"), strings.HasSuffix(name, ".sqlite3"):
		return FormatSQLite
	}
	return FormatUnknown
}

// Load reads and validates a catalog file.
func Load(ctx context.Context, path string) (astro.StarCatalog, error) {
	var (
		cat astro.StarCatalog
		err error
	)
	switch f := DetectFormat(path); f {
	case FormatYAML, FormatYAMLGzip, FormatYAMLZstd:
		cat, err = loadYAMLFile(path, f)
	case FormatSQLite:
		cat, err = LoadSQLite(ctx, path)
	default:
		return astro.StarCatalog{}, fmt.Errorf("loading %s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return astro.StarCatalog{}, fmt.Errorf("loading %s: %w", path, err)
	}
	if err := Validate(cat); err != nil {
		return astro.StarCatalog{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return cat, nil
}

// Save writes a catalog in the format implied by path.
func Save(ctx context.Context, path string, cat astro.StarCatalog) error {
	if err := Validate(cat); err != nil {
		return err
	}
	switch f := DetectFormat(path); f {
	case FormatYAML, FormatYAMLGzip, FormatYAMLZstd:
		return saveYAMLFile(path, f, cat)
	case FormatSQLite:
		return SaveSQLite(ctx, path, cat)
	default:
		return fmt.Errorf("saving %s: %w", path, ErrUnknownFormat)
	}
}

// ValidationError lists every invalid entry in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid catalog: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid catalog: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

// Validate checks names, coordinate ranges and finiteness.
func Validate(cat astro.StarCatalog) error {
	var problems []string
	seen := make(map[string]bool, len(cat.Stars))
	for i, s := range cat.Stars {
		label := fmt.Sprintf("star %d (%q)", i, s.Name)
		if s.Name == "" {
			problems = append(problems, fmt.Sprintf("star %d: empty name", i))
		} else if seen[s.Name] {
			problems = append(problems, label+": duplicate name")
		}
		seen[s.Name] = true

		for _, v := range []float64{s.RAdeg, s.DecDeg, s.Mag, s.BV} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				problems = append(problems, label+": non-finite value")
				break
			}
		}
		if s.RAdeg < 0 || s.RAdeg >= 360 {
			problems = append(problems, fmt.Sprintf("%s: RA %v out of [0, 360)", label, s.RAdeg))
		}
		if s.DecDeg < -90 || s.DecDeg > 90 {
			problems = append(problems, fmt.Sprintf("%s: Dec %v out of [-90, 90]", label, s.DecDeg))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
