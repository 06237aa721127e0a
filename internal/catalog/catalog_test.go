package catalog

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/starfield"
)

func sample() astro.StarCatalog {
	return astro.StarCatalog{Stars: []astro.Star{
		{Name: "Sirius", RAdeg: 101.287, DecDeg: -16.716, Mag: -1.46, BV: 0.00},
		{Name: "Betelgeuse", RAdeg: 88.793, DecDeg: 7.407, Mag: 0.50, BV: 1.85},
		{Name: "Polaris", RAdeg: 37.954, DecDeg: 89.264, Mag: 2.02, BV: 0.60},
	}}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"stars.yaml", FormatYAML},
		{"dir/STARS.YML", FormatYAML},
		{"stars.yaml.gz", FormatYAMLGzip},
		{"stars.yml.zst", FormatYAMLZstd},
		{"stars.db", FormatSQLite},
		{"/tmp/x.sqlite", FormatSQLite},
		{"stars.json", FormatUnknown},
		{"stars", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"stars.yaml", "stars.yaml.gz", "stars.yaml.zst", "stars.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(ctx, path, sample()))

			got, err := Load(ctx, path)
			require.NoError(t, err)
			if diff := cmp.Diff(sample(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveSQLite_Replaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stars.db")

	require.NoError(t, SaveSQLite(ctx, path, sample()))
	smaller := astro.StarCatalog{Stars: sample().Stars[:1]}
	require.NoError(t, SaveSQLite(ctx, path, smaller))

	got, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, smaller, got)
}

func TestLoadSQLite_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	_, err := LoadSQLite(context.Background(), path)
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := Load(ctx, filepath.Join(dir, "stars.json"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Load(ctx, filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("stars:\n  - name: X\n    ra_deg: 400\n    dec_deg: 0\n    mag: 1\n    bv: 0\n"), 0o644))
	_, err = Load(ctx, bad)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 1)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("stars:\n  - name: X\n    colour: red\n"), 0o644))
	_, err = Load(ctx, unknown)
	assert.Error(t, err, "unknown fields are rejected")

	notGzip := filepath.Join(dir, "plain.yaml.gz")
	require.NoError(t, os.WriteFile(notGzip, []byte("stars: []\n"), 0o644))
	_, err = Load(ctx, notGzip)
	assert.Error(t, err)
}

func TestDecodeYAML_Empty(t *testing.T) {
	cat, err := DecodeYAML(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, cat.Stars)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(sample()))
	require.NoError(t, Validate(astro.DefaultStarCatalog()))

	cat := sample()
	cat.Stars = append(cat.Stars,
		astro.Star{Name: "Sirius", RAdeg: 1},
		astro.Star{Name: "", RAdeg: 1},
		astro.Star{Name: "Nan", RAdeg: math.NaN()},
		astro.Star{Name: "South", DecDeg: -91},
	)
	err := Validate(cat)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 4)
	assert.Contains(t, err.Error(), "4 problems")
}

func TestSizeForMagnitude(t *testing.T) {
	assert.Equal(t, MaxStarSize, SizeForMagnitude(-5))
	assert.Equal(t, MinStarSize, SizeForMagnitude(8))

	prev := math.Inf(1)
	for mag := -1.5; mag <= 4; mag += 0.5 {
		s := SizeForMagnitude(mag)
		assert.LessOrEqual(t, s, prev)
		prev = s
	}
}

func TestBuild(t *testing.T) {
	opts := BuildOptions{Seed: 3, Field: starfield.FieldOptions{Count: 50, Seed: 9, MinSize: 0.3, MaxSize: 1}}
	stars, err := Build(sample(), opts)
	require.NoError(t, err)
	require.Len(t, stars, 3+50)

	assert.Equal(t, "Sirius", stars[0].Name)
	assert.Equal(t, 1.85, stars[1].ColorIndex)
	assert.InDelta(t, 1, r3.Norm(stars[2].Dir), 1e-12)
	// Polaris sits next to the pole at -Y.
	assert.Less(t, stars[2].Dir.Y, -0.99)
	assert.Greater(t, stars[0].Size, stars[2].Size)

	again, err := Build(sample(), opts)
	require.NoError(t, err)
	assert.Equal(t, stars, again)

	_, err = Build(sample(), BuildOptions{Field: starfield.FieldOptions{Count: 5}})
	assert.Error(t, err, "field options are validated")
}
