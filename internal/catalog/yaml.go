package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skydome/internal/astro"
)

// DecodeYAML reads a YAML catalog document.
func DecodeYAML(r io.Reader) (astro.StarCatalog, error) {
	var cat astro.StarCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		if err == io.EOF {
			return astro.StarCatalog{}, nil
		}
		return astro.StarCatalog{}, fmt.Errorf("decoding yaml: %w", err)
	}
	return cat, nil
}

// EncodeYAML writes a catalog as a YAML document.
func EncodeYAML(w io.Writer, cat astro.StarCatalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cat); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func loadYAMLFile(path string, f Format) (astro.StarCatalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return astro.StarCatalog{}, err
	}
	defer file.Close()

	var r io.Reader = file
	switch f {
	case FormatYAMLGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			return astro.StarCatalog{}, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	case FormatYAMLZstd:
		zr, err := zstd.NewReader(file, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return astro.StarCatalog{}, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	return DecodeYAML(r)
}

func saveYAMLFile(path string, f Format, cat astro.StarCatalog) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	switch f {
	case FormatYAMLGzip:
		gz := gzip.NewWriter(file)
		if err := EncodeYAML(gz, cat); err != nil {
			return err
		}
		return gz.Close()
	case FormatYAMLZstd:
		zw, err := zstd.NewWriter(file)
		if err != nil {
			return fmt.Errorf("opening zstd writer: %w", err)
		}
		if err := EncodeYAML(zw, cat); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}
	return EncodeYAML(file, cat)
}
