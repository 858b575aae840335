package config

import (
	"testing"

	"github.com/spf13/viper"

	"phorg/internal/checksum"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestResolveDefaults(t *testing.T) {
	v := newViper(map[string]any{"output": "/photos"})

	cfg, err := Resolve(v, []string{"/inbox"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "/photos" {
		t.Fatalf("unexpected output dir %q", cfg.OutputDir)
	}
	if cfg.Hash != checksum.Adler32 {
		t.Fatalf("expected adler32 default, got %q", cfg.Hash)
	}
	if cfg.Provider != ProviderExiftool {
		t.Fatalf("expected exiftool default, got %q", cfg.Provider)
	}
	if cfg.AlbumFromFilename || cfg.DedupeContent {
		t.Fatalf("boolean options should default off")
	}
}

func TestResolveReadsOptions(t *testing.T) {
	v := newViper(map[string]any{
		"output":              "/photos",
		"album-from-filename": true,
		"dedupe-content":      true,
		"hash":                "murmur3",
		"provider":            "native",
		"verbose":             true,
	})

	cfg, err := Resolve(v, []string{"/inbox", "/sdcard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.AlbumFromFilename || !cfg.DedupeContent || !cfg.Verbose {
		t.Fatalf("boolean options not resolved: %+v", cfg)
	}
	if cfg.Hash != checksum.Murmur3 {
		t.Fatalf("expected murmur3, got %q", cfg.Hash)
	}
	if cfg.Provider != ProviderNative {
		t.Fatalf("expected native provider, got %q", cfg.Provider)
	}
	if len(cfg.Inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %v", cfg.Inputs)
	}
}

func TestResolveValidation(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]any
		inputs []string
	}{
		{"missing output", map[string]any{}, []string{"/inbox"}},
		{"missing inputs", map[string]any{"output": "/photos"}, nil},
		{"bad hash", map[string]any{"output": "/photos", "hash": "sha1"}, []string{"/inbox"}},
		{"bad provider", map[string]any{"output": "/photos", "provider": "magic"}, []string{"/inbox"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Resolve(newViper(tc.values), tc.inputs); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
