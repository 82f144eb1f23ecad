package pixsnap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RecordMode || cfg.SeparateDirectoriesPerNamespace {
		t.Errorf("DefaultConfig() flags = %+v, want compare mode with flat layout", cfg)
	}
	if want := filepath.Join("testdata", "snapshots"); cfg.ReferenceDir != want {
		t.Errorf("ReferenceDir = %q, want %q", cfg.ReferenceDir, want)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		file    string
		content string
		want    Config
	}{
		{
			file: "pixsnap.toml",
			content: `record_mode = true
separate_directories_per_namespace = true
reference_dir = "golden"
`,
			want: Config{
				RecordMode:                      true,
				SeparateDirectoriesPerNamespace: true,
				ReferenceDir:                    "golden",
				RunDir:                          DefaultConfig().RunDir,
			},
		},
		{
			file: "pixsnap.yaml",
			content: `separate_directories_per_namespace: true
run_dir: out/artifacts
`,
			want: Config{
				SeparateDirectoriesPerNamespace: true,
				ReferenceDir:                    DefaultConfig().ReferenceDir,
				RunDir:                          "out/artifacts",
			},
		},
		{
			file:    "empty.yml",
			content: "",
			want:    DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			got, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig(missing) should fail")
	}

	ini := filepath.Join(dir, "pixsnap.ini")
	_ = os.WriteFile(ini, []byte("record_mode=1"), 0o600)
	if _, err := LoadConfig(ini); !errors.Is(err, ErrUnknownConfigFormat) {
		t.Errorf("LoadConfig(.ini) error = %v, want %v", err, ErrUnknownConfigFormat)
	}

	bad := filepath.Join(dir, "bad.toml")
	_ = os.WriteFile(bad, []byte("record_mode = [unterminated"), 0o600)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("LoadConfig(invalid toml) should fail")
	}
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv(EnvRecord, "1")
	t.Setenv(EnvSeparateDirs, "true")
	t.Setenv(EnvReferenceDir, "refs")
	t.Setenv(EnvRunDir, "runs")

	got := Config{}.FromEnv()
	want := Config{
		RecordMode:                      true,
		SeparateDirectoriesPerNamespace: true,
		ReferenceDir:                    "refs",
		RunDir:                          "runs",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestConfig_FromEnvInvalidIgnored(t *testing.T) {
	t.Setenv(EnvRecord, "sometimes")

	got := Config{RecordMode: true}.FromEnv()
	if !got.RecordMode {
		t.Error("invalid PIXSNAP_RECORD should keep the existing value")
	}
}
