package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	plyfile "github.com/cobaltgray/go-plyfile"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := cfg.Format(); f != plyfile.BinaryLittleEndian {
		t.Errorf("format = %v", f)
	}
	if ct, _ := cfg.CountType(); ct != plyfile.Uint8 {
		t.Errorf("count type = %v", ct)
	}
	if l, _ := cfg.Level(); l != zapcore.WarnLevel {
		t.Errorf("level = %v", l)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "default_format: ascii\nlist_count_type: uint16\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := cfg.Format(); f != plyfile.ASCII {
		t.Errorf("format = %v", f)
	}
	if ct, _ := cfg.CountType(); ct != plyfile.Uint16 {
		t.Errorf("count type = %v", ct)
	}
	if l, _ := cfg.Level(); l != zapcore.DebugLevel {
		t.Errorf("level = %v", l)
	}
}

func TestLoadInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"format":     "default_format: binary\n",
		"count type": "list_count_type: float\n",
		"level":      "log_level: loud\n",
		"yaml":       "default_format: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load succeeded")
			}
		})
	}
}
