package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := &Settings{}

	if got := s.GetInventory(); got != DefaultInventory {
		t.Errorf("GetInventory() default = %q, want %q", got, DefaultInventory)
	}
	if got := s.GetReportDir(); got != DefaultReportDir {
		t.Errorf("GetReportDir() default = %q, want %q", got, DefaultReportDir)
	}
	if got := s.GetJournal(); !strings.HasSuffix(got, filepath.Join(".netsurvey", "journal.jsonl")) {
		t.Errorf("GetJournal() default = %q", got)
	}
	if s.RedisAddr != "" {
		t.Errorf("RedisAddr should be empty, got %q", s.RedisAddr)
	}
}

func TestSettings_SetGet(t *testing.T) {
	s := &Settings{}

	tests := []struct {
		key   string
		value string
		check func() string
	}{
		{"inventory", "/etc/netsurvey/lab.toml", s.GetInventory},
		{"report_dir", "/var/lib/netsurvey", s.GetReportDir},
		{"redis_addr", "127.0.0.1:6379", func() string { return s.RedisAddr }},
		{"journal", "/tmp/j.jsonl", s.GetJournal},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := s.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got := tt.check(); got != tt.value {
				t.Errorf("after Set(%q) got %q, want %q", tt.key, got, tt.value)
			}
			if got, _ := s.Get(tt.key); got != tt.value {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.value)
			}
		})
	}

	if err := s.Set("bogus", "x"); err == nil {
		t.Error("Set(bogus) should fail")
	}
	if _, err := s.Get("bogus"); err == nil {
		t.Error("Get(bogus) should fail")
	}
}

func TestKeys(t *testing.T) {
	want := []string{"inventory", "journal", "redis_addr", "report_dir"}
	got := Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{Inventory: "a", ReportDir: "b", RedisAddr: "c", Journal: "d"}
	s.Clear()
	if *s != (Settings{}) {
		t.Errorf("Clear() left %+v", s)
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	s := &Settings{Inventory: "lab.yaml", RedisAddr: "10.0.0.5:6379"}
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *loaded != *s {
		t.Errorf("loaded %+v, want %+v", loaded, s)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *s != (Settings{}) {
		t.Errorf("missing file should give empty settings, got %+v", s)
	}
}

func TestLoadFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on malformed JSON")
	}
}
