package dict

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/domloc"
)

func TestLoad(t *testing.T) {
	input := `{
  "Sign out": "Вийти",
  "Welcome, {displayName}!": "Ласкаво просимо, {displayName}!"
}`

	d, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(d) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(d))
	}
	if d["Sign out"] != "Вийти" {
		t.Errorf("d[\"Sign out\"] = %q, want %q", d["Sign out"], "Вийти")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load(strings.NewReader("["))
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

func TestSave_SortedAndUnescaped(t *testing.T) {
	d := Dictionary{
		"Sign out": "Вийти",
		"Need help? <a href=\"/support\">Contact support</a>": "Потрібна допомога? <a href=\"/support\">Звернутися до підтримки</a>",
		"About": "Про нас",
	}

	var buf strings.Builder
	if err := Save(&buf, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out := buf.String()

	// Keys come out sorted
	if strings.Index(out, `"About"`) > strings.Index(out, `"Sign out"`) {
		t.Error("Keys should be emitted in sorted order")
	}

	// Embedded markup stays readable
	if strings.Contains(out, `\u003c`) {
		t.Errorf("HTML should not be escaped, got:\n%s", out)
	}
	if !strings.Contains(out, "<a href=") {
		t.Errorf("Expected raw anchor markup in output, got:\n%s", out)
	}
}

func TestSaveFile_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uk_UA.json")

	d := Dictionary{"Sign out": "Вийти"}
	if err := SaveFile(path, d); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded["Sign out"] != "Вийти" {
		t.Errorf("Loaded %v", loaded)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	var dictErr *domloc.DictionaryError
	if !errors.As(err, &dictErr) {
		t.Errorf("Expected DictionaryError, got %T", err)
	}
}

func TestLoadFile_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)

	var dictErr *domloc.DictionaryError
	if !errors.As(err, &dictErr) {
		t.Fatalf("Expected DictionaryError, got %v", err)
	}
	if dictErr.Source != path {
		t.Errorf("Source = %q, want %q", dictErr.Source, path)
	}
}

func TestConflicts(t *testing.T) {
	d := Dictionary{
		"Color":    "Colour", // value is another key
		"Colour":   "Колір",
		"Fine":     "Fine", // identity, not a conflict
		"Sign out": "Вийти",
	}

	got := Conflicts(d)
	if len(got) != 1 || got[0] != "Color" {
		t.Errorf("Conflicts = %v, want [Color]", got)
	}
}

func TestConflicts_Clean(t *testing.T) {
	d := Dictionary{
		"Sign out": "Вийти",
		"Settings": "Налаштування",
	}

	if got := Conflicts(d); len(got) != 0 {
		t.Errorf("Conflicts = %v, want none", got)
	}
}
