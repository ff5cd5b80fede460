// Package dict loads, saves, diffs, and builds the flat JSON dictionaries
// the localization engine consumes.
//
// A dictionary file is a single JSON object mapping source strings to their
// translations:
//
//	{
//	  "Sign out": "Вийти",
//	  "Welcome, {displayName}!": "Ласкаво просимо, {displayName}!"
//	}
package dict

import (
	"fmt"
	"io"
	"os"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/ZaguanLabs/domloc"
)

// Dictionary re-exports the engine's dictionary type.
type Dictionary = domloc.Dictionary

// Load decodes a dictionary from r.
func Load(r io.Reader) (Dictionary, error) {
	var d Dictionary
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return d, nil
}

// LoadFile loads a dictionary from a JSON file.
// The path is provided by the caller and is intentionally user-controlled.
func LoadFile(path string) (Dictionary, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, &domloc.DictionaryError{Source: path, Cause: err}
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, &domloc.DictionaryError{Source: path, Cause: err}
	}
	return d, nil
}

// Save writes a dictionary to w as indented JSON. Keys are emitted sorted,
// so saved files diff cleanly, and HTML in values is left unescaped.
func Save(w io.Writer, d Dictionary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// SaveFile writes a dictionary to a JSON file.
// The path is provided by the caller and is intentionally user-controlled.
func SaveFile(path string, d Dictionary) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return &domloc.DictionaryError{Source: path, Cause: err}
	}
	defer f.Close()

	if err := Save(f, d); err != nil {
		return &domloc.DictionaryError{Source: path, Cause: err}
	}
	return nil
}

// Conflicts returns the keys whose values are themselves dictionary keys.
// Such entries break the engine's settling contract: the resolver would keep
// rewriting its own output. Entries mapping a key to itself are not reported.
func Conflicts(d Dictionary) []string {
	var keys []string
	for k, v := range d {
		if v == k {
			continue
		}
		if _, ok := d[v]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
