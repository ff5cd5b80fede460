package dict

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ZaguanLabs/domloc"
)

// FileSource loads a dictionary from a local JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (domloc.Dictionary, error) {
	return LoadFile(s.Path)
}

// HTTPSource fetches a dictionary over HTTP. The fetch happens once, when
// the engine starts; there is no refresh.
type HTTPSource struct {
	URL    string
	Client *http.Client // Defaults to http.DefaultClient
}

func (s HTTPSource) Load(ctx context.Context) (domloc.Dictionary, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &domloc.DictionaryError{Source: s.URL, Cause: err}
	}
	req.Header.Set("User-Agent", domloc.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domloc.DictionaryError{Source: s.URL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domloc.DictionaryError{
			Source: s.URL,
			Cause:  fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	d, err := Load(resp.Body)
	if err != nil {
		return nil, &domloc.DictionaryError{Source: s.URL, Cause: err}
	}
	return d, nil
}

// Static wraps an in-memory dictionary as a Source.
type Static domloc.Dictionary

func (s Static) Load(ctx context.Context) (domloc.Dictionary, error) {
	return domloc.Dictionary(s), nil
}

// Verify the source types implement domloc.Source
var (
	_ domloc.Source = FileSource{}
	_ domloc.Source = HTTPSource{}
	_ domloc.Source = Static{}
)
