package provider

import (
	"context"
	"fmt"
)

// Mock is an in-memory provider for testing and offline runs.
type Mock struct {
	Translations map[string]string // Map of source text to translation
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received
}

// NewMock creates a new mock provider with default translations.
func NewMock() *Mock {
	return &Mock{
		Translations: map[string]string{
			"Sign out":                "Вийти",
			"Settings":                "Налаштування",
			"Search":                  "Пошук",
			"Welcome, {displayName}!": "Ласкаво просимо, {displayName}!",
		},
	}
}

// Translate returns mock translations.
func (m *Mock) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			// Return bracketed text for unknown translations
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}

	return results, nil
}

// Reset resets the call count and last request.
func (m *Mock) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify Mock implements Provider
var _ Provider = (*Mock)(nil)
