package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestBuildSystemPrompt(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	req := TranslateRequest{
		TargetLocale:  "uk_UA",
		SourceLocale:  "en",
		Context:       "E-commerce storefront",
		ExcludedTerms: []string{"{displayName}", "ACME"},
	}

	prompt := p.buildSystemPrompt(req)

	// Check key elements are present
	if !strings.Contains(prompt, "Ukrainian (Ukraine)") {
		t.Error("Prompt should contain target language name")
	}
	if !strings.Contains(prompt, "E-commerce storefront") {
		t.Error("Prompt should contain context")
	}
	if !strings.Contains(prompt, "{displayName}") || !strings.Contains(prompt, "ACME") {
		t.Error("Prompt should contain excluded terms")
	}
	if !strings.Contains(prompt, `"translations"`) {
		t.Error("Prompt should demand the translations response key")
	}
}

func TestBuildSystemPrompt_Defaults(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	prompt := p.buildSystemPrompt(TranslateRequest{TargetLocale: "uk_UA"})

	// Source defaults to English, context to generic web content
	if !strings.Contains(prompt, "English (United States)") {
		t.Error("Prompt should name the default source language")
	}
	if !strings.Contains(prompt, "general-purpose web page") {
		t.Error("Prompt should carry the default context line")
	}
	if strings.Contains(prompt, "# Exclusions") {
		t.Error("Prompt should omit the exclusions section without terms")
	}
}

func TestBuildUserMessage(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	req := TranslateRequest{
		Texts: []string{"Sign out", "Search"},
	}

	msg := p.buildUserMessage(req)

	if msg != `["Sign out","Search"]` {
		t.Errorf("Expected JSON array, got: %s", msg)
	}
}

func TestParseResponse_TranslationsKey(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	content := `{"translations": ["Вийти", "Пошук"]}`
	result, err := p.parseResponse(content, 2)

	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 translations, got %d", len(result))
	}

	if result[0] != "Вийти" || result[1] != "Пошук" {
		t.Errorf("Unexpected translations: %v", result)
	}
}

func TestParseResponse_DirectArray(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	content := `["Вийти", "Пошук"]`
	result, err := p.parseResponse(content, 2)

	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}

	if result[0] != "Вийти" || result[1] != "Пошук" {
		t.Errorf("Unexpected translations: %v", result)
	}
}

func TestParseResponse_FallbackArrayKey(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	// Some models return with a different key
	content := `{"results": ["Вийти", "Пошук"]}`
	result, err := p.parseResponse(content, 2)

	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}

	if result[0] != "Вийти" || result[1] != "Пошук" {
		t.Errorf("Unexpected translations: %v", result)
	}
}

func TestParseResponse_CountMismatch(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	content := `{"translations": ["Вийти"]}`
	_, err := p.parseResponse(content, 2)

	if err == nil {
		t.Error("Expected error for count mismatch")
	}
}

func TestParseResponse_Garbage(t *testing.T) {
	p := NewOpenAI(OpenAIConfig{APIKey: "test"})

	_, err := p.parseResponse("I'm sorry, I can't do that.", 1)
	if err == nil {
		t.Error("Expected error for non-JSON response")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"rate limited", &openai.APIError{HTTPStatusCode: 429}, true},
		{"server error", &openai.APIError{HTTPStatusCode: 500}, true},
		{"bad gateway", &openai.APIError{HTTPStatusCode: 502}, true},
		{"unauthorized", &openai.APIError{HTTPStatusCode: 401}, false},
		{"bad request", &openai.APIError{HTTPStatusCode: 400}, false},
		{"transport timeout", errors.New("dial tcp: i/o timeout"), true},
		{"connection refused", errors.New("connection refused"), true},
		{"plain error", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.expected {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestMock(t *testing.T) {
	m := NewMock()

	req := TranslateRequest{
		Texts:        []string{"Sign out", "Unknown text"},
		TargetLocale: "uk_UA",
	}

	result, err := m.Translate(context.Background(), req)
	if err != nil {
		t.Fatalf("Mock.Translate failed: %v", err)
	}

	if result[0] != "Вийти" {
		t.Errorf("Expected 'Вийти', got %q", result[0])
	}

	if result[1] != "[Unknown text]" {
		t.Errorf("Expected '[Unknown text]', got %q", result[1])
	}

	if m.CallCount != 1 {
		t.Errorf("Expected CallCount 1, got %d", m.CallCount)
	}
	if m.LastRequest == nil || m.LastRequest.TargetLocale != "uk_UA" {
		t.Errorf("LastRequest = %+v", m.LastRequest)
	}

	m.Reset()
	if m.CallCount != 0 || m.LastRequest != nil {
		t.Error("Reset should clear call state")
	}
}
