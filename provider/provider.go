// Package provider implements the translation backends the dictionary
// builder fills missing entries with, plus retry and rate-limit wrappers
// for composing them.
package provider

import "github.com/ZaguanLabs/domloc"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = domloc.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = domloc.TranslateRequest
