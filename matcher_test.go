package domloc

import "testing"

func TestDisplayNameMatcher_Match(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		ok     bool
		prefix string
		person string
		suffix string
	}{
		{
			name:   "greeting with exclamation",
			input:  "Welcome, Alice!",
			ok:     true,
			prefix: "Welcome",
			person: "Alice",
			suffix: "!",
		},
		{
			name:   "no exclamation",
			input:  "Hello, Bob",
			ok:     true,
			prefix: "Hello",
			person: "Bob",
			suffix: "",
		},
		{
			name:   "trailing text after exclamation",
			input:  "Welcome, Bob! Great to see you",
			ok:     true,
			prefix: "Welcome",
			person: "Bob",
			suffix: "! Great to see you",
		},
		{
			name:   "multi-word name",
			input:  "Good morning, Alice Smith!",
			ok:     true,
			prefix: "Good morning",
			person: "Alice Smith",
			suffix: "!",
		},
		{
			name:   "split at last separator",
			input:  "Congrats, again, Dana!",
			ok:     true,
			prefix: "Congrats, again",
			person: "Dana",
			suffix: "!",
		},
		{
			name:  "no separator",
			input: "Welcome Alice!",
			ok:    false,
		},
		{
			name:  "empty name",
			input: "Hey, !",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
	}

	m := DisplayNameMatcher{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.input)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Prefix != tt.prefix || got.Name != tt.person || got.Suffix != tt.suffix {
				t.Errorf("Match(%q) = %+v, want prefix=%q name=%q suffix=%q",
					tt.input, got, tt.prefix, tt.person, tt.suffix)
			}
		})
	}
}

func TestDisplayNameMatcher_Key(t *testing.T) {
	m := DisplayNameMatcher{}

	tm, ok := m.Match("Welcome, Alice!")
	if !ok {
		t.Fatal("Expected a match")
	}
	if key := m.Key(tm); key != "Welcome, {displayName}!" {
		t.Errorf("Key = %q, want 'Welcome, {displayName}!'", key)
	}

	tm, ok = m.Match("Welcome, Bob! Great to see you")
	if !ok {
		t.Fatal("Expected a match")
	}
	if key := m.Key(tm); key != "Welcome, {displayName}! Great to see you" {
		t.Errorf("Key = %q", key)
	}
}

func TestDisplayNameMatcher_Expand(t *testing.T) {
	m := DisplayNameMatcher{}

	tm := TemplateMatch{Prefix: "Вітаємо", Name: "Alice", Suffix: "!"}
	if got := m.Expand("Вітаємо, {displayName}!", tm); got != "Вітаємо, Alice!" {
		t.Errorf("Expand = %q, want 'Вітаємо, Alice!'", got)
	}

	// Only the first token is substituted.
	tm = TemplateMatch{Name: "X"}
	if got := m.Expand("{displayName} {displayName}", tm); got != "X {displayName}" {
		t.Errorf("Expand = %q, want 'X {displayName}'", got)
	}
}
