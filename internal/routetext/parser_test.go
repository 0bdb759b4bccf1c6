package routetext

import "testing"

func TestParseRouteFromTo(t *testing.T) {
	o, d, ok := ParseRoute("from Bangladesh to Canada")
	if !ok {
		t.Fatalf("expected a match")
	}
	if o != "Bangladesh" || d != "Canada" {
		t.Fatalf("got (%q, %q)", o, d)
	}
}

func TestParseRouteBare(t *testing.T) {
	o, d, ok := ParseRoute("Bangladesh to Canada")
	if !ok {
		t.Fatalf("expected a match")
	}
	if o != "Bangladesh" || d != "Canada" {
		t.Fatalf("got (%q, %q)", o, d)
	}
}

func TestParseRouteNormalizesCase(t *testing.T) {
	o, d, ok := ParseRoute("FROM   united  kingdom TO united STATES")
	if !ok {
		t.Fatalf("expected a match")
	}
	if o != "United Kingdom" || d != "United States" {
		t.Fatalf("got (%q, %q)", o, d)
	}
}

func TestParseRouteNoMatch(t *testing.T) {
	for _, text := range []string{"hello", "to Canada", "Canada to", ""} {
		if o, d, ok := ParseRoute(text); ok {
			t.Fatalf("%q should not match, got (%q, %q)", text, o, d)
		}
	}
}

func TestParseRouteIsOnlyACandidate(t *testing.T) {
	// The bare pattern is permissive by design; unrelated two-part phrases
	// still parse and must be re-validated by the caller.
	o, d, ok := ParseRoute("i want to go")
	if !ok {
		t.Fatalf("permissive pattern should match")
	}
	if o != "I Want" || d != "Go" {
		t.Fatalf("got (%q, %q)", o, d)
	}
}
