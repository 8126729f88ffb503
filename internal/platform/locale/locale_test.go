package locale

import "testing"

func TestResolveDefault(t *testing.T) {
	if got := Resolve(); got != "en-US" {
		t.Fatalf("Resolve() = %q, want en-US", got)
	}
	if got := Resolve("", "  "); got != "en-US" {
		t.Fatalf("Resolve(blank) = %q, want en-US", got)
	}
}

func TestResolveExactTag(t *testing.T) {
	if got := Resolve("pt-BR"); got != "pt-BR" {
		t.Fatalf("Resolve(pt-BR) = %q, want pt-BR", got)
	}
}

func TestResolveAcceptLanguageHeader(t *testing.T) {
	if got := Resolve("pt-BR;q=0.9, en;q=0.8"); got != "pt-BR" {
		t.Fatalf("Resolve(header) = %q, want pt-BR", got)
	}
}

func TestResolveBaseLanguageMatch(t *testing.T) {
	if got := Resolve("pt"); got != "pt-BR" {
		t.Fatalf("Resolve(pt) = %q, want pt-BR", got)
	}
}

func TestResolveUnknownFallsBack(t *testing.T) {
	if got := Resolve("zz-ZZ"); got != "en-US" {
		t.Fatalf("Resolve(zz-ZZ) = %q, want en-US", got)
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	// An explicit override wins over the Accept-Language fallback.
	if got := Resolve("pt-BR", "en-US"); got != "pt-BR" {
		t.Fatalf("Resolve(override, header) = %q, want pt-BR", got)
	}
}
