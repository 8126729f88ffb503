package cursor

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := New(40, `name = "Workout"`)
	token, err := Encode(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Offset != 40 {
		t.Fatalf("offset = %d, want 40", decoded.Offset)
	}
	if decoded.FilterHash != c.FilterHash {
		t.Fatalf("filter hash = %q, want %q", decoded.FilterHash, c.FilterHash)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := Decode("not base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestValidateFilterHash(t *testing.T) {
	c := New(0, `name = "Workout"`)
	if err := ValidateFilterHash(c, `name = "Workout"`); err != nil {
		t.Fatalf("unexpected mismatch: %v", err)
	}
	if err := ValidateFilterHash(c, `name = "Cooldown"`); err == nil {
		t.Fatal("expected mismatch for changed filter")
	}
}

func TestHashFilterEmpty(t *testing.T) {
	if HashFilter("") != "" {
		t.Fatal("expected empty hash for empty filter")
	}
}
