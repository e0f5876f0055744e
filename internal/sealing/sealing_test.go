package sealing

import "testing"

func TestSealUnsealRoundTrip(t *testing.T) {
	s := NewSealer(t.TempDir())
	plain := "dimension 2 exceeded upper bound 100.00"
	sealed, err := s.Seal(plain)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if sealed == plain {
		t.Error("sealed text should differ from plaintext")
	}
	unsealed, err := s.Unseal(sealed)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	if unsealed != plain {
		t.Errorf("Unseal() = %q, want %q", unsealed, plain)
	}
}

func TestSealEmptyString(t *testing.T) {
	s := NewSealer(t.TempDir())
	sealed, err := s.Seal("")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	unsealed, err := s.Unseal(sealed)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	if unsealed != "" {
		t.Errorf("Unseal(Seal(\"\")) = %q, want empty", unsealed)
	}
}

func TestKeyPersistsAcrossSealers(t *testing.T) {
	dir := t.TempDir()
	a := NewSealer(dir)
	sealed, err := a.Seal("persisted across instances")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	b := NewSealer(dir)
	unsealed, err := b.Unseal(sealed)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	if unsealed != "persisted across instances" {
		t.Errorf("Unseal() with re-opened key dir = %q, want original text", unsealed)
	}
}

func TestUnsealWithDifferentKeyFails(t *testing.T) {
	a := NewSealer(t.TempDir())
	sealed, err := a.Seal("secret text")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	b := NewSealer(t.TempDir())
	unsealed, err := b.Unseal(sealed)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	if unsealed == "secret text" {
		t.Error("expected different key dir to produce a different key and fail to recover plaintext")
	}
}
