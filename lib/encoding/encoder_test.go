package encoding

import (
	"errors"
	"testing"
)

func sample() map[string]any {
	return map[string]any{
		"count": 3,
		"label": "clicks",
		"components": map[string]any{
			"component-Counter-0": 1,
		},
	}
}

func TestNewEncoder(t *testing.T) {
	// Should work with any key length (derives 32-byte key)
	if _, err := NewEncoder([]byte("short")); err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this-is-a-32-byte-key-for-aes!!!")); err != nil {
		t.Fatalf("NewEncoder with 32-byte key failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	for _, sensitive := range []bool{false, true} {
		token, err := enc.EncodeMap(sample(), sensitive)
		if err != nil {
			t.Fatalf("EncodeMap(sensitive=%v) failed: %v", sensitive, err)
		}

		got, err := enc.DecodeMap(token, sensitive)
		if err != nil {
			t.Fatalf("DecodeMap(sensitive=%v) failed: %v", sensitive, err)
		}

		if got["count"] != int64(3) {
			t.Errorf("count = %#v, want int64(3)", got["count"])
		}
		if got["label"] != "clicks" {
			t.Errorf("label = %#v, want clicks", got["label"])
		}
		comps, ok := got["components"].(map[string]any)
		if !ok {
			t.Fatalf("components = %T, want map[string]any", got["components"])
		}
		if comps["component-Counter-0"] != int64(1) {
			t.Errorf("component slice = %#v, want int64(1)", comps["component-Counter-0"])
		}
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))
	token, err := enc.EncodeMap(sample(), false)
	if err != nil {
		t.Fatalf("EncodeMap failed: %v", err)
	}

	tampered := token[:len(token)-2] + "XX"
	if _, err := enc.DecodeMap(tampered, false); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("expected ErrSignatureInvalid, got: %v", err)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))
	token, err := enc.EncodeMap(sample(), true)
	if err != nil {
		t.Fatalf("EncodeMap failed: %v", err)
	}

	tampered := token[:len(token)-2] + "XX"
	if _, err := enc.DecodeMap(tampered, true); err == nil {
		t.Error("expected error for tampered ciphertext, got nil")
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))
	if _, err := enc.DecodeMap("invalidbase64withoutseparator", false); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got: %v", err)
	}
	if _, err := enc.DecodeMap("AA", true); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for short ciphertext, got: %v", err)
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	token, err := enc1.EncodeMap(sample(), false)
	if err != nil {
		t.Fatalf("EncodeMap failed: %v", err)
	}
	if _, err := enc2.DecodeMap(token, false); err == nil {
		t.Error("expected error when decoding with different key")
	}
}

func TestEmptyMap(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))
	token, err := enc.EncodeMap(map[string]any{}, false)
	if err != nil {
		t.Fatalf("EncodeMap failed: %v", err)
	}
	got, err := enc.DecodeMap(token, false)
	if err != nil {
		t.Fatalf("DecodeMap failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}
