package transform

import (
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewCodec()

	tests := []struct {
		name string
		text string
	}{
		{"ascii", "hello world"},
		{"punctuation", "it's 42% done!"},
		{"unicode", "héllo wörld ümlauts ünd ß"},
		{"emoji payload", "secret 🎁 inside"},
		{"single byte", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := codec.Encode(DefaultCarrier(), tt.text)
			if err != nil {
				t.Fatal(err)
			}
			decoded, err := codec.Decode(encoded)
			if err != nil {
				t.Fatal(err)
			}
			if decoded != tt.text {
				t.Fatalf("round trip = %q, want %q", decoded, tt.text)
			}
		})
	}
}

func TestEncodeDisplaysAsCarrier(t *testing.T) {
	codec := NewCodec()
	encoded, err := codec.Encode("😎", "hidden")
	if err != nil {
		t.Fatal(err)
	}
	// The visible part is the carrier; everything after is selectors.
	if encoded[:len("😎")] != "😎" {
		t.Fatalf("encoded message does not start with carrier: %q", encoded)
	}
	for _, r := range encoded[len("😎"):] {
		if _, ok := selectorToByte(r); !ok {
			t.Fatalf("unexpected visible rune %q in payload", r)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	codec := NewCodec()

	t.Run("empty carrier", func(t *testing.T) {
		_, err := codec.Encode("", "text")
		var terr *Error
		if !errors.As(err, &terr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if terr.Op != "encode" {
			t.Fatalf("op = %s, want encode", terr.Op)
		}
	})

	t.Run("carrier with existing payload", func(t *testing.T) {
		encoded, err := codec.Encode("😀", "x")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := codec.Encode(encoded, "y"); err == nil {
			t.Fatal("expected error for already-encoded carrier")
		}
	})
}

func TestDecodeErrors(t *testing.T) {
	codec := NewCodec()

	tests := []struct {
		name string
		in   string
	}{
		{"plain text", "just some words"},
		{"bare emoji", "😀"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.in)
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("expected *Error, got %v", err)
			}
		})
	}
}

func TestSelectorMappingBoundaries(t *testing.T) {
	for _, b := range []byte{0, 15, 16, 127, 255} {
		r := byteToSelector(b)
		got, ok := selectorToByte(r)
		if !ok || got != b {
			t.Fatalf("byte %d did not survive selector mapping (rune %U)", b, r)
		}
	}
	if _, ok := selectorToByte('a'); ok {
		t.Fatal("plain rune must not map to a byte")
	}
}

func TestDefaultCarrier(t *testing.T) {
	if DefaultCarrier() != Carriers[0] {
		t.Fatal("default carrier must be the first palette entry")
	}
	codec := NewCodec()
	for _, c := range Carriers {
		if _, err := codec.Encode(c, "probe"); err != nil {
			t.Fatalf("palette carrier %q rejected: %v", c, err)
		}
	}
}
