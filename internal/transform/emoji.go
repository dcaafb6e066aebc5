// Package transform implements the glyph cipher: arbitrary UTF-8 text hidden
// inside a single visible emoji using Unicode variation selectors. Each
// payload byte maps to one of the 256 selectors (U+FE00..U+FE0F for 0-15,
// U+E0100..U+E01EF for 16-255) appended after the carrier rune; renderers
// ignore the selectors, so the message displays as the bare emoji.
package transform

import "strings"

// Carriers is the emoji palette offered for encoding. Entries must be free
// of variation selectors or decode would pick up the carrier itself.
var Carriers = []string{"😀", "😂", "😍", "😎", "🤔", "👻", "🎉", "🚀"}

// DefaultCarrier is the fixed reference emoji used for menu-driven encodes.
func DefaultCarrier() string {
	return Carriers[0]
}

const (
	vsBase    = 0xFE00  // VS1..VS16 carry bytes 0..15
	vsSupBase = 0xE0100 // VS17..VS256 carry bytes 16..255
)

// Error reports input the codec cannot process.
type Error struct {
	Op     string
	Reason string
}

func (e *Error) Error() string {
	return "transform: " + e.Op + ": " + e.Reason
}

// Codec implements the bot's transform gateway.
type Codec struct{}

// NewCodec creates a new glyph cipher codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode hides text inside the carrier emoji.
func (c *Codec) Encode(carrier, text string) (string, error) {
	if carrier == "" {
		return "", &Error{Op: "encode", Reason: "empty carrier"}
	}
	for _, r := range carrier {
		if _, ok := selectorToByte(r); ok {
			return "", &Error{Op: "encode", Reason: "carrier already contains a hidden payload"}
		}
	}

	var b strings.Builder
	b.WriteString(carrier)
	for _, by := range []byte(text) {
		b.WriteRune(byteToSelector(by))
	}
	return b.String(), nil
}

// Decode extracts the hidden text from an encoded message. Characters that
// are not variation selectors (the carrier, stray whitespace) are skipped.
func (c *Codec) Decode(text string) (string, error) {
	var payload []byte
	for _, r := range text {
		if by, ok := selectorToByte(r); ok {
			payload = append(payload, by)
		}
	}
	if len(payload) == 0 {
		return "", &Error{Op: "decode", Reason: "no hidden payload found"}
	}
	return string(payload), nil
}

func byteToSelector(b byte) rune {
	if b < 16 {
		return rune(vsBase + int(b))
	}
	return rune(vsSupBase + int(b) - 16)
}

func selectorToByte(r rune) (byte, bool) {
	switch {
	case r >= vsBase && r <= vsBase+15:
		return byte(r - vsBase), true
	case r >= vsSupBase && r <= vsSupBase+239:
		return byte(r-vsSupBase) + 16, true
	default:
		return 0, false
	}
}
