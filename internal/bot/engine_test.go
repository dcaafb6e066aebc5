package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway records calls and returns canned results.
type stubGateway struct {
	encodeResult string
	decodeResult string
	err          error

	encodeCarrier string
	encodeText    string
	decodeText    string
}

func (g *stubGateway) Encode(carrier, text string) (string, error) {
	g.encodeCarrier = carrier
	g.encodeText = text
	return g.encodeResult, g.err
}

func (g *stubGateway) Decode(text string) (string, error) {
	g.decodeText = text
	return g.decodeResult, g.err
}

func TestStepInitial(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantStep    Step
		wantPending TransformType
		wantText    string
		wantOptions []string
	}{
		{"select encode", "1", StepAwaitingInput, TransformEncode, EncodePrompt, nil},
		{"select decode", "2", StepAwaitingInput, TransformDecode, DecodePrompt, nil},
		{"unrecognized option", "banana", StepInitial, TransformNone, InvalidOption, []string{"1", "2"}},
		{"empty text", "", StepInitial, TransformNone, InvalidOption, []string{"1", "2"}},
		{"whitespace is not a menu pick", " 1", StepInitial, TransformNone, InvalidOption, []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(&stubGateway{}, "😀")
			next, reply := engine.Step(NewSession("user-1"), tt.input)

			assert.Equal(t, tt.wantStep, next.Step)
			assert.Equal(t, tt.wantPending, next.Pending)
			assert.Equal(t, "user-1", next.UserID)
			assert.Equal(t, tt.wantText, reply.Text)
			assert.Equal(t, tt.wantOptions, reply.Options)
		})
	}
}

func TestStepEncodeRoundTrip(t *testing.T) {
	gw := &stubGateway{encodeResult: "😀<hidden>"}
	engine := NewEngine(gw, "😀")

	session, reply := engine.Step(NewSession("user-1"), "1")
	require.Equal(t, StepAwaitingInput, session.Step)
	require.Equal(t, EncodePrompt, reply.Text)

	session, reply = engine.Step(session, "hello world")
	assert.Equal(t, "😀", gw.encodeCarrier, "encode must use the fixed carrier")
	assert.Equal(t, "hello world", gw.encodeText)
	assert.Equal(t, StepInitial, session.Step)
	assert.Equal(t, TransformNone, session.Pending)
	assert.Equal(t, "Encoded message:\n😀<hidden>\n\n"+WelcomeMessage, reply.Text)
	assert.Equal(t, []string{"1", "2"}, reply.Options)
}

func TestStepDecodeRoundTrip(t *testing.T) {
	gw := &stubGateway{decodeResult: "secret"}
	engine := NewEngine(gw, "😀")

	session, _ := engine.Step(NewSession("user-2"), "2")
	session, reply := engine.Step(session, "😀<hidden>")

	assert.Equal(t, "😀<hidden>", gw.decodeText)
	assert.Equal(t, StepInitial, session.Step)
	assert.Equal(t, "Decoded message:\nsecret\n\n"+WelcomeMessage, reply.Text)
	assert.Equal(t, []string{"1", "2"}, reply.Options)
}

func TestStepTransformFailureRecovers(t *testing.T) {
	t.Run("encode failure", func(t *testing.T) {
		gw := &stubGateway{err: errors.New("bad input")}
		engine := NewEngine(gw, "😀")

		session, _ := engine.Step(NewSession("user-3"), "1")
		session, reply := engine.Step(session, "\xff\xfe")

		assert.Equal(t, StepInitial, session.Step, "failure must still reset the session")
		assert.Equal(t, TransformNone, session.Pending)
		assert.Equal(t, "Error: Invalid input for encode. "+WelcomeMessage, reply.Text)
		assert.Equal(t, []string{"1", "2"}, reply.Options)
	})

	t.Run("decode failure", func(t *testing.T) {
		gw := &stubGateway{err: errors.New("no payload")}
		engine := NewEngine(gw, "😀")

		session, _ := engine.Step(NewSession("user-4"), "2")
		session, reply := engine.Step(session, "plain text")

		assert.Equal(t, StepInitial, session.Step)
		assert.Equal(t, "Error: Invalid input for decode. "+WelcomeMessage, reply.Text)
	})
}

func TestStepDeterministicFromInitial(t *testing.T) {
	// Selecting "1" yields the same transition regardless of prior history.
	gw := &stubGateway{encodeResult: "x"}
	engine := NewEngine(gw, "😀")

	session := NewSession("user-5")
	for i := 0; i < 3; i++ {
		var reply Reply
		session, reply = engine.Step(session, "1")
		require.Equal(t, StepAwaitingInput, session.Step)
		require.Equal(t, TransformEncode, session.Pending)
		require.Equal(t, EncodePrompt, reply.Text)
		session, _ = engine.Step(session, "payload")
		require.Equal(t, StepInitial, session.Step)
	}
}

func TestSessionInvariant(t *testing.T) {
	// Pending is set iff the session is awaiting input.
	engine := NewEngine(&stubGateway{}, "😀")

	fresh := NewSession("u")
	assert.Equal(t, TransformNone, fresh.Pending)

	awaiting, _ := engine.Step(fresh, "2")
	assert.Equal(t, StepAwaitingInput, awaiting.Step)
	assert.NotEqual(t, TransformNone, awaiting.Pending)

	done, _ := engine.Step(awaiting, "anything")
	assert.Equal(t, StepInitial, done.Step)
	assert.Equal(t, TransformNone, done.Pending)
}
