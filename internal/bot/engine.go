package bot

import "fmt"

// Bot copy. WelcomeMessage doubles as the main menu; the numbered entries
// line up with the quick-reply options attached to menu replies.
const (
	WelcomeMessage = "Welcome! Would you like to:\n1. Encode a message\n2. Decode a message"
	EncodePrompt   = "Please enter the text you'd like to encode:"
	DecodePrompt   = "Please paste the emoji message you'd like to decode:"
	InvalidOption  = "Please select a valid option (1 or 2)"
)

// Reply is what the bot says back. Options, when non-empty, become
// quick-reply affordances on the platform; order matches the menu.
type Reply struct {
	Text    string
	Options []string
}

// TransformGateway is the external encode/decode collaborator. Both
// operations are synchronous and side-effect free; either may fail for
// inputs incompatible with the encoding scheme.
type TransformGateway interface {
	Encode(carrier, text string) (string, error)
	Decode(text string) (string, error)
}

// Engine is the conversation state machine. Step is a pure transition
// function over sessions; it never blocks and never leaves a session
// wedged in StepAwaitingInput.
type Engine struct {
	gateway TransformGateway
	carrier string
}

// NewEngine creates an engine that encodes onto the given fixed carrier.
func NewEngine(gateway TransformGateway, carrier string) *Engine {
	return &Engine{gateway: gateway, carrier: carrier}
}

func menuOptions() []string {
	return []string{"1", "2"}
}

// Step advances the session for one inbound message and returns the new
// session plus the reply to deliver.
func (e *Engine) Step(s Session, text string) (Session, Reply) {
	switch s.Step {
	case StepAwaitingInput:
		return e.stepAwaitingInput(s, text)
	default:
		return e.stepInitial(s, text)
	}
}

func (e *Engine) stepInitial(s Session, text string) (Session, Reply) {
	switch text {
	case "1":
		return s.awaiting(TransformEncode), Reply{Text: EncodePrompt}
	case "2":
		return s.awaiting(TransformDecode), Reply{Text: DecodePrompt}
	default:
		// Covers empty text from non-text message types as well.
		return s, Reply{Text: InvalidOption, Options: menuOptions()}
	}
}

func (e *Engine) stepAwaitingInput(s Session, text string) (Session, Reply) {
	var (
		result string
		label  string
		err    error
	)
	switch s.Pending {
	case TransformDecode:
		label = "Decoded"
		result, err = e.gateway.Decode(text)
	default:
		// Always the fixed carrier; the user never picks one here.
		label = "Encoded"
		result, err = e.gateway.Encode(e.carrier, text)
	}

	// Success or failure, the session returns to the menu.
	next := s.reset()

	if err != nil {
		return next, Reply{
			Text:    fmt.Sprintf("Error: Invalid input for %s. %s", s.Pending, WelcomeMessage),
			Options: menuOptions(),
		}
	}
	return next, Reply{
		Text:    fmt.Sprintf("%s message:\n%s\n\n%s", label, result, WelcomeMessage),
		Options: menuOptions(),
	}
}
