package bot

// Step identifies where a user is in the menu flow.
type Step int

const (
	// StepInitial means the user is at the main menu.
	StepInitial Step = iota
	// StepAwaitingInput means the user picked a transform and the next
	// message is its input.
	StepAwaitingInput
)

func (s Step) String() string {
	switch s {
	case StepAwaitingInput:
		return "awaiting_input"
	default:
		return "initial"
	}
}

// TransformType is the pending operation chosen from the menu.
type TransformType int

const (
	TransformNone TransformType = iota
	TransformEncode
	TransformDecode
)

func (t TransformType) String() string {
	switch t {
	case TransformEncode:
		return "encode"
	case TransformDecode:
		return "decode"
	default:
		return "none"
	}
}

// Session is the per-user conversation state. Pending is set iff Step is
// StepAwaitingInput.
type Session struct {
	UserID  string
	Step    Step
	Pending TransformType
}

// NewSession returns a fresh session at the main menu.
func NewSession(userID string) Session {
	return Session{UserID: userID, Step: StepInitial, Pending: TransformNone}
}

// awaiting returns the session transitioned into StepAwaitingInput for t.
func (s Session) awaiting(t TransformType) Session {
	return Session{UserID: s.UserID, Step: StepAwaitingInput, Pending: t}
}

// reset returns the session back at the main menu.
func (s Session) reset() Session {
	return NewSession(s.UserID)
}
