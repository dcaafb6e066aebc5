package whatsapp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Verifier handles the one-shot Meta webhook subscription handshake.
type Verifier struct {
	verifyToken string
}

// NewVerifier creates a verifier for the configured token. An empty token
// never verifies; it is treated as a failed match, not an error.
func NewVerifier(verifyToken string) *Verifier {
	return &Verifier{verifyToken: verifyToken}
}

// HandleVerification handles the GET webhook verification challenge from
// Meta: 200 with the challenge echoed back iff mode is "subscribe" and the
// token matches, 403 otherwise.
func (v *Verifier) HandleVerification(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && v.verifyToken != "" && token == v.verifyToken {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, challenge)
		return
	}

	http.Error(w, "Forbidden", http.StatusForbidden)
}

// ParseInbound extracts the first inbound message from a raw webhook body.
// The entry[0].changes[0].value.messages[0] path is only partially trusted;
// any absent link, or a missing sender, yields a *ValidationError.
func ParseInbound(body []byte) (InboundMessage, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return InboundMessage{}, &ValidationError{Reason: "malformed JSON body"}
	}

	if len(event.Entry) == 0 {
		return InboundMessage{}, &ValidationError{Reason: "no entry"}
	}
	if len(event.Entry[0].Changes) == 0 {
		return InboundMessage{}, &ValidationError{Reason: "no changes"}
	}
	value := event.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		return InboundMessage{}, &ValidationError{Reason: "no messages"}
	}

	msg := value.Messages[0]
	if msg.From == "" {
		return InboundMessage{}, &ValidationError{Reason: "message has no sender"}
	}

	inbound := InboundMessage{
		SenderID:  msg.From,
		MessageID: msg.ID,
	}
	// Non-text message types carry no text object; the conversation engine
	// treats the empty string as an unrecognized option.
	if msg.Text != nil {
		inbound.Text = msg.Text.Body
	}
	return inbound, nil
}
