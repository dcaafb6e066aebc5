package whatsapp

// WebhookEvent is the top-level structure received from Meta's webhook.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents a single entry in the webhook payload.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change represents one change notification inside an entry.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value carries the actual messaging payload of a change.
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Messages         []Message `json:"messages"`
}

// Metadata identifies the receiving business number.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Message is a single inbound message.
type Message struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
}

// Text contains the body of a text message.
type Text struct {
	Body string `json:"body"`
}

// InboundMessage is the normalized result of parsing a webhook event.
// Text is empty for non-text message types (image, audio, reaction).
type InboundMessage struct {
	SenderID  string
	MessageID string
	Text      string
}

// SendRequest is the wire envelope POSTed to the Cloud API send endpoint.
// It is only ever built inside this package.
type SendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             SendText `json:"text"`
}

// SendText is the text body of an outbound message.
type SendText struct {
	Body         string       `json:"body"`
	PreviewURL   *bool        `json:"preview_url,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

// QuickReply is a selectable button; its payload comes back as ordinary
// inbound text when tapped.
type QuickReply struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// SendResponse is the response from the Cloud API after sending a message.
type SendResponse struct {
	MessagingProduct string        `json:"messaging_product"`
	Messages         []SentMessage `json:"messages"`
	Error            *APIError     `json:"error,omitempty"`
}

// SentMessage identifies a delivered outbound message.
type SentMessage struct {
	ID string `json:"id"`
}

// APIError represents an error returned by the Graph API.
type APIError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	FBTraceID string `json:"fbtrace_id"`
}
