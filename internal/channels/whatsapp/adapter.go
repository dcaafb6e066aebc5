package whatsapp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rjcarver/glyphbot/internal/bot"
	"github.com/rjcarver/glyphbot/internal/observability/metrics"
	"github.com/rjcarver/glyphbot/pkg/logging"
)

var webhookTracer = otel.Tracer("glyphbot.internal.channels.whatsapp")

// Adapter is the WhatsApp channel adapter. It verifies the subscription
// handshake, dispatches inbound webhook messages through the session store
// and conversation engine, and delivers replies via the Cloud API client.
type Adapter struct {
	verifier *Verifier
	client   *Client
	sessions bot.Store
	engine   *bot.Engine
	metrics  *metrics.MessagingMetrics
	logger   *logging.Logger
}

// NewAdapter creates a new WhatsApp channel adapter.
func NewAdapter(client *Client, verifyToken string, sessions bot.Store, engine *bot.Engine, m *metrics.MessagingMetrics, logger *logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Default()
	}
	if client == nil {
		panic("whatsapp: client cannot be nil")
	}
	if sessions == nil {
		panic("whatsapp: session store cannot be nil")
	}
	if engine == nil {
		panic("whatsapp: engine cannot be nil")
	}
	return &Adapter{
		verifier: NewVerifier(verifyToken),
		client:   client,
		sessions: sessions,
		engine:   engine,
		metrics:  m,
		logger:   logger,
	}
}

// HandleVerification handles GET /webhooks/whatsapp (Meta challenge).
func (a *Adapter) HandleVerification(w http.ResponseWriter, r *http.Request) {
	a.verifier.HandleVerification(w, r)
}

// HandleWebhook handles POST /webhooks/whatsapp (inbound messages).
//
// Once the message is parsed and the session transition committed, the
// response is 200 regardless of delivery outcome: answering 5xx would make
// Meta redeliver the event and replay the transition. Delivery failures are
// logged and counted instead.
func (a *Adapter) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "whatsapp.webhook")
	defer span.End()
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.metrics.ObserveInbound("invalid")
		span.RecordError(err)
		writeJSONError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	msg, err := ParseInbound(body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			a.logger.Warn("whatsapp: rejecting webhook payload", "reason", verr.Reason)
		}
		a.metrics.ObserveInbound("invalid")
		span.RecordError(err)
		writeJSONError(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}
	span.SetAttributes(
		attribute.String("glyphbot.whatsapp.sender_id", msg.SenderID),
		attribute.String("glyphbot.whatsapp.message_id", msg.MessageID),
	)

	// get -> step -> put, atomic per user.
	var reply bot.Reply
	session := a.sessions.Update(msg.SenderID, func(s bot.Session) bot.Session {
		next, r := a.engine.Step(s, msg.Text)
		reply = r
		return next
	})
	a.logger.Info("whatsapp: inbound message handled",
		"sender_id", msg.SenderID,
		"message_id", msg.MessageID,
		"step", session.Step.String(),
	)

	// Exactly one send attempt; no retries here.
	if _, err := a.client.SendText(ctx, msg.SenderID, reply.Text, reply.Options); err != nil {
		a.logger.Error("whatsapp: failed to deliver reply",
			"sender_id", msg.SenderID,
			"error", err,
		)
		a.metrics.ObserveOutbound("error")
		span.RecordError(err)
	} else {
		a.metrics.ObserveOutbound("ok")
	}

	a.metrics.ObserveInbound("ok")
	a.metrics.ObserveWebhookLatency(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
