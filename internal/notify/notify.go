package notify

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappPrefix = "whatsapp:"

// MessageCreator is the slice of the Twilio REST client the gateway needs.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Result describes a single delivery attempt. It is always fully populated;
// the gateway never returns an error.
type Result struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"message_sid,omitempty"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	To         string `json:"to"`
	Channel    string `json:"channel"`
}

// Gateway sends driver-facing WhatsApp messages through Twilio. With no
// credentials configured it stays up and reports every send as a structured
// failure instead of crashing the dispatch flow.
type Gateway struct {
	messages MessageCreator // nil when unconfigured
	from     string
	ops      *OpsAlerter
}

func NewGateway(accountSID, authToken, from string, timeout time.Duration, ops *OpsAlerter) *Gateway {
	if accountSID == "" || authToken == "" {
		slog.Warn("twilio credentials not set, driver notifications disabled")
		return &Gateway{from: from, ops: ops}
	}

	base := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(accountSID, authToken),
		HTTPClient:  &http.Client{Timeout: timeout},
	}
	base.SetAccountSid(accountSID)

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{Client: base})

	return &Gateway{
		messages: rest.Api,
		from:     from,
		ops:      ops,
	}
}

// NewGatewayWithCreator wires an alternate provider implementation, used by
// tests.
func NewGatewayWithCreator(mc MessageCreator, from string, ops *OpsAlerter) *Gateway {
	return &Gateway{messages: mc, from: from, ops: ops}
}

// HospitalAssignment is the payload for the destination message sent to a
// driver when a dispatch is created.
type HospitalAssignment struct {
	AmbulanceID     string
	HospitalName    string
	HospitalAddress string
	PatientInfo     string
	ETA             string
}

func (g *Gateway) SendHospitalAssignment(ctx context.Context, driverPhone string, a HospitalAssignment) Result {
	return g.send(ctx, driverPhone, formatHospitalAssignment(a))
}

// SendUpdate delivers a free-form update to a driver mid-dispatch.
func (g *Gateway) SendUpdate(ctx context.Context, driverPhone, ambulanceID, updateType, details string) Result {
	if updateType == "" {
		updateType = "UPDATE"
	}
	return g.send(ctx, driverPhone, formatUpdate(ambulanceID, updateType, details))
}

func (g *Gateway) send(ctx context.Context, to, body string) Result {
	result := Result{To: to, Channel: "whatsapp"}

	if g.messages == nil {
		result.Error = "twilio not configured, message not sent"
		return result
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(g.from)
	params.SetTo(whatsappAddress(to))
	params.SetBody(body)

	msg, err := g.messages.CreateMessage(params)
	if err != nil {
		result.Error = err.Error()
		slog.Error("failed to send whatsapp message", slog.String("to", to), slog.String("error", err.Error()))
		g.ops.AlertDeliveryFailure(ctx, to, err.Error())
		return result
	}

	result.Success = true
	if msg.Sid != nil {
		result.MessageSID = *msg.Sid
	}
	if msg.Status != nil {
		result.Status = *msg.Status
	}

	slog.Debug("whatsapp message sent", slog.String("to", to), slog.String("message_sid", result.MessageSID))
	return result
}

// whatsappAddress maps an E.164 number onto Twilio's WhatsApp addressing
// scheme without touching the caller-visible number.
func whatsappAddress(phone string) string {
	if strings.HasPrefix(phone, whatsappPrefix) {
		return phone
	}
	return whatsappPrefix + phone
}
