package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/slack-go/slack"
)

// OpsAlerter surfaces failed driver notifications in a Slack channel so an
// operator can follow up by phone. A nil alerter is a no-op.
type OpsAlerter struct {
	client    *slack.Client
	channelID string
	timeout   time.Duration
}

func NewOpsAlerter(token, channelID string, timeout time.Duration) *OpsAlerter {
	if token == "" || channelID == "" {
		return nil
	}

	return &OpsAlerter{
		client:    slack.New(token),
		channelID: channelID,
		timeout:   timeout,
	}
}

func (o *OpsAlerter) AlertDeliveryFailure(ctx context.Context, recipient, reason string) {
	if o == nil {
		return
	}

	sendMessageCtx, sendMessageCancel := context.WithTimeout(ctx, o.timeout)
	defer sendMessageCancel()

	text := fmt.Sprintf(":rotating_light: driver notification to %s failed: %s", recipient, reason)
	_, _, _, err := o.client.SendMessageContext(sendMessageCtx, o.channelID, slack.MsgOptionText(text, false))
	if err != nil {
		slog.Error("failed to post delivery failure alert to slack", slog.String("error", err.Error()))
	}
}
