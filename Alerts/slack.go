package Alerts

import (
	"os"

	"github.com/slack-go/slack"
)

// SendSlackAlert posts an alert message to the ops channel. A missing
// token or channel means Slack alerts are disabled and the call is a no-op.
func SendSlackAlert(text string) error {
	token := os.Getenv("VIGIL_SLACK_TOKEN")
	channel := os.Getenv("VIGIL_SLACK_CHANNEL")
	if token == "" || channel == "" {
		return nil
	}

	api := slack.New(token)
	_, _, err := api.PostMessage(
		channel,
		slack.MsgOptionText(text, false),
	)
	return err
}
