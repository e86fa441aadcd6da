// Package notify delivers order-event notifications to user-configured
// webhook endpoints, reshaping the neutral payload into the recipient
// platform's message format.
package notify

import (
	"encoding/json"
	"fmt"

	"orderdesk/internal/core/domain/model/webhook"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

const (
	slackColor   = "#36a64f"
	discordColor = 3581519
)

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text,omitempty"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
}

type slackMessage struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

// BuildPayload shapes the neutral notification for the given platform.
func BuildPayload(platform webhook.Platform, n ports.Notification) ([]byte, error) {
	switch platform {
	case webhook.PlatformSlack:
		return json.Marshal(slackPayload(n))
	case webhook.PlatformDiscord:
		return json.Marshal(discordPayload(n))
	case webhook.PlatformGeneric:
		return json.Marshal(n)
	default:
		return nil, errs.NewValueIsInvalidError("platform")
	}
}

func slackPayload(n ports.Notification) slackMessage {
	title := fmt.Sprintf("Order %s: %s", n.OrderID, n.Event)
	if n.TestMode {
		title = "[TEST] " + title
	}

	return slackMessage{
		Text: title,
		Attachments: []slackAttachment{{
			Color: slackColor,
			Title: n.OrderTitle,
			Text:  n.MessagePreview,
			Fields: []slackField{
				{Title: "Status", Value: n.Status, Short: true},
				{Title: "Triggered by", Value: actorLine(n.TriggeredBy), Short: true},
			},
			Footer: n.OrderID,
		}},
	}
}

func discordPayload(n ports.Notification) discordMessage {
	title := fmt.Sprintf("Order %s: %s", n.OrderID, n.Event)
	if n.TestMode {
		title = "[TEST] " + title
	}

	return discordMessage{
		Embeds: []discordEmbed{{
			Title:       title,
			Description: n.MessagePreview,
			Color:       discordColor,
			Fields: []discordField{
				{Name: "Order", Value: n.OrderTitle, Inline: true},
				{Name: "Status", Value: n.Status, Inline: true},
				{Name: "Triggered by", Value: actorLine(n.TriggeredBy), Inline: false},
			},
		}},
	}
}

func actorLine(a ports.NotificationActor) string {
	if a.Role == "" {
		return a.Name
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Role)
}
