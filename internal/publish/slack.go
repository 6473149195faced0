// Package publish posts rendered changelogs to a Slack incoming webhook.
//
// Slack rejects messages past roughly 4000 characters, so long changelogs
// are split on line boundaries into parts of at most 3900 characters and
// posted sequentially with a part indicator. Dry-run mode prints the
// would-be payloads instead of posting anything.
package publish

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	errs "gitlab.com/lanterman/loglady/internal/errors"
)

const (
	// maxMessageLength leaves headroom under Slack's 4000-character text
	// limit for the part indicator prefix.
	maxMessageLength = 3900

	postTimeout = 10 * time.Second
)

// Publisher sends changelog text to a single webhook.
type Publisher struct {
	WebhookURL string
	// Channel optionally overrides the webhook's default channel.
	Channel    string
	HTTPClient *http.Client
	// Out receives dry-run payloads. Defaults to stdout.
	Out io.Writer
	Log zerolog.Logger
}

// New creates a publisher for the given webhook with a 10-second post timeout.
func New(webhookURL, channel string) *Publisher {
	return &Publisher{
		WebhookURL: webhookURL,
		Channel:    channel,
		HTTPClient: &http.Client{Timeout: postTimeout},
		Out:        os.Stdout,
		Log:        zerolog.Nop(),
	}
}

// Publish posts the changelog text to the webhook, splitting it into parts
// when it exceeds the message size limit. It returns the number of messages
// posted (or that would be posted under dry-run).
func (p *Publisher) Publish(ctx context.Context, text string, dryRun bool) (int, error) {
	chunks := chunkMessage(text, maxMessageLength)

	messages := make([]*slack.WebhookMessage, len(chunks))
	for i, chunk := range chunks {
		body := chunk
		if len(chunks) > 1 {
			body = fmt.Sprintf("[Part %d/%d]\n\n%s", i+1, len(chunks), chunk)
		}
		messages[i] = &slack.WebhookMessage{Text: body, Channel: p.Channel}
	}

	if dryRun {
		fmt.Fprintln(p.Out, "=== DRY RUN MODE ===")
		fmt.Fprintln(p.Out, "Would post to Slack:")
		for _, msg := range messages {
			fmt.Fprintln(p.Out, msg.Text)
		}
		return len(messages), nil
	}

	for i, msg := range messages {
		if err := slack.PostWebhookCustomHTTPContext(ctx, p.WebhookURL, p.HTTPClient, msg); err != nil {
			if len(messages) > 1 {
				err = fmt.Errorf("part %d/%d: %w", i+1, len(messages), err)
			}
			return 0, errs.WebhookPostFailed(err)
		}
		p.Log.Debug().Int("part", i+1).Int("parts", len(messages)).Int("chars", len(msg.Text)).Msg("posted webhook message")
	}
	return len(messages), nil
}

// PublishFile reads a previously generated changelog file and posts it.
func (p *Publisher) PublishFile(ctx context.Context, path string, dryRun bool) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errs.OutputFileNotFound(path)
		}
		return 0, fmt.Errorf("reading changelog file: %w", err)
	}
	return p.Publish(ctx, string(content), dryRun)
}

// chunkMessage splits text into parts of at most max characters, breaking
// only on line boundaries. A single line longer than max is kept whole in
// its own oversized part rather than split mid-line.
func chunkMessage(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}

	var chunks []string
	var current []string
	length := 0
	for _, line := range strings.Split(text, "\n") {
		lineLength := len(line) + 1
		if length+lineLength > max && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = []string{line}
			length = lineLength
			continue
		}
		current = append(current, line)
		length += lineLength
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}
	return chunks
}
