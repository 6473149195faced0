package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "gitlab.com/lanterman/loglady/internal/errors"
)

type webhookPayload struct {
	Text    string `json:"text"`
	Channel string `json:"channel"`
}

// newWebhookServer records every payload posted to it and replies like a
// Slack webhook does.
func newWebhookServer(t *testing.T) (*httptest.Server, *[]webhookPayload) {
	t.Helper()
	var payloads []webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p webhookPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		payloads = append(payloads, p)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)
	return server, &payloads
}

func TestChunkMessage(t *testing.T) {
	tests := map[string]struct {
		text string
		max  int
		want []string
	}{
		"short text fits in one chunk": {
			text: "hello\nworld",
			max:  20,
			want: []string{"hello\nworld"},
		},
		"text at the limit fits": {
			text: strings.Repeat("a", 20),
			max:  20,
			want: []string{strings.Repeat("a", 20)},
		},
		"splits on line boundaries": {
			text: "12345\n67890\nabcde",
			max:  10,
			want: []string{"12345", "67890", "abcde"},
		},
		"packs multiple lines per chunk": {
			text: "aaaa\nbbbb\ncccc\ndddd",
			max:  12,
			want: []string{"aaaa\nbbbb", "cccc\ndddd"},
		},
		"keeps an oversized line whole": {
			text: "short\nthis-line-is-way-longer-than-max\nend",
			max:  10,
			want: []string{"short", "this-line-is-way-longer-than-max", "end"},
		},
		"preserves blank lines inside a chunk": {
			text: "aaaa\n\nbbbb\ncccc",
			max:  12,
			want: []string{"aaaa\n\nbbbb", "cccc"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkMessage(tt.text, tt.max))
		})
	}
}

func TestPublishSingleMessage(t *testing.T) {
	server, payloads := newWebhookServer(t)

	p := New(server.URL, "#changelog")
	n, err := p.Publish(context.Background(), "**Changelog - 2026.08**\n\n* Fixed a thing", false)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, *payloads, 1)
	assert.Equal(t, "**Changelog - 2026.08**\n\n* Fixed a thing", (*payloads)[0].Text)
	assert.Equal(t, "#changelog", (*payloads)[0].Channel)
}

func TestPublishChunked(t *testing.T) {
	server, payloads := newWebhookServer(t)

	var sb strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&sb, "* issue-%03d %s\n", i, strings.Repeat("x", 60))
	}
	text := sb.String()
	require.Greater(t, len(text), maxMessageLength)

	p := New(server.URL, "")
	n, err := p.Publish(context.Background(), text, false)

	require.NoError(t, err)
	assert.Equal(t, n, len(*payloads))
	require.Greater(t, n, 1)
	for i, payload := range *payloads {
		assert.True(t, strings.HasPrefix(payload.Text, fmt.Sprintf("[Part %d/%d]\n\n", i+1, n)))
		// Slack's real limit; the chunk budget leaves room for the prefix.
		assert.LessOrEqual(t, len(payload.Text), 4000)
		assert.Empty(t, payload.Channel)
	}
}

func TestPublishDryRun(t *testing.T) {
	var out bytes.Buffer

	// An unroutable webhook proves nothing is posted in dry-run mode.
	p := New("http://127.0.0.1:1/webhook", "#changelog")
	p.Out = &out

	n, err := p.Publish(context.Background(), "hello\nworld", true)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "=== DRY RUN MODE ===")
	assert.Contains(t, out.String(), "Would post to Slack:")
	assert.Contains(t, out.String(), "hello\nworld")
}

func TestPublishServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	p := New(server.URL, "")
	_, err := p.Publish(context.Background(), "text", false)

	require.Error(t, err)
	cliErr := errs.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, errs.API, cliErr.Category)
	assert.Contains(t, cliErr.Message, "posting changelog to webhook failed")
}

func TestPublishFile(t *testing.T) {
	server, payloads := newWebhookServer(t)

	path := filepath.Join(t.TempDir(), "changelog.md")
	require.NoError(t, os.WriteFile(path, []byte("**Changelog - 2026.08**\n"), 0o644))

	p := New(server.URL, "")
	n, err := p.PublishFile(context.Background(), path, false)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, *payloads, 1)
	assert.Equal(t, "**Changelog - 2026.08**\n", (*payloads)[0].Text)
}

func TestPublishFile_NotFound(t *testing.T) {
	p := New("http://127.0.0.1:1/webhook", "")
	_, err := p.PublishFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"), false)

	require.Error(t, err)
	cliErr := errs.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, errs.NotFound, cliErr.Category)
	assert.Contains(t, cliErr.Message, "missing.md")
}
