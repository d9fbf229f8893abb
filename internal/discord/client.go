package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"boardhook/internal/message"
)

const userAgent = "boardhook/0.1.0"

// Client posts rendered messages to Discord webhook endpoints. Messages
// without attachments go out as plain JSON; messages with attachments use
// multipart/form-data with a payload_json part plus one named file part per
// attachment, which is how the destination resolves attachment:// references.
//
// The client applies its own request timeout and performs no retries.
type Client struct {
	client *http.Client
}

// NewClient builds a Client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{client: &http.Client{Timeout: timeout}}
}

// Send delivers one message to webhookURL.
func (c *Client) Send(ctx context.Context, webhookURL string, msg message.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	var body io.Reader
	contentType := "application/json"
	if len(msg.Attachments) > 0 {
		buf, boundary, err := encodeMultipart(payload, msg.Attachments)
		if err != nil {
			return err
		}
		body = buf
		contentType = "multipart/form-data; boundary=" + boundary
	} else {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, body)
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func encodeMultipart(payload []byte, attachments []message.Attachment) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="payload_json"`)
	header.Set("Content-Type", "application/json")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create payload part: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return nil, "", fmt.Errorf("write payload part: %w", err)
	}

	for _, att := range attachments {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, att.Name, att.Filename))
		if att.MIME != "" {
			header.Set("Content-Type", att.MIME)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create attachment part %s: %w", att.Name, err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, "", fmt.Errorf("write attachment part %s: %w", att.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return buf, writer.Boundary(), nil
}
