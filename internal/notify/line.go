// Package notify delivers alert batches over the LINE Messaging API.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/httputil"
	"github.com/linyc/twmonitor/pkg/logger"
)

// LineClient pushes text messages to a single LINE user.
type LineClient struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	baseURL      string
	channelToken string
	userID       string
}

// NewLineClient creates a LINE Messaging API client.
func NewLineClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *LineClient {
	return &LineClient{
		httpClient:   httpClient.WithHeader("Authorization", "Bearer "+cfg.Line.ChannelToken),
		logger:       log.WithField("module", "line"),
		baseURL:      cfg.Line.BaseURL,
		channelToken: cfg.Line.ChannelToken,
		userID:       cfg.Line.UserID,
	}
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []pushMessage `json:"messages"`
}

type pushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Push sends one text message. Callers batch all of an invocation's
// alerts into a single call.
func (c *LineClient) Push(ctx context.Context, message string) error {
	if c.channelToken == "" || c.userID == "" {
		return fmt.Errorf("LINE credentials are not configured")
	}

	payload := pushRequest{
		To:       c.userID,
		Messages: []pushMessage{{Type: "text", Text: message}},
	}

	resp, err := c.httpClient.PostJSON(ctx, c.baseURL+"/v2/bot/message/push", payload)
	if err != nil {
		return fmt.Errorf("LINE push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("LINE push rejected: status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.WithField("chars", len(message)).Debug("Push message sent")
	return nil
}
