package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPushoverEndpoint = "https://api.pushover.net/1/messages.json"

// Pushover posts plain-text messages to the Pushover API.
type Pushover struct {
	Token    string
	User     string
	Endpoint string
	Limit    int
	Client   *http.Client
}

func (p *Pushover) Send(ctx context.Context, msg Message) error {
	endpoint := strings.TrimSpace(p.Endpoint)
	if endpoint == "" {
		endpoint = defaultPushoverEndpoint
	}
	form := url.Values{}
	form.Set("token", p.Token)
	form.Set("user", p.User)
	if msg.Subject != "" {
		form.Set("title", msg.Subject)
	}
	form.Set("message", Truncate(msg.Text, p.Limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: pushover: %v", ErrSend, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: pushover: %s: %s", ErrSend, resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
