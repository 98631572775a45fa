package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDeviceNotRegistered means Expo no longer accepts the token. It is the only
// push error that deactivates a stored token.
var ErrDeviceNotRegistered = errors.New("push: device not registered")

// PushMessage is one Expo push notification.
type PushMessage struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Sound string                 `json:"sound,omitempty"`
}

type expoTicket struct {
	Status  string `json:"status"` // "ok" | "error"
	ID      string `json:"id"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type expoResponse struct {
	Data   []expoTicket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// ExpoClient posts notifications to the Expo push service. Transport and
// server errors count against the circuit breaker; per-ticket rejections do not.
type ExpoClient struct {
	url        string
	token      string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

func NewExpoClient(url, accessToken string) *ExpoClient {
	return &ExpoClient{
		url:        url,
		token:      accessToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		breaker:    NewCircuitBreaker(DefaultCBConfig("expo-push")),
	}
}

// BreakerState reports the circuit breaker state for health checks.
func (c *ExpoClient) BreakerState() string { return c.breaker.State().String() }

// Push sends msg and returns nil only when Expo accepted the ticket.
func (c *ExpoClient) Push(ctx context.Context, msg PushMessage) error {
	if msg.Sound == "" {
		msg.Sound = "default"
	}
	body, err := json.Marshal([]PushMessage{msg})
	if err != nil {
		return fmt.Errorf("push: marshal message: %w", err)
	}

	var result expoResponse
	err = c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("push: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("push: expo unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("push: expo returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("push: decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("push: %s: %s", result.Errors[0].Code, result.Errors[0].Message)
	}
	if len(result.Data) == 0 {
		return errors.New("push: empty ticket list")
	}
	ticket := result.Data[0]
	if ticket.Status == "ok" {
		return nil
	}
	if ticket.Details.Error == "DeviceNotRegistered" {
		return ErrDeviceNotRegistered
	}
	return fmt.Errorf("push: ticket rejected: %s", ticket.Message)
}
