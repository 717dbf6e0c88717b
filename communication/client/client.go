package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"connect4/communication"

	"github.com/rs/zerolog/log"
)

var ErrSessionExpired = errors.New("session expired")

// ClientCommunicator talks to an engine server through one session. The
// session is opened on first use and reopened once if the server has
// expired it.
type ClientCommunicator struct {
	serverURL  string
	httpClient *http.Client

	mu        sync.Mutex
	sessionID string
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (cc *ClientCommunicator) Exchange(ctx context.Context, msg communication.Message) (communication.Message, error) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	reply, err := cc.exchange(ctx, msg)
	if errors.Is(err, ErrSessionExpired) {
		log.Info().Msgf("session %s expired, opening a new one", cc.sessionID)
		cc.sessionID = ""
		reply, err = cc.exchange(ctx, msg)
	}
	return reply, err
}

func (cc *ClientCommunicator) exchange(ctx context.Context, msg communication.Message) (communication.Message, error) {
	if cc.sessionID == "" {
		if err := cc.open(ctx); err != nil {
			return communication.Message{}, err
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return communication.Message{}, fmt.Errorf("failed to encode message: %w", err)
	}
	url := fmt.Sprintf("%s/v1/sessions/%s/messages", cc.serverURL, cc.sessionID)
	resp, err := cc.do(ctx, http.MethodPost, url, data)
	if err != nil {
		return communication.Message{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return communication.Message{}, ErrSessionExpired
	}
	var reply communication.Message
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return communication.Message{}, fmt.Errorf("failed to decode reply (status %d): %w", resp.StatusCode, err)
	}
	return reply, nil
}

func (cc *ClientCommunicator) open(ctx context.Context) error {
	resp, err := cc.do(ctx, http.MethodPost, cc.serverURL+"/v1/sessions", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to open session: status %d", resp.StatusCode)
	}
	var session communication.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return fmt.Errorf("failed to decode session: %w", err)
	}
	cc.sessionID = session.ID
	return nil
}

// Close deletes the server session, if one was opened.
func (cc *ClientCommunicator) Close(ctx context.Context) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.sessionID == "" {
		return nil
	}

	resp, err := cc.do(ctx, http.MethodDelete, fmt.Sprintf("%s/v1/sessions/%s", cc.serverURL, cc.sessionID), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	cc.sessionID = ""
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("failed to close session: status %d", resp.StatusCode)
	}
	return nil
}

func (cc *ClientCommunicator) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
