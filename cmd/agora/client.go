package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	model "github.com/djwooster/agora-leaderboard/internal/models"
)

// Client est un client HTTP minimal de l'API Agora
type Client struct {
	BaseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// apiEnvelope reflète utils.APIResponse côté serveur
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if !envelope.Success {
		return fmt.Errorf("%s", envelope.Error)
	}
	if out != nil && envelope.Data != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

func (c *Client) CreateChallenge(req model.NewChallengeRequest) (*model.ChallengeWithMetrics, error) {
	var out model.ChallengeWithMetrics
	if err := c.do(http.MethodPost, "/challenges", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetChallenge(shareToken string) (*model.ChallengeWithMetrics, error) {
	var out model.ChallengeWithMetrics
	if err := c.do(http.MethodGet, "/challenges/"+shareToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLeaderboard(shareToken string) ([]model.LeaderboardEntry, error) {
	var out []model.LeaderboardEntry
	if err := c.do(http.MethodGet, "/challenges/"+shareToken+"/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Join(shareToken string, req model.JoinRequest) (*model.Participant, error) {
	var out model.Participant
	if err := c.do(http.MethodPost, "/challenges/"+shareToken+"/participants", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpsertLogs(participantID string, req model.LogBatchRequest) error {
	return c.do(http.MethodPut, "/participants/"+participantID+"/logs", req, nil)
}

// WebsocketURL construit l'URL du canal de refresh d'un challenge
func (c *Client) WebsocketURL(shareToken string) string {
	url := c.BaseURL + "/challenges/" + shareToken + "/ws"
	url = strings.Replace(url, "https://", "wss://", 1)
	return strings.Replace(url, "http://", "ws://", 1)
}
