// Package client is a Go client for the registration API: a thin HTTP
// wrapper plus a Form state machine mirroring the submission flow of the
// registration page. Local validation reuses the server's rules for
// immediate feedback; the server remains the authoritative check.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"congreso/internal/models"
)

// OutcomeKind classifies the result of one submission attempt.
type OutcomeKind string

const (
	OutcomeCreated            OutcomeKind = "created"
	OutcomeValidationFailed   OutcomeKind = "validation_failed"
	OutcomeCommissionNotFound OutcomeKind = "commission_not_found"
	OutcomeEmailConflict      OutcomeKind = "email_conflict"
	OutcomeInternalError      OutcomeKind = "internal_error"
	OutcomeNetworkFailure     OutcomeKind = "network_failure"
)

// Record is the created-registration payload the server returns on success.
type Record struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Outcome is the decoded result of a submission attempt.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Errors  []string
	Record  *Record
}

// Client talks to the registration API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

// SubmitRegistration posts a submission payload and classifies the response.
// Transport failures come back as OutcomeNetworkFailure; they are never
// retried automatically.
func (c *Client) SubmitRegistration(payload map[string]interface{}) Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Kind: OutcomeNetworkFailure, Message: fmt.Sprintf("failed to encode payload: %v", err)}
	}

	resp, err := c.httpClient.Post(c.baseURL+"/api/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: OutcomeNetworkFailure, Message: err.Error()}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Outcome{Kind: OutcomeNetworkFailure, Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	outcome := Outcome{Message: env.Message, Errors: env.Errors}
	switch {
	case resp.StatusCode == http.StatusCreated:
		outcome.Kind = OutcomeCreated
		var record Record
		if err := json.Unmarshal(env.Data, &record); err != nil {
			return Outcome{Kind: OutcomeNetworkFailure, Message: fmt.Sprintf("failed to decode created record: %v", err)}
		}
		outcome.Record = &record
	case resp.StatusCode == http.StatusConflict:
		outcome.Kind = OutcomeEmailConflict
	case resp.StatusCode == http.StatusBadRequest && len(env.Errors) > 0:
		outcome.Kind = OutcomeValidationFailed
	case resp.StatusCode == http.StatusBadRequest:
		// The only errorless 400 a well-formed submission can trigger is the
		// commission-existence rejection.
		outcome.Kind = OutcomeCommissionNotFound
	default:
		outcome.Kind = OutcomeInternalError
	}
	return outcome
}

// ListRegistrations fetches the full registration listing, newest first.
func (c *Client) ListRegistrations() ([]models.RegistrationWithCommission, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/api/registrations")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registrations: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return nil, fmt.Errorf("listing failed: %s", env.Message)
	}

	var rows []models.RegistrationWithCommission
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}
	return rows, nil
}
