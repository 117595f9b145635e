package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// pushEnvelope is the body Pub/Sub POSTs to a push subscription.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		MessageID  string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}

// readPushMessage returns the decoded payload of a push request.
func readPushMessage(r *http.Request) (pushEnvelope, []byte, error) {
	var env pushEnvelope
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return env, nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return env, nil, fmt.Errorf("invalid JSON: %w", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(env.Message.Data)
	if err != nil {
		return env, nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return env, rawData, nil
}
