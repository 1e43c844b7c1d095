package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// graphqlRequest is the JSON body sent to the GitHub GraphQL API.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the GraphQL response envelope. Data is decoded by the caller.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GraphQLError is returned when a GraphQL response carries an errors array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// GraphQL posts query to the GraphQL endpoint and decodes the "data" object into out.
// Transport failures, non-200 answers and GraphQL errors are all returned; there are no retries
// beyond the secondary rate limit handling of the transport.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	bodyBytes, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling graphql request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating graphql request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("graphql request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logGraphQLRateLimit(resp.Header)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("graphql request: %w", ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("graphql request: HTTP %d", resp.StatusCode)
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return fmt.Errorf("decoding graphql response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return &GraphQLError{Messages: messages}
	}

	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("decoding graphql data: %w", err)
	}

	return nil
}

// logGraphQLRateLimit logs the GraphQL rate limit headers, if present.
func logGraphQLRateLimit(h http.Header) {
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	limit, _ := strconv.Atoi(h.Get("X-RateLimit-Limit"))

	slog.Debug("github graphql call",
		"rate_remaining", remaining,
		"rate_limit", limit,
	)

	if remaining < 100 {
		reset, _ := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64)
		slog.Warn("github rate limit low",
			"remaining", remaining,
			"reset_in", time.Until(time.Unix(reset, 0)).Round(time.Second),
		)
	}
}
