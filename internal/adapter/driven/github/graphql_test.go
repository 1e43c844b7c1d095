package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ericfisherdev/mergemetrics/internal/adapter/driven/github"
)

type searchData struct {
	Search struct {
		Nodes []struct {
			Number int `json:"number"`
		} `json:"nodes"`
	} `json:"search"`
}

func TestGraphQL_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "query { search }", body.Query)
		assert.Equal(t, "repo:owner/repo", body.Variables["q"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"search": map[string]any{
					"nodes": []any{
						map[string]any{"number": 7},
						map[string]any{"number": 9},
					},
				},
			},
		})
	})

	client := newTestClient(t, handler)

	var out searchData
	err := client.GraphQL(context.Background(), "query { search }", map[string]any{"q": "repo:owner/repo"}, &out)

	require.NoError(t, err)
	require.Len(t, out.Search.Nodes, 2)
	assert.Equal(t, 7, out.Search.Nodes[0].Number)
	assert.Equal(t, 9, out.Search.Nodes[1].Number)
}

func TestGraphQL_Errors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": nil,
			"errors": []any{
				map[string]any{"message": "Something went wrong"},
				map[string]any{"message": "And something else"},
			},
		})
	})

	client := newTestClient(t, handler)

	var out searchData
	err := client.GraphQL(context.Background(), "query { search }", nil, &out)

	var gqlErr *ghAdapter.GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, []string{"Something went wrong", "And something else"}, gqlErr.Messages)
	assert.Equal(t, "graphql: Something went wrong; And something else", err.Error())
}

func TestGraphQL_Unauthorized(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := newTestClient(t, handler)
	err := client.GraphQL(context.Background(), "query { viewer { login } }", nil, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ghAdapter.ErrUnauthorized))
}

func TestGraphQL_HTTPError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := newTestClient(t, handler)
	err := client.GraphQL(context.Background(), "query { viewer { login } }", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestGraphQL_CanceledContext(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	client := newTestClient(t, handler)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.GraphQL(ctx, "query { viewer { login } }", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
