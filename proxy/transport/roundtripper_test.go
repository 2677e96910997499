package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type countingSource struct {
	calls int32
}

func (s *countingSource) Token() (*oauth2.Token, error) {
	n := atomic.AddInt32(&s.calls, 1)
	return &oauth2.Token{AccessToken: fmt.Sprintf("t%d", n), TokenType: "Bearer"}, nil
}

func TestRoundTripper_RoundTrip(t *testing.T) {
	var testCases = []struct {
		description string
		accept      string
		options     func(source oauth2.TokenSource) []Option
		expectCode  int
		expectCalls int32
	}{
		{
			description: "no token source",
			accept:      "",
			options:     func(source oauth2.TokenSource) []Option { return nil },
			expectCode:  http.StatusOK,
		},
		{
			description: "first token accepted",
			accept:      "Bearer t1",
			options: func(source oauth2.TokenSource) []Option {
				return []Option{WithTokenSource(source)}
			},
			expectCode:  http.StatusOK,
			expectCalls: 1,
		},
		{
			description: "401 triggers a refresh and replay",
			accept:      "Bearer t2",
			options: func(source oauth2.TokenSource) []Option {
				return []Option{WithTokenSource(source)}
			},
			expectCode:  http.StatusOK,
			expectCalls: 2,
		},
		{
			description: "second 401 is returned",
			accept:      "Bearer never",
			options: func(source oauth2.TokenSource) []Option {
				return []Option{WithTokenSource(source)}
			},
			expectCode:  http.StatusUnauthorized,
			expectCalls: 2,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				assert.Equal(t, `{"a":1}`, string(body))
				assert.Equal(t, "frames", r.Header.Get("X-Client"))
				if testCase.accept != "" && r.Header.Get("Authorization") != testCase.accept {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()
			source := &countingSource{}
			options := append(testCase.options(source), WithHeader("X-Client", "frames"))
			client := &http.Client{Transport: New(options...)}
			resp, err := client.Post(server.URL, "application/json", strings.NewReader(`{"a":1}`))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, testCase.expectCode, resp.StatusCode)
			assert.Equal(t, testCase.expectCalls, atomic.LoadInt32(&source.calls))
		})
	}
}

func TestRoundTripper_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()
	client := &http.Client{Transport: New(WithRateLimit(0.001, 1))}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	_, err = client.Do(req)
	assert.Error(t, err)
}

func TestWrapWithCookieJar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			_, _ = w.Write([]byte(c.Value))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
	}))
	defer server.Close()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	rt := WrapWithCookieJar(New(), jar)
	for i, expect := range []string{"", "abc"} {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := rt.RoundTrip(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, expect, string(body), "call %d", i)
	}
}

func TestAuth_TokenSource(t *testing.T) {
	assert.Nil(t, (*Auth)(nil).TokenSource(context.Background()))
	assert.Nil(t, (&Auth{}).TokenSource(context.Background()))
	source := (&Auth{Token: "static"}).TokenSource(context.Background())
	require.NotNil(t, source)
	tok, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "static", tok.AccessToken)
}
