package transport

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Auth describes how to obtain the proxy bearer token.
type Auth struct {
	Token        string   `yaml:"token,omitempty" json:"token,omitempty" long:"proxy-token" description:"static proxy bearer token"`
	TokenURL     string   `yaml:"tokenURL,omitempty" json:"tokenURL,omitempty" long:"proxy-token-url" description:"client credentials token endpoint"`
	ClientID     string   `yaml:"clientID,omitempty" json:"clientID,omitempty" long:"proxy-client-id" description:"client credentials id"`
	ClientSecret string   `yaml:"clientSecret,omitempty" json:"clientSecret,omitempty" long:"proxy-client-secret" description:"client credentials secret"`
	Scopes       []string `yaml:"scopes,omitempty" json:"scopes,omitempty" long:"proxy-scope" description:"client credentials scopes"`
}

// TokenSource returns a token source for auth, or nil when no proxy auth is configured.
func (a *Auth) TokenSource(ctx context.Context) oauth2.TokenSource {
	if a == nil {
		return nil
	}
	if a.Token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: a.Token, TokenType: "Bearer"})
	}
	if a.TokenURL == "" || a.ClientID == "" {
		return nil
	}
	config := &clientcredentials.Config{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		TokenURL:     a.TokenURL,
		Scopes:       a.Scopes,
	}
	return config.TokenSource(ctx)
}
