package main

import (
	"Folio/internal/authz"
	"Folio/internal/config"
	"errors"
)

func provideTokens(configuration *config.Configuration) (*authz.HMACTokens, error) {
	if configuration.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required to serve the API")
	}
	return authz.NewHMACTokens(configuration.Auth.JWTSecret)
}
