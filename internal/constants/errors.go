package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured  = errors.New("no API URL configured, use 'incydr config set api <url>' or set INCYDR_API")
	ErrNotAuthenticated = errors.New("not authenticated, run 'incydr login' or set INCYDR_API_CLIENT_ID and INCYDR_API_CLIENT_SECRET")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)

// Validation errors.
var (
	ErrNoteTooLong        = errors.New("note exceeds the 2000 character limit")
	ErrNoSessionIDs       = errors.New("at least one session ID is required")
	ErrNoAlertIDs         = errors.New("at least one alert ID is required")
	ErrInvalidState       = errors.New("invalid state value")
	ErrInvalidOutput      = errors.New("invalid output format, expected table, json, yaml, or csv")
	ErrTargetNotDirectory = errors.New("target path is not a directory")
)

// Forwarding errors.
var (
	ErrNoSubjectConfigured = errors.New("no subject configured for event forwarding")
)
