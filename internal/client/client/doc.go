// Package client is the CLI's view of the PostGuard backend.
//
// GRPCClient holds the connection and the access token of the current
// session. Every call gets the configured deadline and the token in its
// metadata; a token about to expire is refreshed before the call is sent.
// gRPC status errors are translated back into the sentinels of
// internal/common so callers can match them with errors.Is.
package client
