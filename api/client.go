package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// tokenCredentials attaches a bearer token to every admin call.
type tokenCredentials string

func (t tokenCredentials) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return map[string]string{authorizationKey: "Bearer " + string(t)}, nil
}

// RequireTransportSecurity is false so the token also works on plaintext
// loopback connections.
func (tokenCredentials) RequireTransportSecurity() bool {
	return false
}

// WithToken returns a dial option sending token on every call. An empty
// token sends nothing.
func WithToken(token string) grpc.DialOption {
	if token == "" {
		return grpc.EmptyDialOption{}
	}
	return grpc.WithPerRPCCredentials(tokenCredentials(token))
}

var _ credentials.PerRPCCredentials = tokenCredentials("")
