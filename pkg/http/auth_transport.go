package http

import "net/http"

// bearerTransport adds an Authorization header to every outgoing request
type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+t.token)

	return t.next.RoundTrip(authed)
}

// WithAuthToken authenticates requests with a bearer token. An empty token
// leaves requests untouched.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*clientConfig) {}
	}

	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &bearerTransport{
			token: token,
			next:  rt,
		}
	})
}
