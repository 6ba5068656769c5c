package http

import "time"

type HttpOpts func(*clientConfig)

// WithConnClientTimeout bounds TCP dialing
func WithConnClientTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		if timeout > 0 {
			c.dialTimeout = timeout
		}
	}
}

// WithRequestTimeout bounds the whole exchange including reading the body.
// Zero means no limit.
func WithRequestTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.requestTimeout = timeout
	}
}

func WithClientKeepAlive(keepAlive time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.keepAlive = keepAlive
	}
}

// WithResponseHeaderTimeout bounds the wait for the status line. Zero means no limit.
func WithResponseHeaderTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithIdleConnTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.idleConnTimeout = timeout
	}
}

func WithTransport(transport TransportFunc) HttpOpts {
	return func(c *clientConfig) {
		c.transports = append(c.transports, transport)
	}
}
