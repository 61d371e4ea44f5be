package push

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// clientTimeout bounds a single push round trip so a stalled endpoint cannot
// hold the tick loop indefinitely.
const clientTimeout = 30 * time.Second

const maxErrorBody = 4 << 10

// Client is an HTTP client bound to one freshly minted identity. It is
// immutable once built; the scheduler replaces it wholesale after a failed
// push and never mutates or reuses a failed instance.
type Client struct {
	certificate tls.Certificate
	hc          *http.Client
}

// NewClient derives a new certificate from key and wraps it into an HTTP
// client that presents the certificate for client authentication.
func NewClient(key ed25519.PrivateKey) (*Client, error) {
	cert, err := SelfSignedCertificate(key)
	if err != nil {
		return nil, err
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
	}
	return &Client{
		certificate: cert,
		hc:          &http.Client{Transport: transport, Timeout: clientTimeout},
	}, nil
}

// Certificate returns the identity this client presents.
func (c *Client) Certificate() tls.Certificate {
	return c.certificate
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("metrics push failed: [%d]:%s", e.code, e.body)
}

// Send performs exactly one POST of payload to url. There is no retry or
// backoff here; a non-2xx response is reported as a *statusError carrying
// the status code and response body.
func (c *Client) Send(ctx context.Context, url string, payload []byte) (retErr error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Encoding", ContentEncoding)
	req.Header.Set("Content-Type", ContentType)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("close response body: %w", cerr)
		}
	}()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return fmt.Errorf("drain body: %w", err)
		}
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		body = []byte(fmt.Sprintf("couldn't read response body; %v", err))
	}
	return &statusError{code: resp.StatusCode, body: string(body)}
}
