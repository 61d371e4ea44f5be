// Package push periodically ships compressed snapshots of the process
// metric registry to a remote collection endpoint over mutually
// authenticated HTTPS.
package push

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yanminmin/sui/internal/config"
	"github.com/yanminmin/sui/internal/metrics"
)

// Pusher drives one push attempt per tick and owns the current Client.
// Push attempts are strictly sequential: the single Run goroutine is the
// only writer of the client reference, and the ticker's one-slot channel
// drops ticks that fire while an attempt is still running.
type Pusher struct {
	url      string
	interval time.Duration
	key      ed25519.PrivateKey
	gatherer prometheus.Gatherer
	client   *Client
	logger   *zap.Logger
	observe  *metrics.PushMetrics
}

// Option customizes a Pusher.
type Option func(*Pusher)

// WithMetrics instruments the scheduler with the given bundle.
func WithMetrics(m *metrics.PushMetrics) Option {
	return func(p *Pusher) {
		p.observe = m
	}
}

// New builds a Pusher with its initial client. Callers with no push
// endpoint configured must not construct a Pusher at all; cfg is expected
// to carry the absolute URL validated by config.Load.
func New(cfg config.MetricsConfig, key ed25519.PrivateKey, g prometheus.Gatherer, logger *zap.Logger, opts ...Option) (*Pusher, error) {
	client, err := NewClient(key)
	if err != nil {
		return nil, err
	}
	p := &Pusher{
		url:      cfg.PushURL,
		interval: cfg.PushInterval,
		key:      key,
		gatherer: g,
		client:   client,
		logger:   logger,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Run blocks, performing one push attempt per tick until ctx is canceled.
// No error from inside an attempt ever escapes: every failure is logged and
// implicitly retried at the next tick.
func (p *Pusher) Run(ctx context.Context) {
	p.logger.Info("started metrics push",
		zap.String("url", p.url),
		zap.Duration("interval", p.interval),
	)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("stopped metrics push")
			return
		case <-t.C:
			p.pushOnce(ctx)
		}
	}
}

// pushOnce performs a single gather-encode-send attempt. Gather and encode
// failures abort the attempt and keep the current client; transport and
// response failures additionally discard it, so the next tick starts from a
// fresh identity.
func (p *Pusher) pushOnce(ctx context.Context) {
	start := time.Now()
	if p.observe != nil {
		p.observe.Attempts.Inc()
	}

	families, err := p.gatherer.Gather()
	if err != nil {
		p.countFailure()
		p.logger.Warn("unable to gather metrics", zap.Error(err))
		return
	}

	payload, err := EncodeSnapshot(families, time.Now().UnixMilli())
	if err != nil {
		p.countFailure()
		p.logger.Warn("unable to encode metrics", zap.Error(err))
		return
	}

	if err := p.client.Send(ctx, p.url, payload); err != nil {
		p.countFailure()
		p.logger.Warn("unable to push metrics; new client will be created", zap.Error(err))
		p.rebuildClient()
		return
	}

	if p.observe != nil {
		p.observe.Duration.Observe(time.Since(start).Seconds())
	}
	p.logger.Debug("successfully pushed metrics", zap.String("url", p.url))
}

// rebuildClient mints a fresh identity for the next attempt. If the rebuild
// itself fails the old client stays in place and the next tick tries again.
func (p *Pusher) rebuildClient() {
	client, err := NewClient(p.key)
	if err != nil {
		p.logger.Warn("unable to rebuild push client", zap.Error(err))
		return
	}
	p.client = client
}

func (p *Pusher) countFailure() {
	if p.observe != nil {
		p.observe.Failures.Inc()
	}
}
