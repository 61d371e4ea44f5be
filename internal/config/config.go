// Package config loads the agent configuration from environment variables and CLI flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/yanminmin/sui/internal/misc"
)

const defaultPushIntervalSeconds = 60

// MetricsConfig describes the metrics push endpoint. A nil MetricsConfig on
// Config means the push subsystem is disabled entirely.
type MetricsConfig struct {
	PushURL      string
	PushInterval time.Duration
}

// Config is the full agent configuration.
type Config struct {
	Metrics *MetricsConfig
	KeyFile string
}

// Load parses args and the environment. ENV > CLI > defaults.
//
// An empty push URL disables the push subsystem (valid state). A push URL
// that is not an absolute URL is an error; callers must treat it as fatal.
func Load(args []string, out io.Writer) (Config, error) {
	if out == nil {
		out = io.Discard
	}

	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	fs.SetOutput(out)

	var urlOpt string
	var keyOpt string
	var intervalOpt int

	fs.StringVar(&urlOpt, "u", "", "metrics push endpoint URL; empty disables pushing")
	fs.StringVar(&keyOpt, "k", "", "path to a PEM-encoded ed25519 network key")
	fs.IntVar(&intervalOpt, "i", 0, fmt.Sprintf("push interval in seconds, default: %d", defaultPushIntervalSeconds))

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	keyFile := strings.TrimSpace(misc.Getenv("KEY_FILE", ""))
	if keyFile == "" {
		keyFile = strings.TrimSpace(keyOpt)
	}

	pushURL := strings.TrimSpace(misc.Getenv("PUSH_URL", ""))
	if pushURL == "" {
		pushURL = strings.TrimSpace(urlOpt)
	}
	if pushURL == "" {
		return Config{KeyFile: keyFile}, nil
	}

	u, err := url.Parse(pushURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Config{}, fmt.Errorf("invalid push url: %q", pushURL)
	}

	interval := misc.GetDuration("PUSH_INTERVAL", 0)
	if interval == 0 && strings.TrimSpace(misc.Getenv("PUSH_INTERVAL", "")) == "" {
		if intervalOpt != 0 {
			interval = time.Duration(intervalOpt) * time.Second
		} else {
			interval = defaultPushIntervalSeconds * time.Second
		}
	}
	if interval <= 0 {
		return Config{}, fmt.Errorf("push interval must be > 0, got %v", interval)
	}

	return Config{
		Metrics: &MetricsConfig{PushURL: u.String(), PushInterval: interval},
		KeyFile: keyFile,
	}, nil
}
