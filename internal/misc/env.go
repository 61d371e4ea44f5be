// Package misc holds small helpers shared by the agent packages.
package misc

import (
	"os"
	"strconv"
	"time"
)

// Getenv returns the value of the environment variable key, or def when the
// variable is unset or empty.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetDuration reads key either as a bare number of seconds or as Go duration
// syntax. Unset or unparsable values yield def; nonpositive values yield 0.
func GetDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n <= 0 {
			return 0
		}
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		if d <= 0 {
			return 0
		}
		return d
	}
	return def
}
