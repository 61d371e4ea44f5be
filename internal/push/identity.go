package push

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"time"
)

// ServerName is the well-known name the client certificate is bound to.
const ServerName = "sui"

// notBeforeMargin compensates for clock skew between agent and endpoint.
const notBeforeMargin = 24 * time.Hour

// certLifespan is generous on purpose: certificates are regenerated on every
// client rebuild, far more often than they expire.
const certLifespan = 365 * 24 * time.Hour

func newSerialNumber() (*big.Int, error) {
	limit := new(big.Int).Exp(big.NewInt(2), big.NewInt(130), nil)
	serial, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return nil, fmt.Errorf("create serial number: %w", err)
	}
	return serial.Add(serial, big.NewInt(1)), nil
}

// SelfSignedCertificate derives a client certificate from key, bound to
// ServerName. Every call yields a fresh certificate instance; callers that
// need a stable identity across calls must keep the returned value.
func SelfSignedCertificate(key ed25519.PrivateKey) (tls.Certificate, error) {
	serial, err := newSerialNumber()
	if err != nil {
		return tls.Certificate{}, err
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: ServerName},
		DNSNames:              []string{ServerName},
		NotBefore:             now.Add(-notBeforeMargin),
		NotAfter:              now.Add(certLifespan),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, key.Public(), key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("create certificate: %w", err)
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("parse certificate: %w", err)
	}

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
		Leaf:        leaf,
	}, nil
}

// LoadKey reads a PKCS#8 PEM-encoded ed25519 private key from path.
func LoadKey(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", path)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}
	key, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unsupported key type %T, want ed25519", parsed)
	}
	return key, nil
}

// GenerateKey mints an ephemeral network key for agents that run without a
// configured one.
func GenerateKey() (ed25519.PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}
