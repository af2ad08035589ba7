package registry

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig holds TLS certificate configuration for secure etcd
// communication. When enabled, all traffic uses mutual TLS.
type TLSConfig struct {
	// Enabled determines whether TLS is active. If false, the remaining
	// fields are ignored.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// CertFile is the path to the client certificate (PEM).
	CertFile string `json:"cert_file" yaml:"cert_file"`

	// KeyFile is the path to the client private key (PEM).
	KeyFile string `json:"key_file" yaml:"key_file"`

	// CAFile is the path to the certificate authority file (PEM), used to
	// verify the etcd server's certificate.
	CAFile string `json:"ca_file" yaml:"ca_file"`
}

// clientConfig builds a tls.Config for client connections.
func (cfg *TLSConfig) clientConfig() (*tls.Config, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	if cfg.CertFile == "" {
		return nil, fmt.Errorf("TLS cert file is required when TLS is enabled")
	}
	if cfg.KeyFile == "" {
		return nil, fmt.Errorf("TLS key file is required when TLS is enabled")
	}
	if cfg.CAFile == "" {
		return nil, fmt.Errorf("TLS CA file is required when TLS is enabled")
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}

	caData, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caData) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
