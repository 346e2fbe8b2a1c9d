package main

import (
	"crypto/tls"
)

// readClientCert loads an optional client certificate from the pem
// formatted certPath and keyPath files.
func readClientCert(certPath, keyPath string) ([]tls.Certificate, error) {
	if certPath != "" && keyPath != "" {
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			return nil, err
		}

		return []tls.Certificate{cert}, nil
	}
	return nil, nil
}

// generateTLSConfig builds the TLS configuration used by the executor.
// Certificate verification is skipped only when VerifySSL is off; the
// setting is scoped to the executor instance, never to the process.
func generateTLSConfig(c *TestConfig) (*tls.Config, error) {
	certs, err := readClientCert(c.CertPath, c.KeyPath)
	if err != nil {
		return nil, err
	}
	/* #nosec */
	tlsConfig := &tls.Config{
		InsecureSkipVerify: !c.VerifySSL,
		Certificates:       certs,
	}
	return tlsConfig, nil
}
