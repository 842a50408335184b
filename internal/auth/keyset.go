package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"tasklet/internal/domain"
)

// jsonWebKey is one entry of the issuer's published key set. Only the
// key id and the embedded certificate chain are used; the signing key
// is taken from the leading x5c certificate.
type jsonWebKey struct {
	Kid string   `json:"kid"`
	Kty string   `json:"kty"`
	Use string   `json:"use"`
	X5c []string `json:"x5c"`
}

type keySetDocument struct {
	Keys []jsonWebKey `json:"keys"`
}

// KeySetClient fetches the issuer's JSON Web Key Set and resolves key
// ids to RSA public keys. The fetched document is cached for a bounded
// lifetime; a lookup miss against a cached document forces one refetch
// before failing, so key rotation is picked up without a restart.
//
// Safe for concurrent use.
type KeySetClient struct {
	endpoint string
	ttl      time.Duration
	client   *http.Client
	logger   *slog.Logger

	mu        sync.Mutex
	keys      []jsonWebKey
	fetchedAt time.Time
}

// NewKeySetClient creates a key set client for the given JWKS endpoint.
// ttl bounds how long a fetched key set is reused across requests.
func NewKeySetClient(endpoint string, ttl time.Duration, logger *slog.Logger) *KeySetClient {
	return &KeySetClient{
		endpoint: endpoint,
		ttl:      ttl,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// PublicKey resolves kid to the RSA public key published under that id.
func (c *KeySetClient) PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	keys, fresh, err := c.cachedKeys(ctx)
	if err != nil {
		return nil, err
	}

	key, ok := findKey(keys, kid)
	if !ok && !fresh {
		// Cache miss on a stale-ish document: the issuer may have
		// rotated keys since the last fetch.
		keys, err = c.refetch(ctx)
		if err != nil {
			return nil, err
		}
		key, ok = findKey(keys, kid)
	}
	if !ok {
		c.logger.Warn("no key in key set matches token kid", "kid", kid)
		return nil, domain.ErrUnknownSigningKey
	}

	return certificatePublicKey(key)
}

// cachedKeys returns the cached key set, fetching when the cache is
// empty or expired. fresh reports whether the returned set was fetched
// on this call.
func (c *KeySetClient) cachedKeys(ctx context.Context) (keys []jsonWebKey, fresh bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.keys != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.keys, false, nil
	}

	keys, err = c.fetch(ctx)
	if err != nil {
		return nil, false, err
	}

	c.keys = keys
	c.fetchedAt = time.Now()
	return keys, true, nil
}

func (c *KeySetClient) refetch(ctx context.Context) ([]jsonWebKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.keys = keys
	c.fetchedAt = time.Now()
	return keys, nil
}

func (c *KeySetClient) fetch(ctx context.Context) ([]jsonWebKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeySetUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("key set fetch failed", "endpoint", c.endpoint, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrKeySetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("key set endpoint returned non-200", "endpoint", c.endpoint, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrKeySetUnavailable, resp.StatusCode)
	}

	var doc keySetDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeySetUnavailable, err)
	}

	if len(doc.Keys) == 0 {
		return nil, domain.ErrKeySetEmpty
	}

	return doc.Keys, nil
}

func findKey(keys []jsonWebKey, kid string) (jsonWebKey, bool) {
	for _, k := range keys {
		if k.Kid == kid {
			return k, true
		}
	}
	return jsonWebKey{}, false
}

// certificatePublicKey extracts the RSA public key from the key's
// leading x5c certificate. The key set carries the certificate as raw
// base64 DER; it is reconstructed as a PEM block wrapped at 64-character
// line boundaries before parsing.
func certificatePublicKey(key jsonWebKey) (*rsa.PublicKey, error) {
	if len(key.X5c) == 0 {
		return nil, fmt.Errorf("%w: key %q has no certificate data", domain.ErrUnknownSigningKey, key.Kid)
	}

	block, _ := pem.Decode([]byte(certificatePEM(key.X5c[0])))
	if block == nil {
		return nil, fmt.Errorf("%w: key %q certificate is not valid PEM", domain.ErrUnknownSigningKey, key.Kid)
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnknownSigningKey, err)
	}

	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: key %q certificate does not hold an RSA key", domain.ErrUnknownSigningKey, key.Kid)
	}

	return pub, nil
}

func certificatePEM(raw string) string {
	var b strings.Builder
	b.WriteString("-----BEGIN CERTIFICATE-----\n")
	for len(raw) > 0 {
		n := min(64, len(raw))
		b.WriteString(raw[:n])
		b.WriteByte('\n')
		raw = raw[n:]
	}
	b.WriteString("-----END CERTIFICATE-----\n")
	return b.String()
}
