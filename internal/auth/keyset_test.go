package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tasklet/internal/domain"
)

func TestKeySetUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewKeySetClient(server.URL, 10*time.Minute, testLogger())
	if _, err := client.PublicKey(context.Background(), "key-1"); !errors.Is(err, domain.ErrKeySetUnavailable) {
		t.Errorf("PublicKey() error = %v, want %v", err, domain.ErrKeySetUnavailable)
	}
}

func TestKeySetNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewKeySetClient(server.URL, 10*time.Minute, testLogger())
	if _, err := client.PublicKey(context.Background(), "key-1"); !errors.Is(err, domain.ErrKeySetUnavailable) {
		t.Errorf("PublicKey() error = %v, want %v", err, domain.ErrKeySetUnavailable)
	}
}

func TestKeySetEmpty(t *testing.T) {
	server := keySetServer([]byte(`{"keys":[]}`))
	defer server.Close()

	client := NewKeySetClient(server.URL, 10*time.Minute, testLogger())
	if _, err := client.PublicKey(context.Background(), "key-1"); !errors.Is(err, domain.ErrKeySetEmpty) {
		t.Errorf("PublicKey() error = %v, want %v", err, domain.ErrKeySetEmpty)
	}
}

func TestKeySetMissingCertificateData(t *testing.T) {
	server := keySetServer([]byte(`{"keys":[{"kid":"key-1","kty":"RSA","x5c":[]}]}`))
	defer server.Close()

	client := NewKeySetClient(server.URL, 10*time.Minute, testLogger())
	if _, err := client.PublicKey(context.Background(), "key-1"); !errors.Is(err, domain.ErrUnknownSigningKey) {
		t.Errorf("PublicKey() error = %v, want %v", err, domain.ErrUnknownSigningKey)
	}
}

func TestKeySetCachesAcrossLookups(t *testing.T) {
	key := newTestKey(t, "key-1")
	doc := jwksDocument(t, key)

	var mu sync.Mutex
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetches++
		mu.Unlock()
		w.Write(doc)
	}))
	defer server.Close()

	client := NewKeySetClient(server.URL, 10*time.Minute, testLogger())
	for i := 0; i < 3; i++ {
		if _, err := client.PublicKey(context.Background(), "key-1"); err != nil {
			t.Fatalf("PublicKey() error = %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if fetches != 1 {
		t.Errorf("key set fetched %d times, want 1", fetches)
	}
}

func TestKeySetRefetchesOnCacheMiss(t *testing.T) {
	oldKey := newTestKey(t, "key-old")
	newKey := newTestKey(t, "key-new")

	var mu sync.Mutex
	doc := jwksDocument(t, oldKey)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Write(doc)
	}))
	defer server.Close()

	client := NewKeySetClient(server.URL, 10*time.Minute, testLogger())
	if _, err := client.PublicKey(context.Background(), "key-old"); err != nil {
		t.Fatalf("PublicKey() error = %v", err)
	}

	// Key rotation: the issuer replaces its key set.
	mu.Lock()
	doc = jwksDocument(t, newKey)
	mu.Unlock()

	if _, err := client.PublicKey(context.Background(), "key-new"); err != nil {
		t.Fatalf("PublicKey() after rotation error = %v, want refetch to find the new key", err)
	}

	// A kid absent even after refetching is unknown.
	if _, err := client.PublicKey(context.Background(), "key-other"); !errors.Is(err, domain.ErrUnknownSigningKey) {
		t.Errorf("PublicKey() error = %v, want %v", err, domain.ErrUnknownSigningKey)
	}
}
