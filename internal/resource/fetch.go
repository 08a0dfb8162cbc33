package resource

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

// Fetcher performs the HTTP GET an external resource needs. http.DefaultClient
// satisfies this directly; tests substitute a fake.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetch returns a resource's bytes: inline resources return their decoded
// payload directly; external resources are downloaded, hashed, and checked
// against the declared digest in constant time, failing closed on mismatch.
func Fetch(ctx context.Context, client Fetcher, r Resource) ([]byte, error) {
	if r.Inline {
		return r.Content, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", r.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching resource %s: %w", r.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch resource: %s (HTTP %d)", r.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body for %s: %w", r.URL, err)
	}

	sum := sha256.Sum256(body)
	got := hex.EncodeToString(sum[:])
	want, err := hex.DecodeString(r.SHA256)
	if err != nil || subtle.ConstantTimeCompare(sum[:], want) != 1 {
		return nil, fmt.Errorf("SHA256 sum mismatch for resource: %s, expected %s, got %s", r.URL, r.SHA256, got)
	}

	return body, nil
}

// FetchVerified behaves like Fetch, then additionally checks an optional
// PGP detached signature (a resource URI's "pgpsig=" option) against
// keyringArmored. A resource with no signature never touches the keyring;
// one that carries a signature with no keyring configured fails closed.
func FetchVerified(ctx context.Context, client Fetcher, r Resource, keyringArmored []byte) ([]byte, error) {
	body, err := Fetch(ctx, client, r)
	if err != nil {
		return nil, err
	}
	if r.PGPSignatureArmored == nil {
		return body, nil
	}
	if len(keyringArmored) == 0 {
		return nil, fmt.Errorf("resource carries a pgp signature but no trusted keyring was configured")
	}
	if err := VerifyDetachedSignature(body, r.PGPSignatureArmored, keyringArmored); err != nil {
		return nil, err
	}
	return body, nil
}
