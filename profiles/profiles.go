package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

// Profile is the metadata document pinned for a group.
type Profile struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol,omitempty"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageUrl,omitempty"`
	PreviewImageURL string `json:"previewImageUrl,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: TIMEOUT},
		log:     log,
	}
}

type pinResponse struct {
	CID string `json:"cid"`
}

// Pin stores p on the profile service and returns its CID.
func (c *Client) Pin(ctx context.Context, p Profile) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"pin", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("couldn't reach the profile service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("couldn't read the profile service response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("profile service returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	var out pinResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("couldn't decode the profile service response: %w", err)
	}
	if out.CID == "" {
		return "", errors.New("profile service returned no cid")
	}
	c.log.Debug().Str("cid", out.CID).Str("name", p.Name).Msg("profile pinned")
	return out.CID, nil
}

// Digest extracts the 32-byte sha2-256 digest the contracts store as
// metadata from a CIDv0.
func Digest(cidStr string) ([32]byte, error) {
	var digest [32]byte
	c, err := cid.Decode(cidStr)
	if err != nil {
		return digest, fmt.Errorf("invalid cid %q: %w", cidStr, err)
	}
	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		return digest, fmt.Errorf("invalid multihash in %q: %w", cidStr, err)
	}
	if decoded.Code != multihash.SHA2_256 || len(decoded.Digest) != len(digest) {
		return digest, fmt.Errorf("cid %q is not a sha2-256 cid", cidStr)
	}
	copy(digest[:], decoded.Digest)
	return digest, nil
}

// CIDFromDigest is the inverse of Digest.
func CIDFromDigest(digest [32]byte) (string, error) {
	mh, err := multihash.Encode(digest[:], multihash.SHA2_256)
	if err != nil {
		return "", err
	}
	return cid.NewCidV0(mh).String(), nil
}

// PinDigest pins p and returns both its CID and metadata digest.
func (c *Client) PinDigest(ctx context.Context, p Profile) (string, [32]byte, error) {
	id, err := c.Pin(ctx, p)
	if err != nil {
		return "", [32]byte{}, err
	}
	digest, err := Digest(id)
	return id, digest, err
}
