// Package ipfs pins mint metadata JSON to IPFS through the Pinata API.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// Metadata is the NFT metadata document uploaded for the collectible card.
type Metadata struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ExternalURL string        `json:"external_url"`
	Attributes  []interface{} `json:"attributes"`
	Image       string        `json:"image"`
}

// Defaults applied to missing metadata fields.
const (
	defaultName        = "WrappedOnChain Persona"
	defaultDescription = "2025 On-chain Year in Review"
	defaultExternalURL = "https://wrappedonchain.xyz"
	defaultImage       = "ipfs://QmYourDefaultImageHash"
)

// ApplyDefaults fills empty metadata fields with the stock values.
func (m *Metadata) ApplyDefaults() {
	if m.Name == "" {
		m.Name = defaultName
	}
	if m.Description == "" {
		m.Description = defaultDescription
	}
	if m.ExternalURL == "" {
		m.ExternalURL = defaultExternalURL
	}
	if m.Attributes == nil {
		m.Attributes = []interface{}{}
	}
	if m.Image == "" {
		m.Image = defaultImage
	}
}

// Pinata is a minimal client for Pinata's JSON pinning endpoint.
type Pinata struct {
	baseURL    string
	jwt        string
	httpClient *http.Client
}

// NewPinata creates a Pinata client. Uploads are retried; pinning is not
// latency sensitive and the endpoint is idempotent for identical content.
func NewPinata(baseURL, jwt string) *Pinata {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 3 * time.Second
	rc.Logger = nil

	return &Pinata{
		baseURL:    baseURL,
		jwt:        jwt,
		httpClient: rc.StandardClient(),
	}
}

// PinJSON uploads the metadata document and returns its CID.
func (p *Pinata) PinJSON(ctx context.Context, meta Metadata) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"pinataContent": meta,
		"pinataMetadata": map[string]string{
			"name": meta.Name,
		},
	})
	if err != nil {
		return "", fmt.Errorf("error encoding metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/pinning/pinJSONToIPFS", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.jwt)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("pinata error: status %d, body: %s", resp.StatusCode, string(snippet))
	}

	var body struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("error decoding pinata response: %w", err)
	}
	if body.IpfsHash == "" {
		return "", fmt.Errorf("pinata returned no hash")
	}

	logrus.WithField("cid", body.IpfsHash).Info("Pinned metadata to IPFS")
	return body.IpfsHash, nil
}
