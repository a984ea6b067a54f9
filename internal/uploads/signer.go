// Package uploads produces signed credential sets that let the admin client
// upload images directly to the media host. The server never sees image
// bytes; it only signs the request parameters and later receives the
// resulting URL as a plain field on a create/update call.
package uploads

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Signer signs upload requests per the media host's signing algorithm:
// parameters sorted by name, serialized as k=v joined by "&", with the API
// secret appended, digested with SHA-1 and hex-encoded.
type Signer struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Credentials is the parameter set a client needs for one direct upload. The
// media host enforces the expiry window; the server does not track usage.
type Credentials struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Folder    string `json:"folder"`
}

// NewSigner returns a signer for the configured media-host account.
func NewSigner(cloudName, apiKey, apiSecret, folder string) *Signer {
	return &Signer{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Folder:    folder,
	}
}

// Sign produces a credential set for an upload initiated at now.
func (s *Signer) Sign(now time.Time) Credentials {
	timestamp := now.Unix()
	params := map[string]string{
		"folder":    s.Folder,
		"timestamp": fmt.Sprintf("%d", timestamp),
	}

	return Credentials{
		Timestamp: timestamp,
		Signature: signParams(params, s.APISecret),
		CloudName: s.CloudName,
		APIKey:    s.APIKey,
		Folder:    s.Folder,
	}
}

func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(digest[:])
}
