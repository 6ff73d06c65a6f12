// Package identifier turns scanned or typed text into a registry lookup key.
package identifier

import (
	"errors"
	"net/url"
	"strings"
)

const (
	ParamAsset   = "asset"
	ParamAssetQR = "assetQR"
)

var (
	ErrMalformedInput    = errors.New("input is not an absolute URL")
	ErrMissingIdentifier = errors.New("URL carries no asset identifier")
)

// Candidate is an unverified registry code.
type Candidate string

func (c Candidate) String() string {
	return string(c)
}

// Extract parses raw as an absolute URL and returns the first non-empty of
// the asset and assetQR query parameters.
func Extract(raw string) (Candidate, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return "", ErrMalformedInput
	}

	query := u.Query()
	for _, param := range []string{ParamAsset, ParamAssetQR} {
		if value := query.Get(param); value != "" {
			return Candidate(value), nil
		}
	}

	return "", ErrMissingIdentifier
}
