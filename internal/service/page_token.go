package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"eventfinder/internal/domain"

	"github.com/goccy/go-json"
)

// pageToken is the opaque continuation handed out in Meta.NextPageToken.
type pageToken struct {
	Page        int    `json:"p"`
	Fingerprint string `json:"f"`
}

// fingerprint identifies a filter and sort pair. Filters must be normalized
// first so that equivalent genre sets hash the same.
func fingerprint(filter domain.FilterDescription, sort domain.SortDescription) string {
	b, _ := json.Marshal(struct {
		F domain.FilterDescription `json:"f"`
		S domain.SortDescription   `json:"s"`
	}{filter, sort})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

func encodePageToken(page int, fp string) string {
	b, _ := json.Marshal(pageToken{Page: page, Fingerprint: fp})
	return base64.RawURLEncoding.EncodeToString(b)
}

// decodePageToken returns the page a token points to. A token minted for a
// different filter or sort is rejected, like a stale result in a list view.
func decodePageToken(token, fp string) (int, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, domain.ErrValidation("malformed page_token")
	}
	var t pageToken
	if err := json.Unmarshal(b, &t); err != nil {
		return 0, domain.ErrValidation("malformed page_token")
	}
	if t.Page <= 0 {
		return 0, domain.ErrValidation("malformed page_token")
	}
	if t.Fingerprint != fp {
		return 0, domain.ErrValidation("page_token does not match the current filter and sort")
	}
	return t.Page, nil
}
