// Package auth holds the caller identity helpers and the Firebase Auth
// Emulator token generator used for local development.
package auth

import (
	"encoding/base64"

	"github.com/goccy/go-json"
)

// DefaultProjectID is the project used when GOOGLE_CLOUD_PROJECT is unset.
const DefaultProjectID = "local-project-id"

// GenerateEmulatorToken creates an unsigned JWT accepted by the Firebase Auth Emulator.
func GenerateEmulatorToken(projectID, uid string) string {
	if projectID == "" {
		projectID = DefaultProjectID
	}

	header := `{"alg":"none","typ":"JWT"}`
	payload := map[string]interface{}{
		"iss":       "https://securetoken.google.com/" + projectID,
		"aud":       projectID,
		"auth_time": 1,
		"user_id":   uid,
		"sub":       uid,
		"iat":       1,
		"exp":       9999999999, // Never expire
	}

	pBytes, _ := json.Marshal(payload)
	enc := base64.RawURLEncoding

	// Header.Payload.Signature, empty signature for alg none
	return enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString(pBytes) + "."
}
