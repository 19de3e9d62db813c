package skillvento

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
)

// The digest covers the four identity fields only. Tags, description
// and domain are deliberately excluded so unrelated edits never change
// a previously shared hash.
type integrityPayload struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	IssuedOn     string `json:"issuedOn"`
	UserID       string `json:"userId"`
}

// ComputeIntegrityHash returns the 0x-prefixed lowercase hex sha256 of
// the canonical serialization of the certificate's identity fields.
// Same inputs always yield the same output.
func ComputeIntegrityHash(title, organization, issuedOn, userID string) string {
	payload, _ := json.Marshal(integrityPayload{
		Title:        title,
		Organization: organization,
		IssuedOn:     issuedOn,
		UserID:       userID,
	})

	sum := sha256.Sum256(payload)
	return "0x" + hex.EncodeToString(sum[:])
}

// VerifyIntegrityHash recomputes the digest from the identity fields
// and compares it to the claimed hash.
func VerifyIntegrityHash(title, organization, issuedOn, userID, claimedHash string) bool {
	expected := ComputeIntegrityHash(title, organization, issuedOn, userID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(claimedHash)) == 1
}
