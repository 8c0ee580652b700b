package cosigner_client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	headerAPIKey    = "X-Api-Key"
	headerTimestamp = "X-Auth-Timestamp"
	headerSignature = "X-Auth-Signature"
)

// Sign computes the request signature the service verifies for signed-mode
// calls: an HMAC-SHA256 with the API secret over the canonical form
//
//	timestamp \n METHOD \n requestURI \n body
//
// where requestURI is the path including the encoded query string. The
// service recomputes the exact same canonical form, so any divergence
// between the signed bytes and the transmitted ones fails verification.
func Sign(secret, timestamp, method, requestURI string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s\n%s\n%s\n", timestamp, method, requestURI)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
