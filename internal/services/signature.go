package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Checkout and webhook signatures cover different material under different
// secrets.

// verifyCheckoutSignature checks the hex HMAC-SHA256 of "sessionID|paymentID"
// under the gateway key secret.
func verifyCheckoutSignature(keySecret, sessionID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(sessionID + "|" + paymentID))

	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// verifyWebhookSignature checks the hex HMAC-SHA256 of the raw webhook body
// under the webhook secret.
func verifyWebhookSignature(webhookSecret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)

	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
