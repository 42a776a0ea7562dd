package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the hex HMAC-SHA256 of payload under secret.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the raw body.
func VerifyWebhookSignature(body []byte, signature, secret string) error {
	if signature == "" || secret == "" {
		return &SignatureError{Reason: "missing signature or secret"}
	}
	if !equalHex(Sign(secret, body), signature) {
		return &SignatureError{Reason: "invalid signature"}
	}
	return nil
}

// VerifyPaymentSignature checks a checkout payment signature, which signs
// "order_id|payment_id" with the key secret.
func VerifyPaymentSignature(p PaymentProof, keySecret string) error {
	if p.OrderID == "" || p.PaymentID == "" || p.Signature == "" {
		return &SignatureError{Reason: "missing payment fields"}
	}
	if keySecret == "" {
		return &SignatureError{Reason: "missing signature or secret"}
	}
	if !equalHex(Sign(keySecret, []byte(p.OrderID+"|"+p.PaymentID)), p.Signature) {
		return &SignatureError{Reason: "invalid signature"}
	}
	return nil
}

func equalHex(expected, got string) bool {
	return hmac.Equal([]byte(expected), []byte(got))
}
