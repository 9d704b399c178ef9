package models

import (
	"encoding/json"
	"errors"
	"time"
)

// PaymentStatusApproved is the only provider status that grants access.
const PaymentStatusApproved = "approved"

// PaymentNotification is the body the payment provider pushes to /webhook.
type PaymentNotification struct {
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
	PayerEmail        string `json:"payer_email"`
}

// ErrInvalidPayload is returned for a notification body that is not JSON.
var ErrInvalidPayload = errors.New("payload is not valid JSON")

// DecodePaymentNotification reads a provider notification leniently. Any
// valid JSON is accepted: a body that is not an object, or fields that are
// not strings, decode to empty values. Only bytes that are not JSON fail.
func DecodePaymentNotification(body []byte) (PaymentNotification, error) {
	var n PaymentNotification
	if len(body) == 0 {
		return n, nil
	}
	if !json.Valid(body) {
		return n, ErrInvalidPayload
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		// valid JSON that is not an object
		return n, nil
	}
	n.ExternalReference, _ = fields["external_reference"].(string)
	n.Status, _ = fields["status"].(string)
	n.PayerEmail, _ = fields["payer_email"].(string)
	return n, nil
}

// IsApproved reports whether the notification should trigger a grant.
func (n PaymentNotification) IsApproved() bool {
	return n.Status == PaymentStatusApproved
}

// PaymentReference is the decoded "<userId>:<planName>" external reference.
type PaymentReference struct {
	UserID string
	Plan   string
}

// PaymentLog is the audit entry posted to the log channel after a grant.
type PaymentLog struct {
	UserID     string
	Plan       string
	PayerEmail string
	PaidAt     time.Time
}
