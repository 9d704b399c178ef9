package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePaymentNotification(t *testing.T) {
	n, err := DecodePaymentNotification([]byte(`{"external_reference":"42:Plano Pro","status":"approved","payer_email":"a@b.c","id":991}`))
	require.NoError(t, err)
	assert.Equal(t, PaymentNotification{ExternalReference: "42:Plano Pro", Status: "approved", PayerEmail: "a@b.c"}, n)
	assert.True(t, n.IsApproved())
}

func TestDecodePaymentNotification_Lenient(t *testing.T) {
	tests := []struct {
		body string
		want PaymentNotification
	}{
		{body: ``, want: PaymentNotification{}},
		{body: `{}`, want: PaymentNotification{}},
		{body: `[]`, want: PaymentNotification{}},
		{body: `null`, want: PaymentNotification{}},
		{body: `"approved"`, want: PaymentNotification{}},
		{body: `{"status":"approved","external_reference":12345}`, want: PaymentNotification{Status: "approved"}},
		{body: `{"status":true,"payer_email":["x"]}`, want: PaymentNotification{}},
	}

	for _, tt := range tests {
		n, err := DecodePaymentNotification([]byte(tt.body))
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.want, n, tt.body)
	}
}

func TestDecodePaymentNotification_NotJSON(t *testing.T) {
	for _, body := range []string{`{"status":`, `status=approved`, `<xml/>`} {
		_, err := DecodePaymentNotification([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidPayload, body)
	}
}

func TestPaymentNotificationIsApproved(t *testing.T) {
	assert.True(t, PaymentNotification{Status: "approved"}.IsApproved())
	assert.False(t, PaymentNotification{Status: "Approved"}.IsApproved())
	assert.False(t, PaymentNotification{Status: "pending"}.IsApproved())
}
