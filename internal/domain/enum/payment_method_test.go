package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    PaymentMethod
		wantErr bool
	}{
		{in: "Cash", want: PaymentMethodCash},
		{in: "card", want: PaymentMethodCard},
		{in: " UPI ", want: PaymentMethodUPI},
		{in: "netbanking", want: PaymentMethodNetBanking},
		{in: "Cheque", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePaymentMethod(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentMethodJSON(t *testing.T) {
	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"upi"`), &m))
	assert.Equal(t, PaymentMethodUPI, m)

	assert.Error(t, json.Unmarshal([]byte(`"Barter"`), &m))

	require.NoError(t, json.Unmarshal([]byte(`""`), &m))
	assert.Equal(t, DefaultPaymentMethod, m)

	out, err := json.Marshal(PaymentMethodNetBanking)
	require.NoError(t, err)
	assert.JSONEq(t, `"NetBanking"`, string(out))
}

func TestPaymentMethodScan(t *testing.T) {
	var m PaymentMethod
	require.NoError(t, m.Scan(nil))
	assert.Equal(t, DefaultPaymentMethod, m)

	require.NoError(t, m.Scan([]byte("Card")))
	assert.Equal(t, PaymentMethodCard, m)
	assert.True(t, m.IsValid())
	assert.False(t, PaymentMethod("Gold").IsValid())

	require.NoError(t, m.Scan("upi"))
	assert.Equal(t, PaymentMethodUPI, m)

	assert.Error(t, m.Scan("Barter"))
	assert.Error(t, m.Scan([]byte("")))
	assert.Error(t, m.Scan(42))
	assert.Equal(t, PaymentMethodUPI, m)
}
