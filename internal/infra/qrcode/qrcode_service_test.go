package qrcode

import (
	"encoding/json"
	"testing"

	"pawparadise/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isPNG(b []byte) bool {
	return len(b) > 4 && b[0] == 0x89 && b[1] == 'P' && b[2] == 'N' && b[3] == 'G'
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"nil config", nil},
		{"no qrcode section", &config.Config{}},
		{"configured", &config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"}}},
		{"zero size", &config.Config{QRCode: &config.QRCodeConfig{ErrorCorrectionLevel: "L"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(tt.cfg)
			require.NotNil(t, svc)

			png, err := svc.GenerateOrderQR(uuid.New())
			require.NoError(t, err)
			assert.True(t, isPNG(png))
		})
	}
}

func TestQRCodeService_GenerateOrderQR_Levels(t *testing.T) {
	for _, level := range []string{"L", "M", "Q", "H", "invalid"} {
		t.Run(level, func(t *testing.T) {
			png, err := NewQRCodeService(256, level).GenerateOrderQR(uuid.New())
			require.NoError(t, err)
			assert.True(t, isPNG(png))
		})
	}
}

func TestQRCodeService_ParseOrderQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	orderID := uuid.New()

	valid, err := json.Marshal(OrderQRData{OrderID: orderID.String(), Type: "order"})
	require.NoError(t, err)
	wrongType, err := json.Marshal(OrderQRData{OrderID: orderID.String(), Type: "subscription"})
	require.NoError(t, err)
	badID, err := json.Marshal(OrderQRData{OrderID: "not-a-uuid", Type: "order"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"valid", string(valid), ""},
		{"invalid json", "invalid json", "failed to unmarshal QR code data"},
		{"wrong type", string(wrongType), "invalid QR code type"},
		{"invalid uuid", string(badID), "failed to parse order ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ParseOrderQR(tt.data)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, orderID, got)
		})
	}
}
