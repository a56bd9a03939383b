package handler

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableField(t *testing.T) {
	type body struct {
		OriginalPrice NullableField[decimal.Decimal] `json:"originalPrice"`
		Dimensions    NullableField[string]          `json:"dimensions"`
	}

	tests := []struct {
		name        string
		json        string
		wantPriceOK bool
		wantPrice   *decimal.Decimal
		wantDimSet  bool
		wantDim     *string
	}{
		{name: "absent", json: `{}`},
		{name: "explicit null clears", json: `{"originalPrice":null,"dimensions":null}`, wantPriceOK: true, wantDimSet: true},
		{
			name:        "values",
			json:        `{"originalPrice":19.99,"dimensions":"10x10"}`,
			wantPriceOK: true,
			wantPrice:   ptr(decimal.RequireFromString("19.99")),
			wantDimSet:  true,
			wantDim:     ptr("10x10"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tt.json), &b))

			price := b.OriginalPrice.Optional()
			assert.Equal(t, tt.wantPriceOK, price.Set)
			if tt.wantPrice == nil {
				assert.Nil(t, price.Value)
			} else {
				require.NotNil(t, price.Value)
				assert.True(t, tt.wantPrice.Equal(*price.Value))
			}

			dim := b.Dimensions.Optional()
			assert.Equal(t, tt.wantDimSet, dim.Set)
			assert.Equal(t, tt.wantDim, dim.Value)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
