package watchlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bandarscan/internal/contracts"
)

func TestNormalize_Shapes(t *testing.T) {
	entries := `[{"symbol":"BBCA","flag":"OK","sector":"Finance","last_price":9500},{"company_code":"tlkm","flag":null,"last_price":"2,750"}]`

	tests := []struct {
		name      string
		body      string
		wantShape dataShape
	}{
		{"bare array", `{"success":true,"data":` + entries + `}`, shapeArray},
		{"result object", `{"success":true,"data":{"result":` + entries + `}}`, shapeResult},
		{"nested result", `{"success":true,"data":{"data":{"result":` + entries + `}}}`, shapeNestedResult},
		{"nested array", `{"success":true,"data":{"data":` + entries + `}}`, shapeNestedArray},
	}

	want := []contracts.SymbolRequest{
		{Symbol: "BBCA", Flag: contracts.FlagOK, Sector: "Finance", LastKnownPrice: 9500},
		{Symbol: "tlkm", Flag: contracts.FlagUnset, LastKnownPrice: 2750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDetectShape(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    dataShape
		wantErr bool
	}{
		{"null", `null`, shapeEmpty, false},
		{"absent", ``, shapeEmpty, false},
		{"array", `[]`, shapeArray, false},
		{"result", `{"result":[]}`, shapeResult, false},
		{"nested result", `{"data":{"result":[]}}`, shapeNestedResult, false},
		{"nested array", `{"data":[]}`, shapeNestedArray, false},
		{"object without members", `{"total":0}`, shapeEmpty, false},
		{"string", `"oops"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, _, err := detectShape([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, shape)
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	got, err := Normalize([]byte(`{"success":true,"data":null}`))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalize_SkipsEntriesWithoutSymbol(t *testing.T) {
	got, err := Normalize([]byte(`{"success":true,"data":[{"sector":"Energy"},{"symbol":"ADRO"}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ADRO", got[0].Symbol)
}

func TestNormalize_ProviderFailure(t *testing.T) {
	_, err := Normalize([]byte(`{"success":false,"error":"group not found"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderFailed))
	assert.Contains(t, err.Error(), "group not found")
}

func TestNormalize_InvalidJSON(t *testing.T) {
	_, err := Normalize([]byte(`<html>`))
	assert.Error(t, err)
}

func TestToPrice(t *testing.T) {
	assert.Equal(t, 1250.0, toPrice("1,250"))
	assert.Equal(t, 88.5, toPrice(88.5))
	assert.Zero(t, toPrice(nil))
	assert.Zero(t, toPrice("-"))
	assert.Zero(t, toPrice(-5.0))
}
