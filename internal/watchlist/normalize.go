package watchlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/wonny/bandarscan/internal/contracts"
)

// ErrProviderFailed is returned when the watchlist service answers success=false.
var ErrProviderFailed = errors.New("watchlist provider reported failure")

// response is the outer watchlist envelope
type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// entry is one watchlist row; the service uses either symbol or company_code.
type entry struct {
	Symbol      string      `json:"symbol"`
	CompanyCode string      `json:"company_code"`
	Flag        interface{} `json:"flag"`
	Sector      string      `json:"sector"`
	LastPrice   interface{} `json:"last_price"`
}

// dataShape enumerates the layouts seen in the "data" field.
type dataShape int

const (
	shapeEmpty        dataShape = iota // null / absent
	shapeArray                         // [ {entry}, ... ]
	shapeResult                        // { "result": [ ... ] }
	shapeNestedResult                  // { "data": { "result": [ ... ] } }
	shapeNestedArray                   // { "data": [ ... ] }
)

// detectShape classifies data and returns the bytes of the entry array.
func detectShape(data json.RawMessage) (dataShape, json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return shapeEmpty, nil, nil
	}

	switch trimmed[0] {
	case '[':
		return shapeArray, trimmed, nil
	case '{':
	default:
		return 0, nil, fmt.Errorf("unexpected watchlist data: %.32s", trimmed)
	}

	var obj struct {
		Result json.RawMessage `json:"result"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return 0, nil, fmt.Errorf("decode watchlist data: %w", err)
	}

	if isArray(obj.Result) {
		return shapeResult, obj.Result, nil
	}

	inner := bytes.TrimSpace(obj.Data)
	if isArray(inner) {
		return shapeNestedArray, inner, nil
	}
	if len(inner) > 0 && inner[0] == '{' {
		var nested struct {
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(inner, &nested); err != nil {
			return 0, nil, fmt.Errorf("decode nested watchlist data: %w", err)
		}
		if isArray(nested.Result) {
			return shapeNestedResult, nested.Result, nil
		}
	}

	return shapeEmpty, nil, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Normalize is the single adapter from a watchlist service body to SymbolRequests.
func Normalize(body []byte) ([]contracts.SymbolRequest, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode watchlist response: %w", err)
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "failed to fetch watchlist"
		}
		return nil, fmt.Errorf("%w: %s", ErrProviderFailed, msg)
	}

	_, items, err := detectShape(resp.Data)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []contracts.SymbolRequest{}, nil
	}

	var entries []entry
	if err := json.Unmarshal(items, &entries); err != nil {
		return nil, fmt.Errorf("decode watchlist entries: %w", err)
	}

	out := make([]contracts.SymbolRequest, 0, len(entries))
	for _, e := range entries {
		symbol := strings.TrimSpace(e.Symbol)
		if symbol == "" {
			symbol = strings.TrimSpace(e.CompanyCode)
		}
		if symbol == "" {
			continue
		}
		out = append(out, contracts.SymbolRequest{
			Symbol:         symbol,
			Flag:           contracts.ParseFlag(e.Flag),
			Sector:         e.Sector,
			LastKnownPrice: toPrice(e.LastPrice),
		})
	}
	return out, nil
}

func toPrice(v interface{}) float64 {
	if s, ok := v.(string); ok {
		v = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
