package stockbit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Orderbook is the order book snapshot of one symbol
type Orderbook struct {
	Symbol        string        `json:"symbol"`
	Close         Number        `json:"close"`
	High          Number        `json:"high"`
	Bid           []PriceLevel  `json:"bid"`
	Offer         []PriceLevel  `json:"offer"`
	TotalBidOffer TotalBidOffer `json:"total_bid_offer"`
}

// PriceLevel is one price row on either side of the book
type PriceLevel struct {
	Price  Number `json:"price"`
	Volume Number `json:"volume"`
	QueNum Number `json:"que_num"`
}

// TotalBidOffer holds the aggregate lot counts of both sides
type TotalBidOffer struct {
	Bid   LotTotal `json:"bid"`
	Offer LotTotal `json:"offer"`
}

// LotTotal is an aggregate lot count, usually sent as "1,234"
type LotTotal struct {
	Lot Number `json:"lot"`
}

// orderbookShape enumerates the payload layouts the orderbook endpoint returns.
type orderbookShape int

const (
	// shapeEnveloped: {"message": "...", "data": {<orderbook>}}
	shapeEnveloped orderbookShape = iota
	// shapeBare: {<orderbook>}
	shapeBare
)

var errNotObject = errors.New("orderbook payload is not a JSON object")

// detectOrderbookShape inspects raw and returns its layout together with the
// bytes holding the orderbook object itself.
func detectOrderbookShape(raw []byte) (orderbookShape, []byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return 0, nil, errNotObject
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return 0, nil, fmt.Errorf("decode orderbook envelope: %w", err)
	}

	data := bytes.TrimSpace(envelope.Data)
	if len(data) > 0 && data[0] == '{' {
		return shapeEnveloped, data, nil
	}
	return shapeBare, trimmed, nil
}

// decodeOrderbook is the single adapter for every orderbook payload shape.
func decodeOrderbook(raw []byte) (*Orderbook, error) {
	_, body, err := detectOrderbookShape(raw)
	if err != nil {
		return nil, err
	}

	var ob Orderbook
	if err := json.Unmarshal(body, &ob); err != nil {
		return nil, fmt.Errorf("decode orderbook: %w", err)
	}
	return &ob, nil
}
