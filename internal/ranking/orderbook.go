package ranking

import (
	"math"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/internal/external/stockbit"
)

// lotScale converts aggregate lot totals into the unit the calculator expects
const lotScale = 100

// ReadOrderBook reduces an order book to a snapshot. It never fails; missing
// or malformed numbers read as 0.
func ReadOrderBook(ob *stockbit.Orderbook) contracts.OrderBookSnapshot {
	if ob == nil {
		return contracts.OrderBookSnapshot{}
	}

	snap := contracts.OrderBookSnapshot{
		LastPrice:            ob.Close.Float64(),
		BestOfferAbove:       ob.High.Float64(),
		TotalBidVolumeLots:   math.Trunc(ob.TotalBidOffer.Bid.Lot.Float64()) / lotScale,
		TotalOfferVolumeLots: math.Trunc(ob.TotalBidOffer.Offer.Lot.Float64()) / lotScale,
	}

	if len(ob.Offer) > 0 {
		snap.BestOfferAbove = ob.Offer[0].Price.Float64()
		for _, lvl := range ob.Offer[1:] {
			snap.BestOfferAbove = math.Max(snap.BestOfferAbove, lvl.Price.Float64())
		}
	}

	if len(ob.Bid) > 0 {
		snap.BestBidBelow = ob.Bid[0].Price.Float64()
		for _, lvl := range ob.Bid[1:] {
			snap.BestBidBelow = math.Min(snap.BestBidBelow, lvl.Price.Float64())
		}
	}

	return snap
}
