package stockbit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/wonny/bandarscan/pkg/httputil"
	"github.com/wonny/bandarscan/pkg/logger"
)

// Client handles communication with the Stockbit market data API
// ⭐ SSOT: 브로커 요약 / 호가 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Stockbit client. Auth headers and pacing are
// configured on httpClient by the caller.
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.Module("stockbit"),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) endpoint(path string, params url.Values) string {
	full := c.baseURL + path
	if len(params) > 0 {
		full += "?" + params.Encode()
	}
	return full
}

// FetchMarketDetector fetches the broker summary of symbol between from and to (YYYY-MM-DD).
func (c *Client) FetchMarketDetector(ctx context.Context, symbol, from, to string) (*MarketDetector, error) {
	code := strings.ToUpper(strings.TrimSpace(symbol))

	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	params.Set("transaction_type", "TRANSACTION_TYPE_NET")
	params.Set("market_board", "MARKET_BOARD_REGULER")
	params.Set("investor_type", "INVESTOR_TYPE_ALL")
	params.Set("limit", "25")

	var resp marketDetectorResponse
	if err := c.httpClient.GetJSON(ctx, c.endpoint("/marketdetectors/"+url.PathEscape(code), params), &resp); err != nil {
		return nil, fmt.Errorf("market detector %s: %w", code, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":  code,
		"brokers": len(resp.Data.BrokerSummary.BrokersBuy),
	}).Debug("Fetched market detector")

	return &resp.Data, nil
}

// FetchOrderbook fetches the current order book of symbol.
func (c *Client) FetchOrderbook(ctx context.Context, symbol string) (*Orderbook, error) {
	code := strings.ToUpper(strings.TrimSpace(symbol))

	body, err := c.httpClient.GetBytes(ctx, c.endpoint("/company-price-feed/v2/orderbook/companies/"+url.PathEscape(code), nil))
	if err != nil {
		return nil, fmt.Errorf("orderbook %s: %w", code, err)
	}

	ob, err := decodeOrderbook(body)
	if err != nil {
		return nil, fmt.Errorf("orderbook %s: %w", code, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": code,
		"bids":   len(ob.Bid),
		"offers": len(ob.Offer),
	}).Debug("Fetched orderbook")

	return ob, nil
}
