package stockbit

type marketDetectorResponse struct {
	Message string         `json:"message"`
	Data    MarketDetector `json:"data"`
}

// MarketDetector is the broker accumulation summary of one symbol over a date range
type MarketDetector struct {
	From          string        `json:"from"`
	To            string        `json:"to"`
	BrokerSummary BrokerSummary `json:"broker_summary"`
}

// BrokerSummary holds the net buyers ranked by significance, most significant first
type BrokerSummary struct {
	BrokersBuy []BrokerRecord `json:"brokers_buy"`
}

// BrokerRecord is one broker's net transaction over the range
type BrokerRecord struct {
	BrokerCode string `json:"netbs_broker_code"`
	Lot        Number `json:"blot"`                // 순매수 lot
	Value      Number `json:"bval"`                // 순매수 금액
	AvgPrice   Number `json:"netbs_buy_avg_price"` // 평균 단가
	Type       string `json:"type"`
}
