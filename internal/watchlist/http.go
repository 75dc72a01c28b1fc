package watchlist

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/wonny/bandarscan/internal/contracts"
	"github.com/wonny/bandarscan/pkg/httputil"
	"github.com/wonny/bandarscan/pkg/logger"
)

// HTTPProvider resolves watchlist groups through the watchlist service API
type HTTPProvider struct {
	httpClient *httputil.Client
	baseURL    string
	logger     *logger.Logger
}

// NewHTTPProvider creates a provider calling {baseURL}/api/watchlist?groupId=
func NewHTTPProvider(httpClient *httputil.Client, baseURL string, log *logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     log.Module("watchlist"),
	}
}

// FetchGroup returns the members of a watchlist group
func (p *HTTPProvider) FetchGroup(ctx context.Context, groupID string) ([]contracts.SymbolRequest, error) {
	endpoint := fmt.Sprintf("%s/api/watchlist?%s", p.baseURL, url.Values{"groupId": {groupID}}.Encode())

	body, err := p.httpClient.GetBytes(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch watchlist group %s: %w", groupID, err)
	}

	symbols, err := Normalize(body)
	if err != nil {
		return nil, fmt.Errorf("watchlist group %s: %w", groupID, err)
	}

	p.logger.WithFields(map[string]interface{}{
		"group_id": groupID,
		"count":    len(symbols),
	}).Debug("Fetched watchlist group")

	return symbols, nil
}
