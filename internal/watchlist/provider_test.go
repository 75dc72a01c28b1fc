package watchlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bandarscan/pkg/httputil"
	"github.com/wonny/bandarscan/pkg/logger"
)

func TestHTTPProvider_FetchGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/watchlist", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("groupId"))
		w.Write([]byte(`{"success":true,"data":{"data":{"result":[{"symbol":"BBRI","flag":"NG","sector":"Finance","last_price":4300}]}}}`))
	}))
	defer server.Close()

	p := NewHTTPProvider(httputil.New(logger.Nop(), time.Second), server.URL, logger.Nop())

	got, err := p.FetchGroup(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BBRI", got[0].Symbol)
	assert.Equal(t, 4300.0, got[0].LastKnownPrice)
}

func TestHTTPProvider_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewHTTPProvider(httputil.New(logger.Nop(), time.Second), server.URL, logger.Nop())

	_, err := p.FetchGroup(context.Background(), "42")
	assert.Error(t, err)
}

func TestPostgresProvider_FetchGroup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "database connection failed")
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		CREATE TEMP TABLE watchlist_items (
			group_id text, symbol text, flag text, sector text, last_price numeric, position int
		)`)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `
		INSERT INTO watchlist_items VALUES
			('7', 'TLKM', 'Neutral', 'Infra', 2750, 2),
			('7', 'BBCA', 'OK', NULL, NULL, 1),
			('8', 'ASII', NULL, NULL, NULL, 1)`)
	require.NoError(t, err)

	got, err := NewPostgresProvider(tx).FetchGroup(ctx, "7")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "BBCA", got[0].Symbol)
	assert.Equal(t, "TLKM", got[1].Symbol)
	assert.Equal(t, 2750.0, got[1].LastKnownPrice)
}
