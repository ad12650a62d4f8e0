package lcd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/govalues/terra"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *logtest.Hook) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger, hook := logtest.NewNullLogger()
	c := New(Config{URL: srv.URL + "/", ChainID: "columbus-5"}, WithLogger(logger))
	return c, hook
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func testAddress(t *testing.T) terra.AccAddress {
	t.Helper()
	a, err := terra.NewAccAddressFromBytes(bytes.Repeat([]byte{0x0b}, 20))
	require.NoError(t, err)
	return a
}

func TestClient_Balance(t *testing.T) {
	addr := testAddress(t)

	t.Run("paginated", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/cosmos/bank/v1beta1/balances/"+addr.String(), r.URL.Path)
			switch r.URL.Query().Get("pagination.key") {
			case "":
				respond(`{
					"balances": [
						{"denom": "uluna", "amount": "1000000"},
						{"denom": "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2", "amount": "5"}
					],
					"pagination": {"next_key": "AAE=", "total": "0"}
				}`)(w, r)
			case "AAE=":
				respond(`{
					"balances": [{"denom": "uusd", "amount": "2500"}],
					"pagination": {"next_key": null, "total": "0"}
				}`)(w, r)
			default:
				w.WriteHeader(http.StatusBadRequest)
			}
		})

		got, err := c.Balance(context.Background(), addr)
		require.NoError(t, err)
		require.True(t, got.Equal(terra.MustParseCoins("1000000uluna,2500uusd")), got.String())
	})

	t.Run("repeated page key", func(t *testing.T) {
		var requests atomic.Int32
		c, hook := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			respond(`{
				"balances": [{"denom": "uluna", "amount": "1"}],
				"pagination": {"next_key": "AAE=", "total": "0"}
			}`)(w, r)
		})

		_, err := c.Balance(context.Background(), addr)
		require.ErrorIs(t, err, ErrQuery)
		require.ErrorContains(t, err, "repeated")
		require.Equal(t, int32(2), requests.Load())
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("invalid address", func(t *testing.T) {
		c, _ := newTestClient(t, func(http.ResponseWriter, *http.Request) {
			t.Error("no request expected")
		})
		_, err := c.Balance(context.Background(), terra.UncheckedAccAddress("terra1xyz"))
		require.ErrorIs(t, err, terra.ErrInvalidAddress)
	})

	t.Run("server error", func(t *testing.T) {
		c, hook := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code": 2, "message": "boom"}`))
		})
		_, err := c.Balance(context.Background(), addr)
		require.ErrorIs(t, err, ErrQuery)
		require.ErrorContains(t, err, "boom")
		require.ErrorContains(t, err, "500")

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.WarnLevel, entry.Level)
		require.Equal(t, http.StatusInternalServerError, entry.Data["status"])
	})
}

func TestClient_ExchangeRates(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/terra/oracle/v1beta1/denoms/exchange_rates", r.URL.Path)
			respond(`{"exchange_rates": [
				{"denom": "ukrw", "amount": "0.000820000000000000"},
				{"denom": "uusd", "amount": "85.123456000000000000"}
			]}`)(w, r)
		})

		rates, err := c.ExchangeRates(context.Background())
		require.NoError(t, err)
		require.Len(t, rates, 2)
		require.Equal(t, OracleBase, rates[0].Base())
		require.Equal(t, "ukrw", rates[0].Quote())
		require.Equal(t, "uusd", rates[1].Quote())
		require.Equal(t, 0, rates[1].Dec().Cmp(terra.MustParseDec("85.123456")))
	})

	t.Run("zero rate", func(t *testing.T) {
		c, _ := newTestClient(t, respond(`{"exchange_rates": [{"denom": "uusd", "amount": "0"}]}`))
		_, err := c.ExchangeRates(context.Background())
		require.ErrorContains(t, err, "failed to build exchange rate")
	})

	t.Run("malformed body", func(t *testing.T) {
		c, hook := newTestClient(t, respond(`not json`))
		_, err := c.ExchangeRates(context.Background())
		require.ErrorContains(t, err, "failed to decode response")
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})
}

func TestClient_WasmParameters(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/terra/wasm/v1beta1/params", r.URL.Path)
		respond(`{"params": {"max_contract_size": "614400", "max_contract_gas": "20000000"}}`)(w, r)
	})

	params, err := c.WasmParameters(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"max_contract_size": "614400", "max_contract_gas": "20000000"}`, string(params))
}

func TestClient_LatestHeight(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestClient(t, respond(`{"block": {"header": {"chain_id": "columbus-5", "height": "7540102"}}}`))
		height, err := c.LatestHeight(context.Background())
		require.NoError(t, err)
		require.Equal(t, int64(7540102), height)
	})

	t.Run("other chain", func(t *testing.T) {
		c, _ := newTestClient(t, respond(`{"block": {"header": {"chain_id": "bombay-12", "height": "1"}}}`))
		_, err := c.LatestHeight(context.Background())
		require.ErrorIs(t, err, ErrChainID)
	})

	t.Run("canceled", func(t *testing.T) {
		c, hook := newTestClient(t, respond(`{}`))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.LatestHeight(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})
}
