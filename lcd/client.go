// Package lcd implements a small client for the REST interface (LCD) of a
// Terra node.
// Responses are decoded into the value types of the terra package.
package lcd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/sirupsen/logrus"

	"github.com/govalues/terra"
)

// Codespace is the error codespace of the lcd package.
const Codespace = "lcd"

var (
	// ErrQuery is returned when the node answers with a non-2xx status.
	ErrQuery = errorsmod.Register(Codespace, 2, "query failed")
	// ErrChainID is returned when the node serves another chain.
	ErrChainID = errorsmod.Register(Codespace, 3, "chain id mismatch")
)

// OracleBase is the base denomination of the oracle exchange rates.
const OracleBase = "uluna"

// maxErrorBody limits how much of an error response is kept.
const maxErrorBody = 4 << 10

// Client queries a Terra node.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	chainID    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from the configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger; the default is the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the node at cfg.URL.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		chainID: cfg.ChainID,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type pagination struct {
	NextKey string `json:"next_key"`
}

type balanceCoin struct {
	Denom  string        `json:"denom"`
	Amount terra.Uint128 `json:"amount"`
}

type balancesResponse struct {
	Balances   []balanceCoin `json:"balances"`
	Pagination *pagination   `json:"pagination"`
}

// Balance returns the bank balance of an account.
// Pages are followed until the node reports no further key; a key that
// repeats fails with [ErrQuery].
// Denominations that are not plain letters, such as IBC vouchers, are
// skipped.
func (c *Client) Balance(ctx context.Context, addr terra.AccAddress) (terra.Coins, error) {
	if err := addr.Role().Check(addr.String()); err != nil {
		return terra.Coins{}, fmt.Errorf("lcd: balance: %w", err)
	}
	var total terra.Coins
	query := url.Values{}
	seen := make(map[string]bool)
	for {
		var resp balancesResponse
		if err := c.get(ctx, "/cosmos/bank/v1beta1/balances/"+addr.String(), query, &resp); err != nil {
			return terra.Coins{}, err
		}
		for _, b := range resp.Balances {
			coin, err := terra.NewCoin(b.Denom, b.Amount)
			if err != nil {
				c.logger.WithField("denom", b.Denom).Debug("lcd: skipping balance")
				continue
			}
			total.Set(coin)
		}
		if resp.Pagination == nil || resp.Pagination.NextKey == "" {
			return total, nil
		}
		next := resp.Pagination.NextKey
		if seen[next] {
			c.logger.WithField("next_key", next).Warn("lcd: pagination key repeated")
			return terra.Coins{}, fmt.Errorf("lcd: balance of %v: pagination key %q repeated: %w", addr, next, ErrQuery)
		}
		seen[next] = true
		query.Set("pagination.key", next)
	}
}

type decCoin struct {
	Denom  string    `json:"denom"`
	Amount terra.Dec `json:"amount"`
}

type exchangeRatesResponse struct {
	ExchangeRates []decCoin `json:"exchange_rates"`
}

// ExchangeRates returns the current oracle exchange rates, each quoting one
// denomination per [OracleBase].
func (c *Client) ExchangeRates(ctx context.Context) ([]terra.ExchangeRate, error) {
	var resp exchangeRatesResponse
	if err := c.get(ctx, "/terra/oracle/v1beta1/denoms/exchange_rates", nil, &resp); err != nil {
		return nil, err
	}
	rates := make([]terra.ExchangeRate, 0, len(resp.ExchangeRates))
	for _, dc := range resp.ExchangeRates {
		r, err := terra.NewExchRate(OracleBase, dc.Denom, dc.Amount)
		if err != nil {
			return nil, fmt.Errorf("lcd: failed to build exchange rate: %w", err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}

type paramsResponse struct {
	Params json.RawMessage `json:"params"`
}

// WasmParameters returns the parameters of the wasm module as raw JSON.
func (c *Client) WasmParameters(ctx context.Context) (json.RawMessage, error) {
	var resp paramsResponse
	if err := c.get(ctx, "/terra/wasm/v1beta1/params", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Params, nil
}

type latestBlockResponse struct {
	Block struct {
		Header struct {
			ChainID string `json:"chain_id"`
			Height  string `json:"height"`
		} `json:"header"`
	} `json:"block"`
}

// LatestHeight returns the height of the latest block.
// It fails with [ErrChainID] if the block belongs to another chain than the
// configured one.
func (c *Client) LatestHeight(ctx context.Context) (int64, error) {
	var resp latestBlockResponse
	if err := c.get(ctx, "/cosmos/base/tendermint/v1beta1/blocks/latest", nil, &resp); err != nil {
		return 0, err
	}
	header := resp.Block.Header
	if c.chainID != "" && header.ChainID != c.chainID {
		return 0, fmt.Errorf("lcd: got %q, want %q: %w", header.ChainID, c.chainID, ErrChainID)
	}
	height, err := strconv.ParseInt(header.Height, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("lcd: failed to parse block height: %w", err)
	}
	return height, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	log := c.logger.WithField("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("lcd: failed to create request: %w", err)
	}
	log.Debug("lcd: request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("lcd: request failed")
		return fmt.Errorf("lcd: failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.WithField("status", resp.StatusCode).Warn("lcd: unexpected status code")
		return fmt.Errorf("lcd: %v: status code %d, body: %s: %w", path, resp.StatusCode, body, ErrQuery)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		log.WithError(err).Warn("lcd: failed to decode response")
		return fmt.Errorf("lcd: failed to decode response: %w", err)
	}
	return nil
}
