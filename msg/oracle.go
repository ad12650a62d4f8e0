package msg

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/govalues/terra"
)

// MaxSaltLen is the maximum length of the salt of an exchange rate vote.
const MaxSaltLen = 4

// voteHashLen is the length in bytes of an aggregate vote hash.
const voteHashLen = 20

// FormatExchangeRates returns the rates in the form used by oracle votes:
// a comma-separated list of "<rate><quote>" entries ordered by quote
// denomination, for example
//
//	0.000820000000000000ukrw,85.123456000000000000uusd
//
// The base denominations of the rates are not included.
func FormatExchangeRates(rates []terra.ExchangeRate) string {
	sorted := make([]terra.ExchangeRate, len(rates))
	copy(sorted, rates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Quote() < sorted[j].Quote() })
	parts := make([]string, len(sorted))
	for i, r := range sorted {
		text, _ := r.Dec().MarshalText() // never fails
		parts[i] = string(text) + r.Quote()
	}
	return strings.Join(parts, ",")
}

// AggregateVoteHash returns the hex-encoded hash committed to by an exchange
// rate prevote: the first 20 bytes of SHA-256("<salt>:<rates>:<validator>").
// The rates must be formatted with [FormatExchangeRates].
func AggregateVoteHash(salt, rates string, validator terra.ValAddress) string {
	sum := sha256.Sum256([]byte(salt + ":" + rates + ":" + validator.String()))
	return hex.EncodeToString(sum[:voteHashLen])
}

// MsgAggregateExchangeRatePrevote commits a validator to an exchange rate
// vote without revealing it.
type MsgAggregateExchangeRatePrevote struct {
	Hash      string           `json:"hash"`
	Feeder    terra.AccAddress `json:"feeder"`
	Validator terra.ValAddress `json:"validator"`
}

// Type implements the [Msg] interface.
func (m MsgAggregateExchangeRatePrevote) Type() string {
	return "oracle/MsgAggregateExchangeRatePrevote"
}

// ValidateBasic requires a hex hash of 20 bytes and valid feeder and
// validator addresses.
func (m MsgAggregateExchangeRatePrevote) ValidateBasic() error {
	bz, err := hex.DecodeString(m.Hash)
	if err != nil {
		return invalid("hash", err)
	}
	if len(bz) != voteHashLen {
		return invalidf("hash", "length %v, want %v bytes", len(bz), voteHashLen)
	}
	if err := checkAddress("feeder", m.Feeder); err != nil {
		return err
	}
	return checkAddress("validator", m.Validator)
}

// MsgAggregateExchangeRateVote reveals the exchange rates committed to by a
// previous prevote.
// All rates must share the same base denomination, usually "uluna".
type MsgAggregateExchangeRateVote struct {
	ExchangeRates []terra.ExchangeRate
	Salt          string
	Feeder        terra.AccAddress
	Validator     terra.ValAddress
}

// Type implements the [Msg] interface.
func (m MsgAggregateExchangeRateVote) Type() string {
	return "oracle/MsgAggregateExchangeRateVote"
}

// ValidateBasic requires positive rates sharing one base denomination,
// without duplicate quotes, a salt of 1 to [MaxSaltLen] bytes, and valid
// feeder and validator addresses.
func (m MsgAggregateExchangeRateVote) ValidateBasic() error {
	if len(m.ExchangeRates) == 0 {
		return invalidf("exchange_rates", "no exchange rates")
	}
	base := m.ExchangeRates[0].Base()
	seen := make(map[string]bool, len(m.ExchangeRates))
	for _, r := range m.ExchangeRates {
		if !r.Dec().IsPos() {
			return invalidf("exchange_rates", "rate %v must be positive", r)
		}
		if r.Base() != base {
			return invalidf("exchange_rates", "rate %v does not have base %v", r, base)
		}
		if seen[r.Quote()] {
			return invalidf("exchange_rates", "duplicate denomination %v", r.Quote())
		}
		seen[r.Quote()] = true
	}
	if len(m.Salt) == 0 || len(m.Salt) > MaxSaltLen {
		return invalidf("salt", "length %v, want 1 to %v", len(m.Salt), MaxSaltLen)
	}
	if err := checkAddress("feeder", m.Feeder); err != nil {
		return err
	}
	return checkAddress("validator", m.Validator)
}

// Prevote returns the prevote that commits to this vote.
func (m MsgAggregateExchangeRateVote) Prevote() MsgAggregateExchangeRatePrevote {
	return MsgAggregateExchangeRatePrevote{
		Hash:      AggregateVoteHash(m.Salt, FormatExchangeRates(m.ExchangeRates), m.Validator),
		Feeder:    m.Feeder,
		Validator: m.Validator,
	}
}

// MarshalJSON implements the [json.Marshaler] interface.
// The exchange rates are encoded with [FormatExchangeRates].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (m MsgAggregateExchangeRateVote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ExchangeRates string           `json:"exchange_rates"`
		Salt          string           `json:"salt"`
		Feeder        terra.AccAddress `json:"feeder"`
		Validator     terra.ValAddress `json:"validator"`
	}{
		ExchangeRates: FormatExchangeRates(m.ExchangeRates),
		Salt:          m.Salt,
		Feeder:        m.Feeder,
		Validator:     m.Validator,
	})
}

// MsgDelegateFeedConsent authorizes an account to submit oracle votes on
// behalf of a validator.
type MsgDelegateFeedConsent struct {
	Operator terra.ValAddress `json:"operator"`
	Delegate terra.AccAddress `json:"delegate"`
}

// Type implements the [Msg] interface.
func (m MsgDelegateFeedConsent) Type() string {
	return "oracle/MsgDelegateFeedConsent"
}

// ValidateBasic requires a valid operator address and delegate account.
func (m MsgDelegateFeedConsent) ValidateBasic() error {
	if err := checkAddress("operator", m.Operator); err != nil {
		return err
	}
	return checkAddress("delegate", m.Delegate)
}
