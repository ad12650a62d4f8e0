package terra

import (
	"fmt"

	"github.com/holiman/uint256"
)

// decOneSquared is 10^36, the raw value of 1 divided by a raw rate.
var decOneSquared = func() uint256.Int {
	var z uint256.Int
	z.Mul(&decOne, &decOne)
	return z
}()

// ExchangeRate represents a unidirectional exchange rate between two
// denominations, such as the oracle price of uluna in uusd.
// The zero value has empty denominations and a zero rate; it cannot be
// produced by [NewExchRate] and cannot convert anything.
// This type is designed to be safe for concurrent use by multiple goroutines.
type ExchangeRate struct {
	base  string // denomination being exchanged
	quote string // denomination obtained in exchange for the base one
	value Dec    // units of quote per unit of base
}

// NewExchRate returns a new exchange rate between the base and quote denominations.
//
// NewExchRate returns an error if:
//   - either denomination is not valid ([ErrParse]);
//   - the rate is not positive ([ErrInvalidRate]);
//   - the denominations are equal and the rate is not 1 ([ErrInvalidRate]).
func NewExchRate(base, quote string, rate Dec) (ExchangeRate, error) {
	if !validDenom(base) {
		return ExchangeRate{}, fmt.Errorf("invalid base denom %q: %w", base, ErrParse)
	}
	if !validDenom(quote) {
		return ExchangeRate{}, fmt.Errorf("invalid quote denom %q: %w", quote, ErrParse)
	}
	if !rate.IsPos() {
		return ExchangeRate{}, fmt.Errorf("%v/%v %v: rate must be positive: %w", base, quote, rate, ErrInvalidRate)
	}
	if base == quote && !rate.IsOne() {
		return ExchangeRate{}, fmt.Errorf("%v/%v %v: rate must be equal to 1: %w", base, quote, rate, ErrInvalidRate)
	}
	return ExchangeRate{base: base, quote: quote, value: rate}, nil
}

// ParseExchRate converts denomination and decimal strings to an exchange rate.
// See also constructor [ParseDec].
func ParseExchRate(base, quote, rate string) (ExchangeRate, error) {
	d, err := ParseDec(rate)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("rate parsing: %w", err)
	}
	r, err := NewExchRate(base, quote, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("rate construction: %w", err)
	}
	return r, nil
}

// MustParseExchRate is like [ParseExchRate] but panics if any of the strings cannot be parsed.
// It simplifies safe initialization of global variables holding exchange rates.
func MustParseExchRate(base, quote, rate string) ExchangeRate {
	r, err := ParseExchRate(base, quote, rate)
	if err != nil {
		panic(fmt.Sprintf("ParseExchRate(%q, %q, %q) failed: %v", base, quote, rate, err))
	}
	return r
}

// Base returns the denomination being exchanged.
func (r ExchangeRate) Base() string {
	return r.base
}

// Quote returns the denomination obtained in exchange for the base denomination.
func (r ExchangeRate) Quote() string {
	return r.quote
}

// Dec returns the rate as a decimal.
func (r ExchangeRate) Dec() Dec {
	return r.value
}

// Mul returns an exchange rate with the same denominations,
// but with the rate multiplied by a positive factor e.
// The product is truncated like in [Dec.Mul].
func (r ExchangeRate) Mul(e Dec) (ExchangeRate, error) {
	if !e.IsPos() {
		return ExchangeRate{}, fmt.Errorf("computing [%v * %v]: factor must be positive: %w", r, e, ErrInvalidRate)
	}
	d, err := r.value.Mul(e)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("computing [%v * %v]: %w", r, e, err)
	}
	q, err := NewExchRate(r.base, r.quote, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("computing [%v * %v]: %w", r, e, err)
	}
	return q, nil
}

// CanConv returns true if [ExchangeRate.Conv] can be used to convert the given coin.
func (r ExchangeRate) CanConv(c Coin) bool {
	return c.Denom() == r.base &&
		r.base != NoDenom &&
		r.quote != NoDenom &&
		r.value.IsPos()
}

// Conv returns the coin converted from the base denomination to the quote
// denomination.
// The fractional part of the converted amount is truncated.
//
// Conv returns an error if:
//   - the denomination of the coin is not the base denomination ([ErrDenomMismatch]);
//   - the converted amount does not fit in a [Uint128] ([ErrOverflow]).
func (r ExchangeRate) Conv(c Coin) (Coin, error) {
	if !r.CanConv(c) {
		return Coin{}, fmt.Errorf("converting %v with %v: %w", c, r, ErrDenomMismatch)
	}
	var z uint256.Int
	z.Mul(&c.amount.v, &r.value.v) // < 2^255, the rate is positive
	z.Div(&z, &decOne)
	amount, err := newUint128Safe(&z)
	if err != nil {
		return Coin{}, fmt.Errorf("converting %v with %v: %w", c, r, err)
	}
	return newCoinUnsafe(r.quote, amount), nil
}

// Inv returns the inverse of the exchange rate, truncated to 18 digits after
// the decimal point.
//
// Inv returns an error if the inverse is too small to be represented.
func (r ExchangeRate) Inv() (ExchangeRate, error) {
	if !r.value.IsPos() {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, ErrDivideByZero)
	}
	var z uint256.Int
	z.Div(&decOneSquared, &r.value.v)
	if z.IsZero() {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, ErrUnderflow)
	}
	return ExchangeRate{base: r.quote, quote: r.base, value: Dec{v: z}}, nil
}

// SameDenoms returns true if exchange rates have the same base and quote
// denominations.
func (r ExchangeRate) SameDenoms(q ExchangeRate) bool {
	return q.base == r.base && q.quote == r.quote
}

// String method implements the [fmt.Stringer] interface and returns a string
// representation of the exchange rate, such as "uluna/uusd 1.5".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r ExchangeRate) String() string {
	return r.base + "/" + r.quote + " " + r.value.String()
}
