package terra

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/govalues/decimal"
)

// NoDenom is the denomination of the zero [Coin].
// It cannot be produced by [ParseCoin] or [NewCoin].
const NoDenom = ""

// coinPattern is compiled on first use and shared read-only afterwards.
var coinPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`^([0-9]+)([a-zA-Z]+)$`)
})

// Coin type represents an amount of a single token denomination, such as
// "1000000uluna".
// Its zero value has the denomination [NoDenom] and amount 0.
// Coin is designed to be safe for concurrent use by multiple goroutines.
type Coin struct {
	denom  string  // token denomination
	amount Uint128 // amount in the smallest unit of the denomination
}

// newCoinUnsafe creates a new coin without checking the denomination.
// Use it only if you are absolutely sure that the arguments are valid.
func newCoinUnsafe(denom string, amount Uint128) Coin {
	return Coin{denom: denom, amount: amount}
}

// validDenom reports whether denom is a non-empty run of ASCII letters.
func validDenom(denom string) bool {
	if denom == "" {
		return false
	}
	for i := 0; i < len(denom); i++ {
		c := denom[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// NewCoin returns a coin with the specified denomination and amount.
//
// NewCoin returns an error wrapping [ErrParse] if the denomination is not
// a non-empty run of letters.
func NewCoin(denom string, amount Uint128) (Coin, error) {
	if !validDenom(denom) {
		return Coin{}, fmt.Errorf("invalid denom %q: %w", denom, ErrParse)
	}
	return newCoinUnsafe(denom, amount), nil
}

// UncheckedCoin returns a coin without validating the denomination.
// Use it only for denominations that were already validated.
func UncheckedCoin(denom string, amount Uint128) Coin {
	return newCoinUnsafe(denom, amount)
}

// MustNewCoin is like [NewCoin] but panics if the coin cannot be constructed.
// It simplifies safe initialization of global variables holding coins.
func MustNewCoin(denom string, amount Uint128) Coin {
	c, err := NewCoin(denom, amount)
	if err != nil {
		panic(fmt.Sprintf("NewCoin(%q, %v) failed: %v", denom, amount, err))
	}
	return c
}

// ParseCoin converts a string to a coin.
// The input string must be a run of digits immediately followed by a run of
// letters, for example:
//
//	1000000uluna
//	0uusd
//
// ParseCoin returns an error wrapping [ErrParse] if either run is missing or
// the amount does not fit in a [Uint128].
func ParseCoin(s string) (Coin, error) {
	m := coinPattern().FindStringSubmatch(s)
	if m == nil {
		return Coin{}, fmt.Errorf("invalid coin %q: %w", s, ErrParse)
	}
	amount, err := ParseUint128(m[1])
	if err != nil {
		return Coin{}, fmt.Errorf("parsing coin %q: %w", s, err)
	}
	return newCoinUnsafe(m[2], amount), nil
}

// MustParseCoin is like [ParseCoin] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding coins.
func MustParseCoin(s string) Coin {
	c, err := ParseCoin(s)
	if err != nil {
		panic(fmt.Sprintf("ParseCoin(%q) failed: %v", s, err))
	}
	return c
}

// Denom returns the denomination of the coin.
func (c Coin) Denom() string {
	return c.denom
}

// Amount returns the amount of the coin.
func (c Coin) Amount() Uint128 {
	return c.amount
}

// IsZero returns true if the amount is 0.
func (c Coin) IsZero() bool {
	return c.amount.IsZero()
}

// SameDenom returns true if coins have the same denomination.
func (c Coin) SameDenom(d Coin) bool {
	return c.denom == d.denom
}

// Display returns the amount expressed in display units, that is
// amount / 10^exponent.
// For example, 1234567uluna with exponent 6 is displayed as 1.234567.
//
// Display returns an error if:
//   - the exponent is negative or greater than [decimal.MaxScale] ([ErrExponent]);
//   - the result has more than [decimal.MaxPrec] digits ([ErrOverflow]).
func (c Coin) Display(exponent int) (decimal.Decimal, error) {
	if exponent < 0 || exponent > decimal.MaxScale {
		return decimal.Decimal{}, fmt.Errorf("displaying %v with exponent %v: %w", c, exponent, ErrExponent)
	}
	s := c.amount.String()
	if exponent > 0 {
		if len(s) <= exponent {
			s = strings.Repeat("0", exponent-len(s)+1) + s
		}
		s = s[:len(s)-exponent] + "." + s[len(s)-exponent:]
	}
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("displaying %v: %w: %w", c, ErrOverflow, err)
	}
	return d, nil
}

// Add returns the sum of coins c and d.
//
// Add returns an error if:
//   - coins are denominated differently ([ErrDenomMismatch]);
//   - the sum does not fit in a [Uint128] ([ErrOverflow]).
func (c Coin) Add(d Coin) (Coin, error) {
	e, err := c.add(d)
	if err != nil {
		return Coin{}, fmt.Errorf("computing [%v + %v]: %w", c, d, err)
	}
	return e, nil
}

func (c Coin) add(d Coin) (Coin, error) {
	if !c.SameDenom(d) {
		return Coin{}, ErrDenomMismatch
	}
	return c.AddAmount(d.amount)
}

// Sub returns the difference between coins c and d.
//
// Sub returns an error if:
//   - coins are denominated differently ([ErrDenomMismatch]);
//   - the amount of d is greater than the amount of c ([ErrUnderflow]).
func (c Coin) Sub(d Coin) (Coin, error) {
	e, err := c.sub(d)
	if err != nil {
		return Coin{}, fmt.Errorf("computing [%v - %v]: %w", c, d, err)
	}
	return e, nil
}

func (c Coin) sub(d Coin) (Coin, error) {
	if !c.SameDenom(d) {
		return Coin{}, ErrDenomMismatch
	}
	return c.SubAmount(d.amount)
}

// AddAmount returns a coin of the same denomination with u added to its amount.
func (c Coin) AddAmount(u Uint128) (Coin, error) {
	a, err := c.amount.Add(u)
	if err != nil {
		return Coin{}, err
	}
	return newCoinUnsafe(c.denom, a), nil
}

// SubAmount returns a coin of the same denomination with u subtracted from its amount.
func (c Coin) SubAmount(u Uint128) (Coin, error) {
	a, err := c.amount.Sub(u)
	if err != nil {
		return Coin{}, err
	}
	return newCoinUnsafe(c.denom, a), nil
}

// Mul returns a coin of the same denomination with its amount multiplied by u.
func (c Coin) Mul(u Uint128) (Coin, error) {
	a, err := c.amount.Mul(u)
	if err != nil {
		return Coin{}, err
	}
	return newCoinUnsafe(c.denom, a), nil
}

// Quo returns a coin of the same denomination with its amount divided by u.
// The quotient is truncated.
func (c Coin) Quo(u Uint128) (Coin, error) {
	a, err := c.amount.Quo(u)
	if err != nil {
		return Coin{}, err
	}
	return newCoinUnsafe(c.denom, a), nil
}

// Rem returns a coin of the same denomination whose amount is the remainder
// of the amount of c divided by u.
func (c Coin) Rem(u Uint128) (Coin, error) {
	a, err := c.amount.Rem(u)
	if err != nil {
		return Coin{}, err
	}
	return newCoinUnsafe(c.denom, a), nil
}

// Cmp compares coins c and d and returns:
//
//	-1 if c < d
//	 0 if c = d
//	+1 if c > d
//
// Cmp returns an error if coins are denominated differently.
func (c Coin) Cmp(d Coin) (int, error) {
	if !c.SameDenom(d) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", c, d, ErrDenomMismatch)
	}
	return c.amount.Cmp(d.amount), nil
}

// String returns the compact text form of the coin, such as "1000000uluna".
func (c Coin) String() string {
	return c.amount.String() + c.denom
}

type coinJSON struct {
	Denom  string  `json:"denom"`
	Amount Uint128 `json:"amount"`
}

// MarshalJSON implements the [json.Marshaler] interface.
// The coin is encoded as an object with "denom" and "amount" fields,
// and the amount is always a string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Coin) MarshalJSON() ([]byte, error) {
	return json.Marshal(coinJSON{Denom: c.denom, Amount: c.amount})
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Coin) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var v coinJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Coin{}, err)
	}
	d, err := NewCoin(v.Denom, v.Amount)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Coin{}, err)
	}
	*c = d
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Coin.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Coin) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseCoin].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Coin) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCoin(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Coin{}, err)
	}
	return nil
}

// Scan implements the [sql.Scanner] interface.
// The value must be in the text form, such as "1000000uluna".
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (c *Coin) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*c, err = ParseCoin(value)
	case []byte:
		*c, err = ParseCoin(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T: %w", Coin{}, NullCoin{}, Coin{}, ErrParse)
	default:
		err = fmt.Errorf("type %T is not supported: %w", value, ErrParse)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Coin{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// See also method [Coin.String].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (c Coin) Value() (driver.Value, error) {
	return c.String(), nil
}

// NullCoin represents a coin that can be null.
// Its zero value is null.
// NullCoin is not thread-safe.
type NullCoin struct {
	Coin  Coin
	Valid bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Coin.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullCoin) Scan(value any) error {
	if value == nil {
		n.Coin = Coin{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Coin.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Coin.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullCoin) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Coin.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Coin.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullCoin) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Coin = Coin{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Coin.UnmarshalJSON(data)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Coin.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullCoin) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Coin.MarshalJSON()
}
