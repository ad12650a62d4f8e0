package terra

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Coins is a collection of coins keyed by denomination.
// Each denomination appears at most once, and the stored coin always carries
// the denomination it is keyed by.
// Coins with a zero amount are kept until they are removed explicitly,
// for example with [Coins.Remove] or [Coins.Filter].
//
// The zero value is an empty collection ready to use.
// Unlike [Coin], Coins is mutable and is not safe for concurrent use:
// the owner must synchronize access if it is shared between goroutines.
// Arithmetic methods never modify the receiver; they return a new collection.
type Coins struct {
	m map[string]Coin
}

// NewCoins returns a collection holding the given coins.
// If several coins share a denomination, the last one wins.
func NewCoins(coins ...Coin) Coins {
	var c Coins
	for _, coin := range coins {
		c.Set(coin)
	}
	return c
}

// ParseCoins converts a comma-separated list of coins, such as
// "1000000uluna,2000000uusd", to a collection.
// Whitespace around each coin is ignored and an empty string yields an empty
// collection. If a denomination occurs more than once, the last occurrence
// overwrites the earlier ones.
//
// ParseCoins returns an error if any of the coins cannot be parsed.
// See also constructor [ParseCoin].
func ParseCoins(s string) (Coins, error) {
	var c Coins
	if strings.TrimSpace(s) == "" {
		return c, nil
	}
	for _, part := range strings.Split(s, ",") {
		coin, err := ParseCoin(strings.TrimSpace(part))
		if err != nil {
			return Coins{}, fmt.Errorf("parsing coins %q: %w", s, err)
		}
		c.Set(coin)
	}
	return c, nil
}

// MustParseCoins is like [ParseCoins] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding coins.
func MustParseCoins(s string) Coins {
	c, err := ParseCoins(s)
	if err != nil {
		panic(fmt.Sprintf("ParseCoins(%q) failed: %v", s, err))
	}
	return c
}

// Len returns the number of denominations in the collection.
func (c Coins) Len() int {
	return len(c.m)
}

// IsEmpty returns true if the collection holds no denominations.
func (c Coins) IsEmpty() bool {
	return len(c.m) == 0
}

// Get returns the coin of the given denomination.
// If the denomination is not present, then false is returned.
func (c Coins) Get(denom string) (Coin, bool) {
	coin, ok := c.m[denom]
	return coin, ok
}

// Has returns true if the denomination is present.
func (c Coins) Has(denom string) bool {
	_, ok := c.m[denom]
	return ok
}

// Set inserts the coin, replacing any coin of the same denomination.
func (c *Coins) Set(coin Coin) {
	if c.m == nil {
		c.m = make(map[string]Coin)
	}
	c.m[coin.denom] = coin
}

// Remove deletes the coin of the given denomination, if any.
func (c *Coins) Remove(denom string) {
	delete(c.m, denom)
}

// Update replaces the coin of the given denomination with the result of f.
// It is the way to modify a single entry in place.
//
// Update returns false if the denomination is not present.
// Update returns an error, and leaves the collection unchanged, if f fails
// or returns a coin of another denomination.
func (c *Coins) Update(denom string, f func(Coin) (Coin, error)) (bool, error) {
	coin, ok := c.m[denom]
	if !ok {
		return false, nil
	}
	next, err := f(coin)
	if err != nil {
		return true, fmt.Errorf("updating %v: %w", denom, err)
	}
	if next.denom != denom {
		return true, fmt.Errorf("updating %v with %v: %w", denom, next, ErrDenomMismatch)
	}
	c.m[denom] = next
	return true, nil
}

// Filter returns a new collection holding only the coins for which keep
// returns true.
func (c Coins) Filter(keep func(Coin) bool) Coins {
	var d Coins
	for _, coin := range c.m {
		if keep(coin) {
			d.Set(coin)
		}
	}
	return d
}

// Clone returns a copy of the collection that does not share storage with c.
func (c Coins) Clone() Coins {
	return c.Filter(func(Coin) bool { return true })
}

// Sorted returns the coins ordered by denomination.
// Use it whenever a deterministic order is required.
func (c Coins) Sorted() []Coin {
	coins := make([]Coin, 0, len(c.m))
	for _, coin := range c.m {
		coins = append(coins, coin)
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i].denom < coins[j].denom })
	return coins
}

// Denoms returns the denominations in lexicographic order.
func (c Coins) Denoms() []string {
	denoms := make([]string, 0, len(c.m))
	for denom := range c.m {
		denoms = append(denoms, denom)
	}
	sort.Strings(denoms)
	return denoms
}

// Equal returns true if both collections hold the same denominations with
// the same amounts.
func (c Coins) Equal(d Coins) bool {
	if len(c.m) != len(d.m) {
		return false
	}
	for denom, coin := range c.m {
		other, ok := d.m[denom]
		if !ok || other != coin {
			return false
		}
	}
	return true
}

// Add returns the sum of collections c and d.
// Amounts of shared denominations are added together, and denominations
// present on one side only are copied as they are.
//
// Add returns an error if any of the sums does not fit in a [Uint128].
func (c Coins) Add(d Coins) (Coins, error) {
	e := c.Clone()
	for _, coin := range d.m {
		if err := e.fold(coin, Coin.Add); err != nil {
			return Coins{}, fmt.Errorf("computing [%v + %v]: %w", c, d, err)
		}
	}
	return e, nil
}

// Sub returns the difference between collections c and d.
// Amounts of shared denominations are subtracted.
// A denomination present only in d is copied to the result unchanged;
// it is neither negated nor reported as an error.
//
// Sub returns an error wrapping [ErrUnderflow] if any shared denomination
// has a greater amount in d than in c.
func (c Coins) Sub(d Coins) (Coins, error) {
	e := c.Clone()
	for _, coin := range d.m {
		if err := e.fold(coin, Coin.Sub); err != nil {
			return Coins{}, fmt.Errorf("computing [%v - %v]: %w", c, d, err)
		}
	}
	return e, nil
}

// AddCoin returns a new collection with the coin added to the entry of its
// denomination, or inserted if there is no such entry.
func (c Coins) AddCoin(coin Coin) (Coins, error) {
	e := c.Clone()
	if err := e.fold(coin, Coin.Add); err != nil {
		return Coins{}, fmt.Errorf("computing [%v + %v]: %w", c, coin, err)
	}
	return e, nil
}

// SubCoin returns a new collection with the coin subtracted from the entry of
// its denomination, or inserted unchanged if there is no such entry.
func (c Coins) SubCoin(coin Coin) (Coins, error) {
	e := c.Clone()
	if err := e.fold(coin, Coin.Sub); err != nil {
		return Coins{}, fmt.Errorf("computing [%v - %v]: %w", c, coin, err)
	}
	return e, nil
}

// fold combines coin with the entry of the same denomination using op,
// or inserts coin if there is no such entry.
func (c *Coins) fold(coin Coin, op func(Coin, Coin) (Coin, error)) error {
	prev, ok := c.m[coin.denom]
	if !ok {
		c.Set(coin)
		return nil
	}
	next, err := op(prev, coin)
	if err != nil {
		return err
	}
	c.m[coin.denom] = next
	return nil
}

// Mul returns a new collection with every amount multiplied by u.
func (c Coins) Mul(u Uint128) (Coins, error) {
	e, err := c.scale(Coin.Mul, u)
	if err != nil {
		return Coins{}, fmt.Errorf("computing [%v * %v]: %w", c, u, err)
	}
	return e, nil
}

// Quo returns a new collection with every amount divided by u.
func (c Coins) Quo(u Uint128) (Coins, error) {
	e, err := c.scale(Coin.Quo, u)
	if err != nil {
		return Coins{}, fmt.Errorf("computing [%v / %v]: %w", c, u, err)
	}
	return e, nil
}

// Rem returns a new collection with every amount replaced by its remainder
// of division by u.
func (c Coins) Rem(u Uint128) (Coins, error) {
	e, err := c.scale(Coin.Rem, u)
	if err != nil {
		return Coins{}, fmt.Errorf("computing [%v %% %v]: %w", c, u, err)
	}
	return e, nil
}

func (c Coins) scale(op func(Coin, Uint128) (Coin, error), u Uint128) (Coins, error) {
	var e Coins
	for _, coin := range c.m {
		next, err := op(coin, u)
		if err != nil {
			return Coins{}, err
		}
		e.Set(next)
	}
	return e, nil
}

// String returns the coins as a comma-separated list ordered by denomination,
// such as "1000000uluna,2000000uusd".
func (c Coins) String() string {
	coins := c.Sorted()
	parts := make([]string, len(coins))
	for i, coin := range coins {
		parts[i] = coin.String()
	}
	return strings.Join(parts, ",")
}

// MarshalJSON implements the [json.Marshaler] interface.
// The collection is encoded as an array of coins ordered by denomination.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Coins) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Sorted())
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// If a denomination occurs more than once, the last occurrence wins.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Coins) UnmarshalJSON(data []byte) error {
	var coins []Coin
	if err := json.Unmarshal(data, &coins); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Coins{}, err)
	}
	*c = NewCoins(coins...)
	return nil
}
