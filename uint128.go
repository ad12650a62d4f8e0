package terra

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// Uint128 represents a non-negative integer in the range [0, 2^128).
// Its zero value corresponds to 0.
//
// Uint128 is immutable and safe for concurrent use by multiple goroutines.
// Arithmetic never wraps: results outside of the range are reported as
// [ErrOverflow], [ErrUnderflow] or [ErrDivideByZero].
type Uint128 struct {
	v uint256.Int // always fits in 128 bits
}

// Unsigned is the set of native unsigned integer types that can be converted
// to a [Uint128] without loss.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// MaxUint128 is the largest representable value, 2^128 - 1.
var MaxUint128 = NewUint128FromParts(^uint64(0), ^uint64(0))

// NewUint converts any native unsigned integer to a Uint128.
func NewUint[T Unsigned](v T) Uint128 {
	return Uint128{v: *uint256.NewInt(uint64(v))}
}

// NewUint128FromParts returns hi * 2^64 + lo.
func NewUint128FromParts(hi, lo uint64) Uint128 {
	return Uint128{v: uint256.Int{lo, hi, 0, 0}}
}

// newUint128Safe checks that z fits in 128 bits.
func newUint128Safe(z *uint256.Int) (Uint128, error) {
	if z.BitLen() > 128 {
		return Uint128{}, ErrOverflow
	}
	return Uint128{v: *z}, nil
}

// NewUint128FromBig converts a big integer to a Uint128.
// NewUint128FromBig returns an error if b is negative or does not fit in 128 bits.
func NewUint128FromBig(b *big.Int) (Uint128, error) {
	if b.Sign() < 0 {
		return Uint128{}, fmt.Errorf("converting %v: %w", b, ErrUnderflow)
	}
	z, overflow := uint256.FromBig(b)
	if overflow {
		return Uint128{}, fmt.Errorf("converting %v: %w", b, ErrOverflow)
	}
	u, err := newUint128Safe(z)
	if err != nil {
		return Uint128{}, fmt.Errorf("converting %v: %w", b, err)
	}
	return u, nil
}

// NewUint128FromMath converts a Cosmos SDK unsigned integer to a Uint128.
// See also method [Uint128.Math].
func NewUint128FromMath(u sdkmath.Uint) (Uint128, error) {
	return NewUint128FromBig(u.BigInt())
}

// ParseUint128 converts a decimal digit string to a Uint128.
// Leading and trailing whitespace is ignored and an empty string is parsed as 0.
//
// ParseUint128 returns an error wrapping [ErrParse] if the string contains
// anything other than the digits 0-9, or if the value does not fit in 128 bits.
func ParseUint128(s string) (Uint128, error) {
	s = strings.TrimSpace(s)
	var z, ten, d uint256.Int
	ten.SetUint64(10)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Uint128{}, fmt.Errorf("invalid number %q: %w", s, ErrParse)
		}
		z.Mul(&z, &ten)
		z.Add(&z, d.SetUint64(uint64(c-'0')))
		if z.BitLen() > 128 {
			return Uint128{}, fmt.Errorf("number %q: %w: %w", s, ErrParse, ErrOverflow)
		}
	}
	return Uint128{v: z}, nil
}

// MustParseUint128 is like [ParseUint128] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseUint128(s string) Uint128 {
	u, err := ParseUint128(s)
	if err != nil {
		panic(fmt.Sprintf("ParseUint128(%q) failed: %v", s, err))
	}
	return u
}

// String returns the decimal digits of u.
// This is the canonical wire form of the amount.
func (u Uint128) String() string {
	return u.v.Dec()
}

// Uint64 returns u as uint64.
// If u does not fit in 64 bits, then false is returned.
func (u Uint128) Uint64() (uint64, bool) {
	return u.v.Uint64(), u.v.IsUint64()
}

// BigInt returns u as a newly allocated big integer.
func (u Uint128) BigInt() *big.Int {
	return u.v.ToBig()
}

// Math returns u as a Cosmos SDK unsigned integer.
// See also constructor [NewUint128FromMath].
func (u Uint128) Math() sdkmath.Uint {
	return sdkmath.NewUintFromBigInt(u.BigInt())
}

// IsZero returns true if u = 0.
func (u Uint128) IsZero() bool {
	return u.v.IsZero()
}

// Add returns the sum u + v.
//
// Add returns an error wrapping [ErrOverflow] if the sum does not fit in 128 bits.
func (u Uint128) Add(v Uint128) (Uint128, error) {
	var z uint256.Int
	z.Add(&u.v, &v.v)
	w, err := newUint128Safe(&z)
	if err != nil {
		return Uint128{}, fmt.Errorf("computing [%v + %v]: %w", u, v, err)
	}
	return w, nil
}

// Sub returns the difference u - v.
//
// Sub returns an error wrapping [ErrUnderflow] if v > u.
func (u Uint128) Sub(v Uint128) (Uint128, error) {
	if u.v.Lt(&v.v) {
		return Uint128{}, fmt.Errorf("computing [%v - %v]: %w", u, v, ErrUnderflow)
	}
	var z uint256.Int
	z.Sub(&u.v, &v.v)
	return Uint128{v: z}, nil
}

// Mul returns the product u * v.
//
// Mul returns an error wrapping [ErrOverflow] if the product does not fit in 128 bits.
func (u Uint128) Mul(v Uint128) (Uint128, error) {
	var z uint256.Int
	z.Mul(&u.v, &v.v) // both factors have at most 128 bits, so z cannot wrap
	w, err := newUint128Safe(&z)
	if err != nil {
		return Uint128{}, fmt.Errorf("computing [%v * %v]: %w", u, v, err)
	}
	return w, nil
}

// Quo returns the truncated quotient u / v.
//
// Quo returns an error wrapping [ErrDivideByZero] if v = 0.
func (u Uint128) Quo(v Uint128) (Uint128, error) {
	q, _, err := u.quoRem(v)
	if err != nil {
		return Uint128{}, fmt.Errorf("computing [%v / %v]: %w", u, v, err)
	}
	return q, nil
}

// Rem returns the remainder u % v.
//
// Rem returns an error wrapping [ErrDivideByZero] if v = 0.
func (u Uint128) Rem(v Uint128) (Uint128, error) {
	_, r, err := u.quoRem(v)
	if err != nil {
		return Uint128{}, fmt.Errorf("computing [%v %% %v]: %w", u, v, err)
	}
	return r, nil
}

// QuoRem returns the quotient q and remainder r such that u = v * q + r.
//
// QuoRem returns an error wrapping [ErrDivideByZero] if v = 0.
func (u Uint128) QuoRem(v Uint128) (q, r Uint128, err error) {
	q, r, err = u.quoRem(v)
	if err != nil {
		return Uint128{}, Uint128{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", u, v, u, v, err)
	}
	return q, r, nil
}

func (u Uint128) quoRem(v Uint128) (q, r Uint128, err error) {
	if v.IsZero() {
		return Uint128{}, Uint128{}, ErrDivideByZero
	}
	q.v.Div(&u.v, &v.v)
	r.v.Mod(&u.v, &v.v)
	return q, r, nil
}

// Cmp compares u and v and returns:
//
//	-1 if u < v
//	 0 if u = v
//	+1 if u > v
func (u Uint128) Cmp(v Uint128) int {
	return u.v.Cmp(&v.v)
}

// Min returns the smaller of u and v.
func (u Uint128) Min(v Uint128) Uint128 {
	if u.Cmp(v) <= 0 {
		return u
	}
	return v
}

// Max returns the larger of u and v.
func (u Uint128) Max(v Uint128) Uint128 {
	if u.Cmp(v) >= 0 {
		return u
	}
	return v
}

// MarshalJSON implements the [json.Marshaler] interface.
// The amount is always encoded as a JSON string, never as a JSON number,
// so that consumers limited to float64 numbers do not lose precision.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (u Uint128) MarshalJSON() ([]byte, error) {
	s := u.String()
	text := make([]byte, 0, len(s)+2)
	text = append(text, '"')
	text = append(text, s...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both quoted and unquoted digits are accepted.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (u *Uint128) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*u, err = ParseUint128(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Uint128{}, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (u Uint128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (u *Uint128) UnmarshalText(text []byte) error {
	var err error
	*u, err = ParseUint128(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Uint128{}, err)
	}
	return nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (u *Uint128) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*u, err = ParseUint128(value)
	case []byte:
		*u, err = ParseUint128(string(value))
	case int64:
		if value < 0 {
			err = ErrUnderflow
			break
		}
		*u = NewUint(uint64(value))
	case nil:
		err = fmt.Errorf("%T does not support null values: %w", Uint128{}, ErrParse)
	default:
		err = fmt.Errorf("type %T is not supported: %w", value, ErrParse)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Uint128{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The amount is stored as a decimal string.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (u Uint128) Value() (driver.Value, error) {
	return u.String(), nil
}
