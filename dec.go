package terra

import (
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/govalues/decimal"
	"github.com/holiman/uint256"
)

// DecPrecision is the number of digits after the decimal point kept by [Dec].
const DecPrecision = 18

var (
	decOne  = *uint256.NewInt(1_000_000_000_000_000_000) // 10^DecPrecision
	allOnes = uint256.Int{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
)

// Dec represents a signed fixed-point number with 18 digits after the decimal
// point, the way it is used by the chain.
// Internally it is a signed 128-bit integer equal to value * 10^18.
// Its zero value corresponds to 0.
//
// Dec is immutable and safe for concurrent use by multiple goroutines.
type Dec struct {
	v uint256.Int // two's complement, always within [-2^127, 2^127)
}

// fitsInt128 reports whether z, interpreted as a two's complement number,
// is within [-2^127, 2^127).
func fitsInt128(z *uint256.Int) bool {
	var t uint256.Int
	t.SRsh(z, 127)
	return t.IsZero() || t.Eq(&allOnes)
}

func newDecSafe(z *uint256.Int) (Dec, error) {
	if !fitsInt128(z) {
		return Dec{}, ErrOverflow
	}
	return Dec{v: *z}, nil
}

// NewDec returns a decimal equal to the integer i.
func NewDec(i int64) Dec {
	var z uint256.Int
	if i < 0 {
		z.SetUint64(uint64(-(i + 1)) + 1)
		z.Mul(&z, &decOne)
		z.Neg(&z)
	} else {
		z.SetUint64(uint64(i))
		z.Mul(&z, &decOne)
	}
	return Dec{v: z}
}

// NewDecFromUint128 returns a decimal equal to the amount u.
//
// NewDecFromUint128 returns an error wrapping [ErrOverflow] if u * 10^18
// does not fit in a signed 128-bit integer.
func NewDecFromUint128(u Uint128) (Dec, error) {
	var z uint256.Int
	z.Mul(&u.v, &decOne)
	d, err := newDecSafe(&z)
	if err != nil {
		return Dec{}, fmt.Errorf("converting %v: %w", u, err)
	}
	return d, nil
}

// NewDecRaw returns a decimal whose internal scaled integer is raw,
// that is a decimal equal to raw / 10^18.
// See also method [Dec.Raw].
func NewDecRaw(raw *big.Int) (Dec, error) {
	abs := new(big.Int).Abs(raw)
	z, overflow := uint256.FromBig(abs)
	if overflow {
		return Dec{}, fmt.Errorf("converting %v: %w", raw, ErrOverflow)
	}
	if raw.Sign() < 0 {
		z.Neg(z)
	}
	d, err := newDecSafe(z)
	if err != nil {
		return Dec{}, fmt.Errorf("converting %v: %w", raw, err)
	}
	return d, nil
}

// NewDecFromDecimal converts a decimal from the [decimal] package to a Dec.
// Digits beyond the 18th after the decimal point are truncated.
// See also method [Dec.Decimal].
func NewDecFromDecimal(e decimal.Decimal) (Dec, error) {
	var z, p uint256.Int
	z.SetUint64(e.Coef())
	if scale := e.Scale(); scale <= DecPrecision {
		p.Exp(uint256.NewInt(10), uint256.NewInt(uint64(DecPrecision-scale)))
		z.Mul(&z, &p)
	} else {
		p.Exp(uint256.NewInt(10), uint256.NewInt(uint64(scale-DecPrecision)))
		z.Div(&z, &p)
	}
	if e.IsNeg() {
		z.Neg(&z)
	}
	return newDecSafe(&z)
}

// NewDecFromLegacyDec converts a Cosmos SDK decimal to a Dec.
// Both types use 18 digits after the decimal point, so no rounding occurs.
// A nil LegacyDec is converted to 0.
// See also method [Dec.LegacyDec].
func NewDecFromLegacyDec(e sdkmath.LegacyDec) (Dec, error) {
	if e.IsNil() {
		return Dec{}, nil
	}
	return NewDecRaw(e.BigInt())
}

// ParseDec converts a string to a decimal.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//
// Digits after the 18th digit of the fractional part are truncated,
// so "0.1234567890123456789" is parsed as 0.123456789012345678.
//
// ParseDec returns an error wrapping [ErrParse] if the string is not a valid
// decimal, or [ErrOverflow] if the value does not fit in a [Dec].
func ParseDec(s string) (Dec, error) {
	d, err := parseDec(s)
	if err != nil {
		return Dec{}, fmt.Errorf("parsing decimal %q: %w", s, err)
	}
	return d, nil
}

func parseDec(s string) (Dec, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	whole, frac, hasPoint := strings.Cut(s, ".")
	if !isDigits(whole) || (hasPoint && !isDigits(frac)) {
		return Dec{}, ErrParse
	}
	if len(frac) > DecPrecision {
		frac = frac[:DecPrecision]
	}
	frac += strings.Repeat("0", DecPrecision-len(frac))

	w, err := ParseUint128(whole)
	if err != nil {
		return Dec{}, ErrOverflow
	}
	f, err := ParseUint128(frac)
	if err != nil {
		return Dec{}, err
	}
	var z uint256.Int
	z.Mul(&w.v, &decOne)
	z.Add(&z, &f.v)
	if neg {
		z.Neg(&z)
	}
	return newDecSafe(&z)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseDec is like [ParseDec] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding decimals.
func MustParseDec(s string) Dec {
	d, err := ParseDec(s)
	if err != nil {
		panic(fmt.Sprintf("ParseDec(%q) failed: %v", s, err))
	}
	return d
}

// Raw returns the internal scaled integer, value * 10^18.
// See also constructor [NewDecRaw].
func (d Dec) Raw() *big.Int {
	return signedBig(&d.v)
}

// signedBig converts a two's complement integer to a big integer.
func signedBig(z *uint256.Int) *big.Int {
	if z.Sign() < 0 {
		var abs uint256.Int
		abs.Neg(z)
		b := abs.ToBig()
		return b.Neg(b)
	}
	return z.ToBig()
}

// LegacyDec returns d as a Cosmos SDK decimal.
func (d Dec) LegacyDec() sdkmath.LegacyDec {
	return sdkmath.LegacyNewDecFromBigIntWithPrec(d.Raw(), DecPrecision)
}

// Decimal returns d as a (possibly rounded) decimal from the [decimal] package.
//
// Decimal returns an error if the integer part of d has more than
// [decimal.MaxPrec] digits.
func (d Dec) Decimal() (decimal.Decimal, error) {
	e, err := decimal.Parse(d.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", d, err)
	}
	return e, nil
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d = 0
//	+1 if d > 0
func (d Dec) Sign() int {
	return d.v.Sign()
}

// IsNeg returns true if d < 0.
func (d Dec) IsNeg() bool {
	return d.Sign() < 0
}

// IsPos returns true if d > 0.
func (d Dec) IsPos() bool {
	return d.Sign() > 0
}

// IsZero returns true if d = 0.
func (d Dec) IsZero() bool {
	return d.v.IsZero()
}

// IsOne returns true if d = 1.
func (d Dec) IsOne() bool {
	return d.v.Eq(&decOne)
}

// Neg returns -d.
//
// Neg returns an error wrapping [ErrOverflow] if d is the smallest
// representable decimal, whose negation does not fit in a [Dec].
func (d Dec) Neg() (Dec, error) {
	var z uint256.Int
	z.Neg(&d.v)
	f, err := newDecSafe(&z)
	if err != nil {
		return Dec{}, fmt.Errorf("computing [-%v]: %w", d, err)
	}
	return f, nil
}

// Abs returns the absolute value of d.
// It fails in the same case as [Dec.Neg].
func (d Dec) Abs() (Dec, error) {
	if !d.IsNeg() {
		return d, nil
	}
	return d.Neg()
}

// Add returns the exact sum d + e.
//
// Add returns an error wrapping [ErrOverflow] if the result does not fit in a [Dec].
func (d Dec) Add(e Dec) (Dec, error) {
	var z uint256.Int
	z.Add(&d.v, &e.v)
	f, err := newDecSafe(&z)
	if err != nil {
		return Dec{}, fmt.Errorf("computing [%v + %v]: %w", d, e, err)
	}
	return f, nil
}

// Sub returns the exact difference d - e.
//
// Sub returns an error wrapping [ErrOverflow] if the result does not fit in a [Dec].
func (d Dec) Sub(e Dec) (Dec, error) {
	var z uint256.Int
	z.Sub(&d.v, &e.v)
	f, err := newDecSafe(&z)
	if err != nil {
		return Dec{}, fmt.Errorf("computing [%v - %v]: %w", d, e, err)
	}
	return f, nil
}

// Mul returns the product d * e.
// The raw product is divided by 10^18 and the remainder is discarded,
// so the result is truncated toward zero.
//
// Mul returns an error wrapping [ErrOverflow] if the result does not fit in a [Dec].
func (d Dec) Mul(e Dec) (Dec, error) {
	var z uint256.Int
	z.Mul(&d.v, &e.v) // |d * e| < 2^254, no wrap in 256 bits
	z.SDiv(&z, &decOne)
	f, err := newDecSafe(&z)
	if err != nil {
		return Dec{}, fmt.Errorf("computing [%v * %v]: %w", d, e, err)
	}
	return f, nil
}

// Quo divides the internal scaled integers of d and e and returns the
// truncated result as the new internal scaled integer.
// The quotient is not rescaled by 10^18, so NewDec(6).Quo(NewDec(3)) equals
// 0.000000000000000002, not 2.
// This follows the fixed-point convention of the chain client this package
// interoperates with.
//
// Quo returns an error wrapping [ErrDivideByZero] if e = 0, or
// [ErrOverflow] if the result does not fit in a [Dec].
func (d Dec) Quo(e Dec) (Dec, error) {
	if e.IsZero() {
		return Dec{}, fmt.Errorf("computing [%v / %v]: %w", d, e, ErrDivideByZero)
	}
	var z uint256.Int
	z.SDiv(&d.v, &e.v)
	f, err := newDecSafe(&z)
	if err != nil {
		return Dec{}, fmt.Errorf("computing [%v / %v]: %w", d, e, err)
	}
	return f, nil
}

// Cmp compares d and e and returns:
//
//	-1 if d < e
//	 0 if d = e
//	+1 if d > e
func (d Dec) Cmp(e Dec) int {
	switch {
	case d.v.Eq(&e.v):
		return 0
	case d.v.Slt(&e.v):
		return -1
	default:
		return 1
	}
}

// Integer returns the integer part of d rounded toward negative infinity.
func (d Dec) Integer() *big.Int {
	q, r := d.quoRemOne()
	if r.Sign() < 0 {
		q.Sub(&q, uint256.NewInt(1))
	}
	return signedBig(&q)
}

// Fraction returns the remainder of d divided by 1.
// The remainder has the same sign as d.
func (d Dec) Fraction() float64 {
	_, r := d.quoRemOne()
	return float64(signedBig(&r).Int64()) / 1e18
}

// quoRemOne returns the truncated quotient and the remainder of the internal
// integer divided by 10^18. Both have the sign of d.
func (d Dec) quoRemOne() (q, r uint256.Int) {
	q.SDiv(&d.v, &decOne)
	r.SMod(&d.v, &decOne)
	return q, r
}

// Float64 returns the nearest binary floating-point number.
// The integer part and the fractional part are converted separately and
// then combined.
//
// The result is intended for display only and must not be fed back into
// further arithmetic, since float64 has a smaller precision than Dec.
func (d Dec) Float64() float64 {
	q, r := d.quoRemOne()
	integer, _ := new(big.Float).SetInt(signedBig(&q)).Float64()
	return integer + float64(signedBig(&r).Int64())/1e18
}

// String returns the shortest exact representation of d, such as "3",
// "-0.5" or "1.000000000000000001".
// See also method [Dec.MarshalText] for the fixed-width wire form.
func (d Dec) String() string {
	whole, frac, neg := d.parts()
	frac = strings.TrimRight(frac, "0")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(whole)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// parts returns the integer digits, the 18 fractional digits and the sign of d.
func (d Dec) parts() (whole, frac string, neg bool) {
	abs := d.v
	if d.IsNeg() {
		abs.Neg(&d.v)
		neg = true
	}
	var q, r uint256.Int
	q.DivMod(&abs, &decOne, &r)
	frac = r.Dec()
	frac = strings.Repeat("0", DecPrecision-len(frac)) + frac
	return q.Dec(), frac, neg
}

// canonical returns d in the form "<integer>.<18 digits>".
func (d Dec) canonical() string {
	whole, frac, neg := d.parts()
	if neg {
		return "-" + whole + "." + frac
	}
	return whole + "." + frac
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns exactly 18 digits after the decimal point,
// for example "1.500000000000000000".
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Dec) MarshalText() ([]byte, error) {
	return []byte(d.canonical()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseDec].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Dec) UnmarshalText(text []byte) error {
	var err error
	*d, err = ParseDec(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Dec{}, err)
	}
	return nil
}
