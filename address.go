package terra

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Role identifies the kind of a bech32 string: an account, validator operator
// or validator consensus address, or the public key of one of them.
//
// Role is implemented as an integer index into in-memory tables holding the
// human-readable prefix and the kind of each role.
type Role uint8

const (
	RoleAccAddress     Role = iota // account address, "terra1..."
	RoleValAddress                 // validator operator address, "terravaloper1..."
	RoleValConsAddress             // validator consensus address, "terravalcons1..."
	RoleAccPubKey                  // account public key, "terrapub1..."
	RoleValPubKey                  // validator operator public key, "terravaloperpub1..."
	RoleValConsPubKey              // validator consensus public key, "terravalconspub1..."
)

// AddrDataLen is the number of 5-bit data symbols in the payload of every
// address role, which is what a 20-byte payload encodes to.
// Public key roles have no length requirement.
const AddrDataLen = 32

var (
	prefixLookup = [...]string{
		RoleAccAddress:     "terra",
		RoleValAddress:     "terravaloper",
		RoleValConsAddress: "terravalcons",
		RoleAccPubKey:      "terrapub",
		RoleValPubKey:      "terravaloperpub",
		RoleValConsPubKey:  "terravalconspub",
	}
	nameLookup = [...]string{
		RoleAccAddress:     "account address",
		RoleValAddress:     "validator address",
		RoleValConsAddress: "validator consensus address",
		RoleAccPubKey:      "account public key",
		RoleValPubKey:      "validator public key",
		RoleValConsPubKey:  "validator consensus public key",
	}
	addressLookup = [...]bool{
		RoleAccAddress:     true,
		RoleValAddress:     true,
		RoleValConsAddress: true,
	}
)

// known reports whether r is one of the six defined roles.
func (r Role) known() bool {
	return int(r) < len(prefixLookup)
}

// Prefix returns the human-readable part of the role, such as "terravaloper".
// It returns an empty string for an unknown role.
func (r Role) Prefix() string {
	if !r.known() {
		return ""
	}
	return prefixLookup[r]
}

// IsAddress returns true for address roles and false for public key roles
// and unknown roles.
func (r Role) IsAddress() bool {
	if int(r) >= len(addressLookup) {
		return false
	}
	return addressLookup[r]
}

// String method implements the [fmt.Stringer] interface and returns
// the name of the role, such as "validator address".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r Role) String() string {
	if !r.known() {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return nameLookup[r]
}

// Validate returns true if s is a valid bech32 string of the role.
// See also method [Role.Check].
func (r Role) Validate(s string) bool {
	return r.Check(s) == nil
}

// Check returns nil if s decodes as bech32 with the prefix of the role and,
// for address roles, carries a payload of [AddrDataLen] symbols.
// Otherwise it returns an error wrapping [ErrInvalidAddress] or
// [ErrInvalidPubKey] that names the offending string.
func (r Role) Check(s string) error {
	if !r.known() {
		return r.invalid(s, "unknown role")
	}
	hrp, data, _, err := bech32.DecodeGeneric(s)
	switch {
	case err != nil:
		return r.invalid(s, err.Error())
	case hrp != r.Prefix():
		return r.invalid(s, fmt.Sprintf("prefix %q, want %q", hrp, r.Prefix()))
	case r.IsAddress() && len(data) != AddrDataLen:
		return r.invalid(s, fmt.Sprintf("payload of %v symbols, want %v", len(data), AddrDataLen))
	}
	return nil
}

func (r Role) invalid(s, reason string) error {
	kind := ErrInvalidPubKey
	if r.IsAddress() {
		kind = ErrInvalidAddress
	}
	return fmt.Errorf("invalid %v %q: %v: %w", r, s, reason, kind)
}

// reencode decodes s and encodes the same payload and checksum variant under
// the prefix of role to.
// It panics if s is not valid bech32.
func reencode(s string, to Role) string {
	_, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		panic(fmt.Sprintf("converting %q to %v: %v", s, to, err))
	}
	var out string
	switch version {
	case bech32.VersionM:
		out, err = bech32.EncodeM(to.Prefix(), data)
	default:
		out, err = bech32.Encode(to.Prefix(), data)
	}
	if err != nil {
		panic(fmt.Sprintf("converting %q to %v: %v", s, to, err))
	}
	return out
}

// roleTag is implemented by the empty marker types that bind each wrapper
// type to its role at compile time.
type roleTag interface {
	role() Role
}

type (
	accAddressTag     struct{}
	valAddressTag     struct{}
	valConsAddressTag struct{}
	accPubKeyTag      struct{}
	valPubKeyTag      struct{}
	valConsPubKeyTag  struct{}
)

func (accAddressTag) role() Role     { return RoleAccAddress }
func (valAddressTag) role() Role     { return RoleValAddress }
func (valConsAddressTag) role() Role { return RoleValConsAddress }
func (accPubKeyTag) role() Role      { return RoleAccPubKey }
func (valPubKeyTag) role() Role      { return RoleValPubKey }
func (valConsPubKeyTag) role() Role  { return RoleValConsPubKey }

// bech32String holds the text of a bech32 string of role T.
// It is embedded by every address and public key type and provides their
// common methods.
type bech32String[T roleTag] struct {
	s string
}

// newBech32String validates s and stores it in lowercase, so that an address
// has a single text form. Bech32 accepts all-uppercase input as well.
func newBech32String[T roleTag](s string) (bech32String[T], error) {
	var t T
	if err := t.role().Check(s); err != nil {
		return bech32String[T]{}, err
	}
	return bech32String[T]{s: strings.ToLower(s)}, nil
}

// convert re-encodes b under the prefix of role To.
// b must hold valid bech32, otherwise convert panics.
func convert[To, From roleTag](b bech32String[From]) bech32String[To] {
	var to To
	return bech32String[To]{s: reencode(b.s, to.role())}
}

// Role returns the role of the string.
func (b bech32String[T]) Role() Role {
	var t T
	return t.role()
}

// String returns the bech32 text.
func (b bech32String[T]) String() string {
	return b.s
}

// IsValid returns true if the text is valid for the role.
// It can only be false for values built with an Unchecked constructor.
func (b bech32String[T]) IsValid() bool {
	return b.Role().Validate(b.s)
}

// Bytes returns the decoded payload as 8-bit bytes.
func (b bech32String[T]) Bytes() ([]byte, error) {
	_, data, _, err := bech32.DecodeGeneric(b.s)
	if err != nil {
		return nil, fmt.Errorf("decoding %v %q: %w", b.Role(), b.s, err)
	}
	bz, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("decoding %v %q: %w", b.Role(), b.s, err)
	}
	return bz, nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (b bech32String[T]) MarshalText() ([]byte, error) {
	return []byte(b.s), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The text is validated for the role.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (b *bech32String[T]) UnmarshalText(text []byte) error {
	c, err := newBech32String[T](string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %v: %w", b.Role(), err)
	}
	*b = c
	return nil
}

// fromBytes encodes bz as a bech32 string of role T.
func fromBytes[T roleTag](bz []byte) (bech32String[T], error) {
	var t T
	data, err := bech32.ConvertBits(bz, 8, 5, true)
	if err != nil {
		return bech32String[T]{}, fmt.Errorf("encoding %v: %w", t.role(), err)
	}
	s, err := bech32.Encode(t.role().Prefix(), data)
	if err != nil {
		return bech32String[T]{}, fmt.Errorf("encoding %v: %w", t.role(), err)
	}
	return newBech32String[T](s)
}

// AccAddress is an account address, such as
// "terra1pdx498r0hrc2fj36sjhs8vuhrz9hd2cw0tmam9".
// Its zero value is empty and invalid.
type AccAddress struct {
	bech32String[accAddressTag]
}

// NewAccAddress validates s and returns it as an account address.
// All-uppercase input is accepted and stored in lowercase.
// The error wraps [ErrInvalidAddress].
func NewAccAddress(s string) (AccAddress, error) {
	b, err := newBech32String[accAddressTag](s)
	if err != nil {
		return AccAddress{}, err
	}
	return AccAddress{b}, nil
}

// NewAccAddressFromBytes encodes bz as an account address.
// The payload must be 20 bytes long, otherwise an error wrapping
// [ErrInvalidAddress] is returned.
func NewAccAddressFromBytes(bz []byte) (AccAddress, error) {
	b, err := fromBytes[accAddressTag](bz)
	if err != nil {
		return AccAddress{}, err
	}
	return AccAddress{b}, nil
}

// MustNewAccAddress is like [NewAccAddress] but panics if s is not valid.
// It simplifies safe initialization of global variables holding addresses.
func MustNewAccAddress(s string) AccAddress {
	a, err := NewAccAddress(s)
	if err != nil {
		panic(fmt.Sprintf("NewAccAddress(%q) failed: %v", s, err))
	}
	return a
}

// UncheckedAccAddress wraps s without validation.
// Use it only for strings that were already validated, since the conversion
// methods panic on malformed text.
func UncheckedAccAddress(s string) AccAddress {
	return AccAddress{bech32String[accAddressTag]{s: s}}
}

// ValAddress returns the validator operator address with the same payload.
// It panics if a was built with [UncheckedAccAddress] from malformed text.
func (a AccAddress) ValAddress() ValAddress {
	return ValAddress{convert[valAddressTag](a.bech32String)}
}

// AccPubKey returns the account public key string with the same payload.
// It panics if a was built with [UncheckedAccAddress] from malformed text.
func (a AccAddress) AccPubKey() AccPubKey {
	return AccPubKey{convert[accPubKeyTag](a.bech32String)}
}

// ValAddress is a validator operator address, such as
// "terravaloper1pdx498r0hrc2fj36sjhs8vuhrz9hd2cw0yhqtk".
// Its zero value is empty and invalid.
type ValAddress struct {
	bech32String[valAddressTag]
}

// NewValAddress validates s and returns it as a validator operator address.
// All-uppercase input is accepted and stored in lowercase.
// The error wraps [ErrInvalidAddress].
func NewValAddress(s string) (ValAddress, error) {
	b, err := newBech32String[valAddressTag](s)
	if err != nil {
		return ValAddress{}, err
	}
	return ValAddress{b}, nil
}

// NewValAddressFromBytes encodes bz as a validator operator address.
// The payload must be 20 bytes long, otherwise an error wrapping
// [ErrInvalidAddress] is returned.
func NewValAddressFromBytes(bz []byte) (ValAddress, error) {
	b, err := fromBytes[valAddressTag](bz)
	if err != nil {
		return ValAddress{}, err
	}
	return ValAddress{b}, nil
}

// MustNewValAddress is like [NewValAddress] but panics if s is not valid.
func MustNewValAddress(s string) ValAddress {
	a, err := NewValAddress(s)
	if err != nil {
		panic(fmt.Sprintf("NewValAddress(%q) failed: %v", s, err))
	}
	return a
}

// UncheckedValAddress wraps s without validation.
func UncheckedValAddress(s string) ValAddress {
	return ValAddress{bech32String[valAddressTag]{s: s}}
}

// AccAddress returns the account address with the same payload.
// It panics if a was built with [UncheckedValAddress] from malformed text.
func (a ValAddress) AccAddress() AccAddress {
	return AccAddress{convert[accAddressTag](a.bech32String)}
}

// ValPubKey returns the validator public key string with the same payload.
// It panics if a was built with [UncheckedValAddress] from malformed text.
func (a ValAddress) ValPubKey() ValPubKey {
	return ValPubKey{convert[valPubKeyTag](a.bech32String)}
}

// ValConsAddress is a validator consensus address, such as
// "terravalcons1relcztayk87c3r529rqf3fwdmn8hr6rhcgyrxd".
type ValConsAddress struct {
	bech32String[valConsAddressTag]
}

// NewValConsAddress validates s and returns it as a validator consensus address.
// All-uppercase input is accepted and stored in lowercase.
// The error wraps [ErrInvalidAddress].
func NewValConsAddress(s string) (ValConsAddress, error) {
	b, err := newBech32String[valConsAddressTag](s)
	if err != nil {
		return ValConsAddress{}, err
	}
	return ValConsAddress{b}, nil
}

// MustNewValConsAddress is like [NewValConsAddress] but panics if s is not valid.
func MustNewValConsAddress(s string) ValConsAddress {
	a, err := NewValConsAddress(s)
	if err != nil {
		panic(fmt.Sprintf("NewValConsAddress(%q) failed: %v", s, err))
	}
	return a
}

// UncheckedValConsAddress wraps s without validation.
func UncheckedValConsAddress(s string) ValConsAddress {
	return ValConsAddress{bech32String[valConsAddressTag]{s: s}}
}

// ValConsPubKey returns the validator consensus public key string with the
// same payload.
// It panics if a was built with [UncheckedValConsAddress] from malformed text.
func (a ValConsAddress) ValConsPubKey() ValConsPubKey {
	return ValConsPubKey{convert[valConsPubKeyTag](a.bech32String)}
}

// AccPubKey is an account public key, "terrapub1...".
type AccPubKey struct {
	bech32String[accPubKeyTag]
}

// NewAccPubKey validates s and returns it as an account public key.
// All-uppercase input is accepted and stored in lowercase.
// The error wraps [ErrInvalidPubKey].
func NewAccPubKey(s string) (AccPubKey, error) {
	b, err := newBech32String[accPubKeyTag](s)
	if err != nil {
		return AccPubKey{}, err
	}
	return AccPubKey{b}, nil
}

// MustNewAccPubKey is like [NewAccPubKey] but panics if s is not valid.
func MustNewAccPubKey(s string) AccPubKey {
	k, err := NewAccPubKey(s)
	if err != nil {
		panic(fmt.Sprintf("NewAccPubKey(%q) failed: %v", s, err))
	}
	return k
}

// UncheckedAccPubKey wraps s without validation.
func UncheckedAccPubKey(s string) AccPubKey {
	return AccPubKey{bech32String[accPubKeyTag]{s: s}}
}

// ValPubKey returns the validator public key string with the same payload.
// It panics if k was built with [UncheckedAccPubKey] from malformed text.
func (k AccPubKey) ValPubKey() ValPubKey {
	return ValPubKey{convert[valPubKeyTag](k.bech32String)}
}

// ValPubKey is a validator operator public key, "terravaloperpub1...".
type ValPubKey struct {
	bech32String[valPubKeyTag]
}

// NewValPubKey validates s and returns it as a validator public key.
// All-uppercase input is accepted and stored in lowercase.
// The error wraps [ErrInvalidPubKey].
func NewValPubKey(s string) (ValPubKey, error) {
	b, err := newBech32String[valPubKeyTag](s)
	if err != nil {
		return ValPubKey{}, err
	}
	return ValPubKey{b}, nil
}

// MustNewValPubKey is like [NewValPubKey] but panics if s is not valid.
func MustNewValPubKey(s string) ValPubKey {
	k, err := NewValPubKey(s)
	if err != nil {
		panic(fmt.Sprintf("NewValPubKey(%q) failed: %v", s, err))
	}
	return k
}

// UncheckedValPubKey wraps s without validation.
func UncheckedValPubKey(s string) ValPubKey {
	return ValPubKey{bech32String[valPubKeyTag]{s: s}}
}

// AccPubKey returns the account public key string with the same payload.
// It panics if k was built with [UncheckedValPubKey] from malformed text.
func (k ValPubKey) AccPubKey() AccPubKey {
	return AccPubKey{convert[accPubKeyTag](k.bech32String)}
}

// ValConsPubKey is a validator consensus public key, "terravalconspub1...".
type ValConsPubKey struct {
	bech32String[valConsPubKeyTag]
}

// NewValConsPubKey validates s and returns it as a validator consensus public key.
// All-uppercase input is accepted and stored in lowercase.
// The error wraps [ErrInvalidPubKey].
func NewValConsPubKey(s string) (ValConsPubKey, error) {
	b, err := newBech32String[valConsPubKeyTag](s)
	if err != nil {
		return ValConsPubKey{}, err
	}
	return ValConsPubKey{b}, nil
}

// MustNewValConsPubKey is like [NewValConsPubKey] but panics if s is not valid.
func MustNewValConsPubKey(s string) ValConsPubKey {
	k, err := NewValConsPubKey(s)
	if err != nil {
		panic(fmt.Sprintf("NewValConsPubKey(%q) failed: %v", s, err))
	}
	return k
}

// UncheckedValConsPubKey wraps s without validation.
func UncheckedValConsPubKey(s string) ValConsPubKey {
	return ValConsPubKey{bech32String[valConsPubKeyTag]{s: s}}
}

// ValConsAddress returns the validator consensus address with the same payload.
// The result is only a valid address if the key payload has [AddrDataLen] symbols.
// It panics if k was built with [UncheckedValConsPubKey] from malformed text.
func (k ValConsPubKey) ValConsAddress() ValConsAddress {
	return ValConsAddress{convert[valConsAddressTag](k.bech32String)}
}
