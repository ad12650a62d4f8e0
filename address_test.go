package terra

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	testAccAddress     = "terra1pdx498r0hrc2fj36sjhs8vuhrz9hd2cw0tmam9"
	testValAddress     = "terravaloper1pdx498r0hrc2fj36sjhs8vuhrz9hd2cw0yhqtk"
	testValConsAddress = "terravalcons1relcztayk87c3r529rqf3fwdmn8hr6rhcgyrxd"
)

// encode builds a bech32 string with the given prefix and 8-bit payload.
func encode(t *testing.T, prefix string, payload []byte) string {
	t.Helper()
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		t.Fatalf("bech32.ConvertBits(%x) failed: %v", payload, err)
	}
	s, err := bech32.Encode(prefix, data)
	if err != nil {
		t.Fatalf("bech32.Encode(%q) failed: %v", prefix, err)
	}
	return s
}

func TestRole(t *testing.T) {
	tests := []struct {
		role          Role
		wantPrefix    string
		wantIsAddress bool
		wantString    string
	}{
		{RoleAccAddress, "terra", true, "account address"},
		{RoleValAddress, "terravaloper", true, "validator address"},
		{RoleValConsAddress, "terravalcons", true, "validator consensus address"},
		{RoleAccPubKey, "terrapub", false, "account public key"},
		{RoleValPubKey, "terravaloperpub", false, "validator public key"},
		{RoleValConsPubKey, "terravalconspub", false, "validator consensus public key"},
	}
	for _, tt := range tests {
		if got := tt.role.Prefix(); got != tt.wantPrefix {
			t.Errorf("%v.Prefix() = %q, want %q", tt.role, got, tt.wantPrefix)
		}
		if got := tt.role.IsAddress(); got != tt.wantIsAddress {
			t.Errorf("%v.IsAddress() = %v, want %v", tt.role, got, tt.wantIsAddress)
		}
		if got := tt.role.String(); got != tt.wantString {
			t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.wantString)
		}
	}
}

func TestRole_Unknown(t *testing.T) {
	r := Role(7)
	if got := r.Prefix(); got != "" {
		t.Errorf("%v.Prefix() = %q, want empty", r, got)
	}
	if r.IsAddress() {
		t.Errorf("%v.IsAddress() = true, want false", r)
	}
	if got, want := r.String(), "Role(7)"; got != want {
		t.Errorf("Role(7).String() = %q, want %q", got, want)
	}
	if r.Validate(testAccAddress) {
		t.Errorf("%v.Validate(%q) = true, want false", r, testAccAddress)
	}
	if err := r.Check(testAccAddress); err == nil {
		t.Errorf("%v.Check(%q) did not fail", r, testAccAddress)
	}
}

func TestRole_Validate(t *testing.T) {
	key := encode(t, "terrapub", bytes.Repeat([]byte{0x02}, 33))
	tests := []struct {
		role Role
		s    string
		want bool
	}{
		{RoleAccAddress, testAccAddress, true},
		{RoleValAddress, testValAddress, true},
		{RoleValConsAddress, testValConsAddress, true},
		{RoleAccPubKey, key, true},

		// wrong prefix for the role
		{RoleAccAddress, testValAddress, false},
		{RoleValAddress, testAccAddress, false},
		{RoleAccAddress, "cosmos176m2p8l3fps3dal7h8gf9jvrv98tu3rqfdht86", false},
		{RoleAccPubKey, testAccAddress, false},

		// broken checksum
		{RoleAccAddress, "terra1pdx498r0h7c2fj36sjhs8vu8rz9hd2cw0tmam9", false},
		{RoleAccAddress, strings.ToUpper(testAccAddress[:10]) + testAccAddress[10:], false},

		// wrong payload length for an address
		{RoleAccAddress, encode(t, "terra", bytes.Repeat([]byte{0x01}, 32)), false},
		{RoleAccAddress, encode(t, "terra", bytes.Repeat([]byte{0x01}, 19)), false},
		{RoleAccAddress, encode(t, "terra", bytes.Repeat([]byte{0x01}, 20)), true},

		{RoleAccAddress, "", false},
		{RoleAccAddress, "terra1", false},
	}
	for _, tt := range tests {
		if got := tt.role.Validate(tt.s); got != tt.want {
			t.Errorf("%v.Validate(%q) = %v, want %v", tt.role, tt.s, got, tt.want)
		}
	}
}

func TestRole_Check(t *testing.T) {
	tests := []struct {
		role    Role
		s       string
		wantErr error
	}{
		{RoleAccAddress, testValAddress, ErrInvalidAddress},
		{RoleValConsAddress, "terravalcons1", ErrInvalidAddress},
		{RoleAccPubKey, testAccAddress, ErrInvalidPubKey},
		{RoleValConsPubKey, "x", ErrInvalidPubKey},
	}
	for _, tt := range tests {
		err := tt.role.Check(tt.s)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%v.Check(%q) failed with %v, want %v", tt.role, tt.s, err, tt.wantErr)
			continue
		}
		if !strings.Contains(err.Error(), tt.s) {
			t.Errorf("%v.Check(%q) error %q does not name the string", tt.role, tt.s, err)
		}
	}
}

func TestNewAccAddress(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := NewAccAddress(testAccAddress)
		if err != nil {
			t.Fatalf("NewAccAddress(%q) failed: %v", testAccAddress, err)
		}
		if got.String() != testAccAddress {
			t.Errorf("NewAccAddress(%q) = %v", testAccAddress, got)
		}
		if got.Role() != RoleAccAddress {
			t.Errorf("NewAccAddress(%q).Role() = %v, want %v", testAccAddress, got.Role(), RoleAccAddress)
		}
		if !got.IsValid() {
			t.Errorf("NewAccAddress(%q).IsValid() = false", testAccAddress)
		}
	})

	t.Run("uppercase", func(t *testing.T) {
		upper := strings.ToUpper(testAccAddress)
		got, err := NewAccAddress(upper)
		if err != nil {
			t.Fatalf("NewAccAddress(%q) failed: %v", upper, err)
		}
		if got.String() != testAccAddress {
			t.Errorf("NewAccAddress(%q) = %v, want %v", upper, got, testAccAddress)
		}
		if want := MustNewAccAddress(testAccAddress); got != want {
			t.Errorf("NewAccAddress(%q) = %v, want %v", upper, got, want)
		}
		var a AccAddress
		if err := a.UnmarshalText([]byte(upper)); err != nil || a.String() != testAccAddress {
			t.Errorf("UnmarshalText(%q) = %v, %v, want %v", upper, a, err, testAccAddress)
		}
	})

	t.Run("payload length", func(t *testing.T) {
		for _, n := range []int{19, 21, 32} {
			bz := bytes.Repeat([]byte{0x01}, n)
			if _, err := NewAccAddressFromBytes(bz); !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("NewAccAddressFromBytes(%v bytes) failed with %v, want %v", n, err, ErrInvalidAddress)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			"",
			testValAddress,
			"terra1pdx498r0h7c2fj36sjhs8vu8rz9hd2cw0tmam9",
			"cosmos176m2p8l3fps3dal7h8gf9jvrv98tu3rqfdht86",
		}
		for _, s := range tests {
			_, err := NewAccAddress(s)
			if !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("NewAccAddress(%q) failed with %v, want %v", s, err, ErrInvalidAddress)
			}
		}
	})
}

func TestMustNewAccAddress(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustNewAccAddress(%q) did not panic", testValAddress)
		}
	}()
	MustNewAccAddress(testValAddress)
}

func TestAccAddress_ValAddress(t *testing.T) {
	acc := MustNewAccAddress(testAccAddress)
	val := acc.ValAddress()
	if val.String() != testValAddress {
		t.Errorf("%v.ValAddress() = %v, want %v", acc, val, testValAddress)
	}
	if !val.IsValid() {
		t.Errorf("%v.ValAddress() is not valid", acc)
	}
	if got := val.AccAddress(); got != acc {
		t.Errorf("%v.AccAddress() = %v, want %v", val, got, acc)
	}

	direct := MustNewValAddress(testValAddress)
	if direct != val {
		t.Errorf("MustNewValAddress(%q) = %v, want %v", testValAddress, direct, val)
	}
}

func TestAddress_PubKeyConversions(t *testing.T) {
	acc := MustNewAccAddress(testAccAddress)
	accPub := acc.AccPubKey()
	if !strings.HasPrefix(accPub.String(), "terrapub1") {
		t.Errorf("%v.AccPubKey() = %v, want prefix terrapub1", acc, accPub)
	}
	if _, err := NewAccPubKey(accPub.String()); err != nil {
		t.Errorf("NewAccPubKey(%q) failed: %v", accPub, err)
	}

	valPub := accPub.ValPubKey()
	if _, err := NewValPubKey(valPub.String()); err != nil {
		t.Errorf("NewValPubKey(%q) failed: %v", valPub, err)
	}
	if got := valPub.AccPubKey(); got != accPub {
		t.Errorf("%v.AccPubKey() = %v, want %v", valPub, got, accPub)
	}
	if got := acc.ValAddress().ValPubKey(); got != valPub {
		t.Errorf("%v.ValAddress().ValPubKey() = %v, want %v", acc, got, valPub)
	}

	cons := MustNewValConsAddress(testValConsAddress)
	consPub := cons.ValConsPubKey()
	if _, err := NewValConsPubKey(consPub.String()); err != nil {
		t.Errorf("NewValConsPubKey(%q) failed: %v", consPub, err)
	}
	if got := consPub.ValConsAddress(); got != cons {
		t.Errorf("%v.ValConsAddress() = %v, want %v", consPub, got, cons)
	}

	want, err := acc.Bytes()
	if err != nil {
		t.Fatalf("%v.Bytes() failed: %v", acc, err)
	}
	for _, b := range []interface{ Bytes() ([]byte, error) }{accPub, valPub, acc.ValAddress()} {
		got, err := b.Bytes()
		if err != nil {
			t.Errorf("%v.Bytes() failed: %v", b, err)
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%v.Bytes() = %x, want %x", b, got, want)
		}
	}
}

func TestAddress_Bytes(t *testing.T) {
	acc := MustNewAccAddress(testAccAddress)
	bz, err := acc.Bytes()
	if err != nil {
		t.Fatalf("%v.Bytes() failed: %v", acc, err)
	}
	if len(bz) != 20 {
		t.Errorf("len(%v.Bytes()) = %v, want 20", acc, len(bz))
	}
	got, err := NewAccAddressFromBytes(bz)
	if err != nil {
		t.Fatalf("NewAccAddressFromBytes(%x) failed: %v", bz, err)
	}
	if got != acc {
		t.Errorf("NewAccAddressFromBytes(%x) = %v, want %v", bz, got, acc)
	}
	val, err := NewValAddressFromBytes(bz)
	if err != nil {
		t.Fatalf("NewValAddressFromBytes(%x) failed: %v", bz, err)
	}
	if val.String() != testValAddress {
		t.Errorf("NewValAddressFromBytes(%x) = %v, want %v", bz, val, testValAddress)
	}
	if _, err := NewAccAddressFromBytes(make([]byte, 32)); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("NewAccAddressFromBytes(32 bytes) failed with %v, want %v", err, ErrInvalidAddress)
	}
}

func TestAddress_ChecksumVariant(t *testing.T) {
	data, err := bech32.ConvertBits(bytes.Repeat([]byte{0xab}, 20), 8, 5, true)
	if err != nil {
		t.Fatalf("bech32.ConvertBits failed: %v", err)
	}
	s, err := bech32.EncodeM("terra", data)
	if err != nil {
		t.Fatalf("bech32.EncodeM failed: %v", err)
	}
	acc, err := NewAccAddress(s)
	if err != nil {
		t.Fatalf("NewAccAddress(%q) failed: %v", s, err)
	}
	val := acc.ValAddress()
	_, _, version, err := bech32.DecodeGeneric(val.String())
	if err != nil {
		t.Fatalf("bech32.DecodeGeneric(%q) failed: %v", val, err)
	}
	if version != bech32.VersionM {
		t.Errorf("%v.ValAddress() changed the checksum variant to %v", acc, version)
	}
	if got := val.AccAddress(); got != acc {
		t.Errorf("%v.AccAddress() = %v, want %v", val, got, acc)
	}
}

func TestUncheckedAccAddress(t *testing.T) {
	a := UncheckedAccAddress("not an address")
	if a.IsValid() {
		t.Errorf("UncheckedAccAddress(%q).IsValid() = true", a)
	}
	if a.String() != "not an address" {
		t.Errorf("UncheckedAccAddress(%q).String() = %q", "not an address", a)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%q.ValAddress() did not panic", a)
		}
	}()
	a.ValAddress()
}

func TestAddress_JSON(t *testing.T) {
	type payload struct {
		Delegator AccAddress `json:"delegator_address"`
		Validator ValAddress `json:"validator_address"`
	}
	p := payload{
		Delegator: MustNewAccAddress(testAccAddress),
		Validator: MustNewValAddress(testValAddress),
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal(%v) failed: %v", p, err)
	}
	want := `{"delegator_address":"` + testAccAddress + `","validator_address":"` + testValAddress + `"}`
	if string(data) != want {
		t.Errorf("json.Marshal(%v) = %s, want %s", p, data, want)
	}

	var q payload
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("json.Unmarshal(%s) failed: %v", data, err)
	}
	if q != p {
		t.Errorf("json.Unmarshal(%s) = %v, want %v", data, q, p)
	}

	swapped := `{"delegator_address":"` + testValAddress + `","validator_address":"` + testAccAddress + `"}`
	if err := json.Unmarshal([]byte(swapped), &q); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("json.Unmarshal(%s) failed with %v, want %v", swapped, err, ErrInvalidAddress)
	}
}
