package msg

import (
	"encoding/json"
	"fmt"

	"github.com/govalues/terra"
)

// MsgRevokeAuthorization withdraws the permission of the grantee to execute
// messages of the given type on behalf of the granter.
type MsgRevokeAuthorization struct {
	Granter terra.AccAddress `json:"granter"`
	Grantee terra.AccAddress `json:"grantee"`
	MsgType string           `json:"authorization_msg_type"`
}

// Type implements the [Msg] interface.
func (m MsgRevokeAuthorization) Type() string { return "msgauth/MsgRevokeAuthorization" }

// ValidateBasic requires distinct valid granter and grantee accounts and a message type.
func (m MsgRevokeAuthorization) ValidateBasic() error {
	if err := checkGrant(m.Granter, m.Grantee); err != nil {
		return err
	}
	if m.MsgType == "" {
		return invalidf("authorization_msg_type", "must not be empty")
	}
	return nil
}

// MsgExecAuthorized executes messages on behalf of their signers, using the
// authorizations granted to the grantee.
type MsgExecAuthorized struct {
	Grantee terra.AccAddress
	Msgs    []Msg
}

// Type implements the [Msg] interface.
func (m MsgExecAuthorized) Type() string { return "msgauth/MsgExecAuthorized" }

// ValidateBasic requires a valid grantee and at least one message, and
// validates every wrapped message.
func (m MsgExecAuthorized) ValidateBasic() error {
	if err := checkAddress("grantee", m.Grantee); err != nil {
		return err
	}
	if len(m.Msgs) == 0 {
		return invalidf("msgs", "no messages")
	}
	for i, inner := range m.Msgs {
		if inner == nil {
			return invalidf("msgs", "message %v is nil", i)
		}
		if err := inner.ValidateBasic(); err != nil {
			return fmt.Errorf("msgs[%v]: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// Wrapped messages are encoded in the same {"type", "value"} form as [Marshal].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (m MsgExecAuthorized) MarshalJSON() ([]byte, error) {
	msgs := make([]envelope, len(m.Msgs))
	for i, inner := range m.Msgs {
		msgs[i] = envelope{Type: inner.Type(), Value: inner}
	}
	return json.Marshal(struct {
		Grantee terra.AccAddress `json:"grantee"`
		Msgs    []envelope       `json:"msgs"`
	}{
		Grantee: m.Grantee,
		Msgs:    msgs,
	})
}

// checkGrant requires two distinct valid accounts.
func checkGrant(granter, grantee terra.AccAddress) error {
	if err := checkAddress("granter", granter); err != nil {
		return err
	}
	if err := checkAddress("grantee", grantee); err != nil {
		return err
	}
	if granter == grantee {
		return invalidf("grantee", "cannot be the granter")
	}
	return nil
}
