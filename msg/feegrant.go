package msg

import (
	"github.com/govalues/terra"
)

// MsgRevokeAllowance withdraws a fee allowance.
type MsgRevokeAllowance struct {
	Granter terra.AccAddress `json:"granter"`
	Grantee terra.AccAddress `json:"grantee"`
}

// Type implements the [Msg] interface.
func (m MsgRevokeAllowance) Type() string { return "feegrant/MsgRevokeAllowance" }

// ValidateBasic requires distinct valid granter and grantee accounts.
func (m MsgRevokeAllowance) ValidateBasic() error {
	return checkGrant(m.Granter, m.Grantee)
}
