package msg

import (
	"github.com/govalues/terra"
)

// MsgDeposit adds coins to the deposit of a governance proposal.
type MsgDeposit struct {
	ProposalID uint64           `json:"proposal_id,string"`
	Depositor  terra.AccAddress `json:"depositor"`
	Amount     terra.Coins      `json:"amount"`
}

// Type implements the [Msg] interface.
func (m MsgDeposit) Type() string { return "gov/MsgDeposit" }

// ValidateBasic requires a proposal id, a valid depositor and at least one
// positive coin.
func (m MsgDeposit) ValidateBasic() error {
	if m.ProposalID == 0 {
		return invalidf("proposal_id", "must be positive")
	}
	if err := checkAddress("depositor", m.Depositor); err != nil {
		return err
	}
	return checkCoins("amount", m.Amount, false)
}
