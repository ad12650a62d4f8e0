package msg

import (
	"github.com/govalues/terra"
)

// MsgWithdrawDelegatorReward withdraws the staking rewards of a delegator
// from a single validator.
type MsgWithdrawDelegatorReward struct {
	DelegatorAddress terra.AccAddress `json:"delegator_address"`
	ValidatorAddress terra.ValAddress `json:"validator_address"`
}

// Type implements the [Msg] interface.
func (m MsgWithdrawDelegatorReward) Type() string {
	return "distribution/MsgWithdrawDelegationReward"
}

// ValidateBasic requires a valid delegator account and validator address.
func (m MsgWithdrawDelegatorReward) ValidateBasic() error {
	if err := checkAddress("delegator_address", m.DelegatorAddress); err != nil {
		return err
	}
	return checkAddress("validator_address", m.ValidatorAddress)
}

// MsgWithdrawValidatorCommission withdraws the accumulated commission of a
// validator.
type MsgWithdrawValidatorCommission struct {
	ValidatorAddress terra.ValAddress `json:"validator_address"`
}

// Type implements the [Msg] interface.
func (m MsgWithdrawValidatorCommission) Type() string {
	return "distribution/MsgWithdrawValidatorCommission"
}

// ValidateBasic requires a valid validator address.
func (m MsgWithdrawValidatorCommission) ValidateBasic() error {
	return checkAddress("validator_address", m.ValidatorAddress)
}

// MsgSetWithdrawAddress changes the account that receives the rewards of a
// delegator.
type MsgSetWithdrawAddress struct {
	DelegatorAddress terra.AccAddress `json:"delegator_address"`
	WithdrawAddress  terra.AccAddress `json:"withdraw_address"`
}

// Type implements the [Msg] interface.
func (m MsgSetWithdrawAddress) Type() string {
	return "distribution/MsgModifyWithdrawAddress"
}

// ValidateBasic requires valid delegator and withdraw accounts.
func (m MsgSetWithdrawAddress) ValidateBasic() error {
	if err := checkAddress("delegator_address", m.DelegatorAddress); err != nil {
		return err
	}
	return checkAddress("withdraw_address", m.WithdrawAddress)
}

// MsgFundCommunityPool sends coins from an account to the community pool.
type MsgFundCommunityPool struct {
	Depositor terra.AccAddress `json:"depositor"`
	Amount    terra.Coins      `json:"amount"`
}

// Type implements the [Msg] interface.
func (m MsgFundCommunityPool) Type() string {
	return "distribution/MsgFundCommunityPool"
}

// ValidateBasic requires a valid depositor and at least one positive coin.
func (m MsgFundCommunityPool) ValidateBasic() error {
	if err := checkAddress("depositor", m.Depositor); err != nil {
		return err
	}
	return checkCoins("amount", m.Amount, false)
}
