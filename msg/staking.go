package msg

import (
	"github.com/govalues/terra"
)

// MsgDelegate bonds coins of a delegator to a validator.
type MsgDelegate struct {
	DelegatorAddress terra.AccAddress `json:"delegator_address"`
	ValidatorAddress terra.ValAddress `json:"validator_address"`
	Amount           terra.Coin       `json:"amount"`
}

// Type implements the [Msg] interface.
func (m MsgDelegate) Type() string { return "staking/MsgDelegate" }

// ValidateBasic requires valid addresses and a positive amount.
func (m MsgDelegate) ValidateBasic() error {
	return checkDelegation(m.DelegatorAddress, m.ValidatorAddress, m.Amount)
}

// MsgUndelegate unbonds coins of a delegator from a validator.
type MsgUndelegate struct {
	DelegatorAddress terra.AccAddress `json:"delegator_address"`
	ValidatorAddress terra.ValAddress `json:"validator_address"`
	Amount           terra.Coin       `json:"amount"`
}

// Type implements the [Msg] interface.
func (m MsgUndelegate) Type() string { return "staking/MsgUndelegate" }

// ValidateBasic requires valid addresses and a positive amount.
func (m MsgUndelegate) ValidateBasic() error {
	return checkDelegation(m.DelegatorAddress, m.ValidatorAddress, m.Amount)
}

// MsgBeginRedelegate moves bonded coins of a delegator from one validator
// to another.
type MsgBeginRedelegate struct {
	DelegatorAddress    terra.AccAddress `json:"delegator_address"`
	ValidatorSrcAddress terra.ValAddress `json:"validator_src_address"`
	ValidatorDstAddress terra.ValAddress `json:"validator_dst_address"`
	Amount              terra.Coin       `json:"amount"`
}

// Type implements the [Msg] interface.
func (m MsgBeginRedelegate) Type() string { return "staking/MsgBeginRedelegate" }

// ValidateBasic requires valid addresses, distinct source and destination
// validators, and a positive amount.
func (m MsgBeginRedelegate) ValidateBasic() error {
	if err := checkDelegation(m.DelegatorAddress, m.ValidatorSrcAddress, m.Amount); err != nil {
		return err
	}
	if err := checkAddress("validator_dst_address", m.ValidatorDstAddress); err != nil {
		return err
	}
	if m.ValidatorSrcAddress == m.ValidatorDstAddress {
		return invalidf("validator_dst_address", "cannot redelegate to the same validator %v", m.ValidatorDstAddress)
	}
	return nil
}

func checkDelegation(delegator terra.AccAddress, validator terra.ValAddress, amount terra.Coin) error {
	if err := checkAddress("delegator_address", delegator); err != nil {
		return err
	}
	if err := checkAddress("validator_address", validator); err != nil {
		return err
	}
	return checkCoin("amount", amount)
}
