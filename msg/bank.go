package msg

import (
	"github.com/govalues/terra"
)

// MsgSend transfers coins from one account to another.
type MsgSend struct {
	FromAddress terra.AccAddress `json:"from_address"`
	ToAddress   terra.AccAddress `json:"to_address"`
	Amount      terra.Coins      `json:"amount"`
}

// Type implements the [Msg] interface.
func (m MsgSend) Type() string { return "bank/MsgSend" }

// ValidateBasic requires valid sender and recipient accounts and at least one coin,
// all with positive amounts.
func (m MsgSend) ValidateBasic() error {
	if err := checkAddress("from_address", m.FromAddress); err != nil {
		return err
	}
	if err := checkAddress("to_address", m.ToAddress); err != nil {
		return err
	}
	return checkCoins("amount", m.Amount, false)
}

// Input is the sending side of a [MsgMultiSend].
type Input struct {
	Address terra.AccAddress `json:"address"`
	Coins   terra.Coins      `json:"coins"`
}

// Output is the receiving side of a [MsgMultiSend].
type Output struct {
	Address terra.AccAddress `json:"address"`
	Coins   terra.Coins      `json:"coins"`
}

// MsgMultiSend transfers coins from several accounts to several accounts.
// The inputs and the outputs must carry the same total.
type MsgMultiSend struct {
	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// Type implements the [Msg] interface.
func (m MsgMultiSend) Type() string { return "bank/MsgMultiSend" }

// ValidateBasic requires at least one input and one output, valid accounts and
// positive coins, and inputs that sum exactly to the outputs.
func (m MsgMultiSend) ValidateBasic() error {
	if len(m.Inputs) == 0 {
		return invalidf("inputs", "no inputs")
	}
	if len(m.Outputs) == 0 {
		return invalidf("outputs", "no outputs")
	}
	var in, out terra.Coins
	var err error
	for _, i := range m.Inputs {
		if err = checkAddress("inputs.address", i.Address); err != nil {
			return err
		}
		if err = checkCoins("inputs.coins", i.Coins, false); err != nil {
			return err
		}
		if in, err = in.Add(i.Coins); err != nil {
			return invalid("inputs", err)
		}
	}
	for _, o := range m.Outputs {
		if err = checkAddress("outputs.address", o.Address); err != nil {
			return err
		}
		if err = checkCoins("outputs.coins", o.Coins, false); err != nil {
			return err
		}
		if out, err = out.Add(o.Coins); err != nil {
			return invalid("outputs", err)
		}
	}
	if !in.Equal(out) {
		return invalidf("outputs", "sum of inputs %v does not match sum of outputs %v", in, out)
	}
	return nil
}
