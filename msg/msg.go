// Package msg defines the transaction messages of the Terra modules.
// Messages only aggregate the value types of the terra package; their
// ValidateBasic methods perform the stateless checks that a node would
// perform before accepting them.
package msg

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/govalues/terra"
)

// Codespace is the error codespace of the msg package.
const Codespace = "msg"

// ErrInvalidMsg is wrapped by every error returned from ValidateBasic.
var ErrInvalidMsg = errorsmod.Register(Codespace, 2, "invalid message")

// Msg is a message that can be included in a transaction.
type Msg interface {
	// Type returns the amino route of the message, such as "bank/MsgSend".
	Type() string
	// ValidateBasic performs stateless checks of the message fields.
	ValidateBasic() error
}

type envelope struct {
	Type  string `json:"type"`
	Value Msg    `json:"value"`
}

// Marshal validates m and encodes it as an amino JSON object of the form
// {"type": "bank/MsgSend", "value": {...}}.
// Coins are always encoded in denomination order.
func Marshal(m Msg) ([]byte, error) {
	if err := m.ValidateBasic(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(envelope{Type: m.Type(), Value: m})
	if err != nil {
		return nil, fmt.Errorf("marshaling %v: %w", m.Type(), err)
	}
	return b, nil
}

// address is implemented by all address and public key types.
type address interface {
	Role() terra.Role
	String() string
}

func invalid(field string, err error) error {
	return fmt.Errorf("%w: %v: %w", ErrInvalidMsg, field, err)
}

func invalidf(field, format string, args ...any) error {
	return fmt.Errorf("%w: %v: %v", ErrInvalidMsg, field, fmt.Sprintf(format, args...))
}

func checkAddress(field string, a address) error {
	if err := a.Role().Check(a.String()); err != nil {
		return invalid(field, err)
	}
	return nil
}

// checkCoin requires a denomination and a positive amount.
func checkCoin(field string, c terra.Coin) error {
	if c.Denom() == terra.NoDenom {
		return invalidf(field, "missing denomination")
	}
	if c.IsZero() {
		return invalidf(field, "amount of %v must be positive", c)
	}
	return nil
}

// checkCoins requires every coin to have a positive amount and, unless
// allowEmpty is set, at least one coin to be present.
func checkCoins(field string, c terra.Coins, allowEmpty bool) error {
	if c.IsEmpty() && !allowEmpty {
		return invalidf(field, "no coins")
	}
	for _, coin := range c.Sorted() {
		if err := checkCoin(field, coin); err != nil {
			return err
		}
	}
	return nil
}
