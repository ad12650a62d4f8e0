package msg

import (
	"encoding/json"

	"github.com/govalues/terra"
)

// MsgExecuteContract calls a contract with a JSON message and optional coins.
type MsgExecuteContract struct {
	Sender     terra.AccAddress `json:"sender"`
	Contract   terra.AccAddress `json:"contract"`
	ExecuteMsg json.RawMessage  `json:"execute_msg"`
	Coins      terra.Coins      `json:"coins"`
}

// Type implements the [Msg] interface.
func (m MsgExecuteContract) Type() string { return "wasm/MsgExecuteContract" }

// ValidateBasic requires valid sender and contract accounts, an execute
// message that is a JSON object, and positive coins if any are attached.
func (m MsgExecuteContract) ValidateBasic() error {
	if err := checkAddress("sender", m.Sender); err != nil {
		return err
	}
	if err := checkAddress("contract", m.Contract); err != nil {
		return err
	}
	if err := checkContractMsg("execute_msg", m.ExecuteMsg); err != nil {
		return err
	}
	return checkCoins("coins", m.Coins, true)
}

// MsgInstantiateContract creates a contract from stored code.
// The admin is optional; without one the contract cannot be migrated.
type MsgInstantiateContract struct {
	Sender    terra.AccAddress  `json:"sender"`
	Admin     *terra.AccAddress `json:"admin,omitempty"`
	CodeID    uint64            `json:"code_id,string"`
	InitMsg   json.RawMessage   `json:"init_msg"`
	InitCoins terra.Coins       `json:"init_coins"`
}

// Type implements the [Msg] interface.
func (m MsgInstantiateContract) Type() string { return "wasm/MsgInstantiateContract" }

// ValidateBasic requires a valid sender, a valid admin if one is set, a
// code id, an init message that is a JSON object, and positive coins if any
// are attached.
func (m MsgInstantiateContract) ValidateBasic() error {
	if err := checkAddress("sender", m.Sender); err != nil {
		return err
	}
	if m.Admin != nil {
		if err := checkAddress("admin", *m.Admin); err != nil {
			return err
		}
	}
	if m.CodeID == 0 {
		return invalidf("code_id", "must be positive")
	}
	if err := checkContractMsg("init_msg", m.InitMsg); err != nil {
		return err
	}
	return checkCoins("init_coins", m.InitCoins, true)
}

// MsgMigrateContract moves a contract to new code.
type MsgMigrateContract struct {
	Admin      terra.AccAddress `json:"admin"`
	Contract   terra.AccAddress `json:"contract"`
	NewCodeID  uint64           `json:"new_code_id,string"`
	MigrateMsg json.RawMessage  `json:"migrate_msg"`
}

// Type implements the [Msg] interface.
func (m MsgMigrateContract) Type() string { return "wasm/MsgMigrateContract" }

// ValidateBasic requires valid admin and contract accounts, a new code id and
// a migrate message that is a JSON object.
func (m MsgMigrateContract) ValidateBasic() error {
	if err := checkAddress("admin", m.Admin); err != nil {
		return err
	}
	if err := checkAddress("contract", m.Contract); err != nil {
		return err
	}
	if m.NewCodeID == 0 {
		return invalidf("new_code_id", "must be positive")
	}
	return checkContractMsg("migrate_msg", m.MigrateMsg)
}

// MsgUpdateContractAdmin hands the admin rights of a contract over to
// another account.
type MsgUpdateContractAdmin struct {
	Admin    terra.AccAddress `json:"admin"`
	NewAdmin terra.AccAddress `json:"new_admin"`
	Contract terra.AccAddress `json:"contract"`
}

// Type implements the [Msg] interface.
func (m MsgUpdateContractAdmin) Type() string { return "wasm/MsgUpdateContractAdmin" }

// ValidateBasic requires valid admin, new admin and contract accounts.
func (m MsgUpdateContractAdmin) ValidateBasic() error {
	if err := checkAddress("admin", m.Admin); err != nil {
		return err
	}
	if err := checkAddress("new_admin", m.NewAdmin); err != nil {
		return err
	}
	return checkAddress("contract", m.Contract)
}

// MsgClearContractAdmin removes the admin of a contract, making it immutable.
type MsgClearContractAdmin struct {
	Admin    terra.AccAddress `json:"admin"`
	Contract terra.AccAddress `json:"contract"`
}

// Type implements the [Msg] interface.
func (m MsgClearContractAdmin) Type() string { return "wasm/MsgClearContractAdmin" }

// ValidateBasic requires valid admin and contract accounts.
func (m MsgClearContractAdmin) ValidateBasic() error {
	if err := checkAddress("admin", m.Admin); err != nil {
		return err
	}
	return checkAddress("contract", m.Contract)
}

// checkContractMsg requires a JSON object.
func checkContractMsg(field string, raw json.RawMessage) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return invalid(field, err)
	}
	if obj == nil {
		return invalidf(field, "must be a JSON object")
	}
	return nil
}
