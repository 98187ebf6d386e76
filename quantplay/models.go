package quantplay

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Account is one connected trading account as returned by the accounts
// endpoint. The nickname is the caller-facing alias used to scope
// positions, holdings and order requests.
type Account struct {
	Broker   string `json:"broker"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Expiry   string `json:"expiry"`
}

var accountFields = []string{"broker", "username", "nickname", "expiry"}

// AccountFromMap builds an Account from an untyped record. Unknown keys are
// dropped; a missing or non-string required field is an error.
func AccountFromMap(m map[string]any) (Account, error) {
	var acct Account
	for _, key := range accountFields {
		v, ok := m[key]
		if !ok {
			return Account{}, errors.Errorf("account record missing required field %q", key)
		}
		s, ok := v.(string)
		if !ok {
			return Account{}, errors.Errorf("account field %q: expected string, got %T", key, v)
		}
		switch key {
		case "broker":
			acct.Broker = s
		case "username":
			acct.Username = s
		case "nickname":
			acct.Nickname = s
		case "expiry":
			acct.Expiry = s
		}
	}
	return acct, nil
}

// ToMap renders the account back to an untyped record holding exactly the
// four known fields.
func (a Account) ToMap() map[string]any {
	return map[string]any{
		"broker":   a.Broker,
		"username": a.Username,
		"nickname": a.Nickname,
		"expiry":   a.Expiry,
	}
}

// Envelope is the JSON wrapper returned by every QuantPlay endpoint. Data is
// kept raw; its shape depends on the operation and is trusted verbatim once
// the status signals success.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   bool            `json:"error,omitempty"`
}

// failed reports whether the envelope carries an explicit failure marker.
// The service has been observed emitting both error=true and status="error";
// they are treated as equivalent.
func (e *Envelope) failed() bool {
	return e.Error || e.Status == "error"
}
