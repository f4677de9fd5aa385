package model

import (
	"bytes"
	"encoding/json"
)

// NullableString is a three-state field for sparse updates of nullable
// columns. Absent from the payload means "leave unchanged" (Set false); an
// explicit JSON null means "clear" (Set true, Value nil); anything else sets
// the value. A plain pointer cannot express the null-vs-absent distinction.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marks the field as set. encoding/json invokes it for an
// explicit null too, so null and absent stay distinguishable.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}
