package importers_enums

import (
	"encoding/json"
	"fmt"
)

// ImportMode tells what to do with a user found in the imported data.
// Clients send either a mode string or false, so both decode here.
type ImportMode string

const (
	ImportModeNone   ImportMode = ""
	ImportModeInvite ImportMode = "invite"
	ImportModeMap    ImportMode = "map"
)

func (m *ImportMode) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*m = ImportMode(text)
		return nil
	}

	var flag *bool
	if err := json.Unmarshal(data, &flag); err != nil {
		return fmt.Errorf("import mode must be a string or false: %s", string(data))
	}

	if flag != nil && *flag {
		return fmt.Errorf("import mode true is not supported")
	}

	*m = ImportModeNone
	return nil
}
