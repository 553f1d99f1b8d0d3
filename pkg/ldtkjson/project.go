// Package ldtkjson holds the raw document model for an LDtk project
// export. It mirrors the subset of the JSON the binding pipeline
// consumes; no validation happens here beyond JSON well-formedness.
// Field instance values stay raw so the world loader can decode them
// against the compiled schema instead of whatever type the JSON holds.
package ldtkjson

import (
	"encoding/json"
	"fmt"
)

// Project is the root of an exported project document.
type Project struct {
	JSONVersion    string      `json:"jsonVersion"`
	BgColor        string      `json:"bgColor"`
	ExternalLevels bool        `json:"externalLevels"`
	Defs           Definitions `json:"defs"`
	Levels         []Level     `json:"levels"`
}

// Parse decodes a project document from its raw bytes.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project document: %w", err)
	}
	return &p, nil
}
