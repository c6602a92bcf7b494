package domain

// Member is one roster entry. Aliases are alternative spellings the
// autocomplete also matches on. Rosters are read-only configuration data.
type Member struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// Roster is the configured membership: elected FSR members, who may also
// take the minutes, and associated members offered for the guest list.
type Roster struct {
	FSR        []Member `json:"fsr"`
	Associated []Member `json:"associated"`
}
