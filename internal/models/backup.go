package models

// Backup is the JSON interchange document for one profile. Import overwrites.
type Backup struct {
	Profile  *Profile  `json:"profile"`
	Settings *Settings `json:"settings,omitempty"`
	Sessions []Session `json:"sessions"`
}
