package game

// Archetype is a configured wrestler template: the default personality and
// psych profile a WrestlerInput inherits, plus the moveset key that selects
// the finisher.
type Archetype struct {
	Name         string       `json:"name"`
	Moveset      string       `json:"moveset"`
	Personality  Personality  `json:"personality"`
	PsychProfile PsychProfile `json:"psych_profile"`
}
