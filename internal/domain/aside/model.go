package aside

// Type is the inferred destination of an aside.
type Type string

const (
	// TypeDeferProject is a deferred task for a project.
	TypeDeferProject Type = "defer-project"
	// TypeLaterStandalone is a someday item.
	TypeLaterStandalone Type = "later-standalone"
)

// Label is the human rendering used in the confirmation prompt.
func (t Type) Label() string {
	switch t {
	case TypeDeferProject:
		return "defer (project)"
	case TypeLaterStandalone:
		return "later (standalone)"
	}
	return string(t)
}

// Aside is a tangential sentence detected in conversational text.
type Aside struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
	// Trigger is the phrase that matched.
	Trigger string `json:"trigger"`
}
