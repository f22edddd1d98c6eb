package eggboard

// Form keys shared by every variant.
const (
	KeyType      = "submissionType"
	KeyTitle     = "title"
	KeyTimestamp = "timestamp"
	KeyCredit    = "creditName"
)

// Variant describes one archive page. The archives only differ in the names
// and labels of the source and long-text fields, so a variant is just a
// field-name mapping plus display strings.
type Variant struct {
	Name    string // URL slug
	Heading string

	SourceKey   string // "source", "where" or "relatedTo"
	SourceLabel string
	SourceHint  string // shown when the source field is empty

	TextKey   string // "analysis" or "details"
	TextLabel string

	// Types lists the options of the submission type selector.
	Types []string
}

var (
	EasterEggs = Variant{
		Name:        "eastereggs",
		Heading:     "Easter Eggs & Theories",
		SourceKey:   "source",
		SourceLabel: "Source",
		SourceHint:  "Please tell us what it's from.",
		TextKey:     "analysis",
		TextLabel:   "Analysis",
		Types:       []string{"Theory", "Easter Egg"},
	}
	Locations = Variant{
		Name:        "locations",
		Heading:     "Filming Locations",
		SourceKey:   "where",
		SourceLabel: "Where",
		SourceHint:  "Please tell us where it is.",
		TextKey:     "details",
		TextLabel:   "Details",
		Types:       []string{"Location", "Set Photo"},
	}
	Connections = Variant{
		Name:        "connections",
		Heading:     "Connections",
		SourceKey:   "relatedTo",
		SourceLabel: "Related to",
		SourceHint:  "Please tell us what it's related to.",
		TextKey:     "details",
		TextLabel:   "Details",
		Types:       []string{"Connection", "Callback", "Foreshadowing"},
	}
)

// Variants lists all archives in navigation order.
var Variants = []Variant{EasterEggs, Locations, Connections}

// VariantByName looks up a variant by its slug.
func VariantByName(name string) (Variant, error) {
	for _, v := range Variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, ErrUnknownVariant
}

// Keys returns the form keys of the variant in display order.
func (v Variant) Keys() []string {
	return []string{KeyType, KeyTitle, v.SourceKey, KeyTimestamp, v.TextKey, KeyCredit}
}
