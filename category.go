package graphil

// Category explains which translation tier produced (or failed to produce) a query.
type Category string

// Categories, in tier order. The string values are part of the output format.
const (
	CategoryNotCypher    Category = "Not Comply with OpenCypher"
	CategoryCompliant    Category = "Comply with ISO-GQL"
	CategoryMusked       Category = "Comply with ISO-GQL by Musking Reserved Words"
	CategoryNotSupported Category = "Graph-IL Not Support"
	CategoryTranslatable Category = "Graph-IL Translatable"
	CategoryNoStandard   Category = "No Related ISO-GQL Standard"
)

// Categories lists every category in tier order.
func Categories() []Category {
	return []Category{
		CategoryNotCypher,
		CategoryCompliant,
		CategoryMusked,
		CategoryNotSupported,
		CategoryTranslatable,
		CategoryNoStandard,
	}
}

// Translated reports whether a translation in this category carries GQL text.
func (c Category) Translated() bool {
	switch c {
	case CategoryCompliant, CategoryMusked, CategoryTranslatable:
		return true
	case CategoryNotCypher, CategoryNotSupported, CategoryNoStandard:
		return false
	default:
		return false
	}
}

// Short returns a compact label for terminal output.
func (c Category) Short() string {
	switch c {
	case CategoryNotCypher:
		return "invalid"
	case CategoryCompliant:
		return "compliant"
	case CategoryMusked:
		return "musked"
	case CategoryNotSupported:
		return "unsupported"
	case CategoryTranslatable:
		return "lifted"
	case CategoryNoStandard:
		return "no-standard"
	default:
		return string(c)
	}
}

// Unable is the GQL text recorded for queries that could not be translated.
const Unable = "Unable to Translate to GQL"
