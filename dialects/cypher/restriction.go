package cypher

// Restriction names a place where the lifter deliberately narrows Cypher to
// what the IR can hold. Some restrictions drop information and let the lift
// continue; others make the lift fail with graphil.ErrUnsupported.
type Restriction string

// Restrictions applied by the lifter.
const (
	// RestrictFirstPattern keeps only the first comma-separated pattern of a MATCH.
	RestrictFirstPattern Restriction = "first-pattern"
	// RestrictFirstLabel keeps only the first node label or relationship type.
	RestrictFirstLabel Restriction = "first-label"
	// RestrictDirectionCollapse maps `<-[]->` to the same direction as `-[]-`.
	RestrictDirectionCollapse Restriction = "direction-collapse"
	// RestrictSingleComparison requires a WHERE to be exactly one comparison.
	RestrictSingleComparison Restriction = "single-comparison"
	// RestrictFirstWith lifts only the first WITH of a multi-part query.
	RestrictFirstWith Restriction = "first-with"
)

var restrictionDescriptions = map[Restriction]string{
	RestrictFirstPattern:      "only the first pattern of a MATCH is kept",
	RestrictFirstLabel:        "only the first label or relationship type is kept",
	RestrictDirectionCollapse: "an edge with both arrowheads is treated as undirected",
	RestrictSingleComparison:  "a WHERE must be a single comparison",
	RestrictFirstWith:         "only the first WITH is kept",
}

// Restrictions lists every restriction.
func Restrictions() []Restriction {
	return []Restriction{
		RestrictFirstPattern,
		RestrictFirstLabel,
		RestrictDirectionCollapse,
		RestrictSingleComparison,
		RestrictFirstWith,
	}
}

// Description returns a human readable explanation of r.
func (r Restriction) Description() string {
	if d, ok := restrictionDescriptions[r]; ok {
		return d
	}

	return string(r)
}
