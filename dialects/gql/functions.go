package gql

import (
	"strings"

	gqlgrammar "github.com/rlch/graphil/dialects/gql/grammar"
)

// functionNames maps lower-cased openCypher function names to the GQL
// built-in with the same meaning. Functions GQL spells the same way
// (count, sum, abs, ...) are only upper-cased.
var functionNames = map[string]string{
	"tolower":        "LOWER",
	"toupper":        "UPPER",
	"collect":        "COLLECT_LIST",
	"id":             "ELEMENT_ID",
	"elementid":      "ELEMENT_ID",
	"size":           "CARDINALITY",
	"length":         "PATH_LENGTH",
	"stdev":          "STDDEV_SAMP",
	"stdevp":         "STDDEV_POP",
	"percentilecont": "PERCENTILE_CONT",
	"percentiledisc": "PERCENTILE_DISC",
	"log":            "LN",
	"datetime":       "ZONED_DATETIME",
	"localdatetime":  "LOCAL_DATETIME",
	"time":           "ZONED_TIME",
	"localtime":      "LOCAL_TIME",
}

// Function returns the GQL spelling of a Cypher function name. Names with no
// GQL built-in come back unchanged, which the GQL grammar then rejects.
func Function(name string) string {
	if mapped, ok := functionNames[strings.ToLower(name)]; ok {
		return mapped
	}

	if gqlgrammar.IsFunction(name) {
		return strings.ToUpper(name)
	}

	return name
}
