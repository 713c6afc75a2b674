package gqlgrammar

import (
	"slices"
	"strings"
)

// ReservedWords are the ISO/IEC 39075 reserved words. They cannot be used as
// regular identifiers and must be back-quoted to name a label, property or
// variable.
var ReservedWords = []string{
	"ABS", "ACOS", "ALL", "ALL_DIFFERENT", "AND", "ANY", "ARRAY", "AS", "ASC",
	"ASCENDING", "ASIN", "AT", "ATAN", "AVG", "BIG", "BIGINT", "BINARY", "BOOL",
	"BOOLEAN", "BOTH", "BTRIM", "BY", "BYTE_LENGTH", "BYTES", "CALL", "CARDINALITY",
	"CASE", "CAST", "CEIL", "CEILING", "CHAR", "CHAR_LENGTH", "CHARACTER_LENGTH",
	"CHARACTERISTICS", "CLOSE", "COALESCE", "COLLECT_LIST", "COMMIT", "COPY", "COS",
	"COSH", "COT", "COUNT", "CREATE", "CURRENT_DATE", "CURRENT_GRAPH",
	"CURRENT_PROPERTY_GRAPH", "CURRENT_SCHEMA", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"DATE", "DATETIME", "DAY", "DEC", "DECIMAL", "DEGREES", "DELETE", "DESC",
	"DESCENDING", "DETACH", "DISTINCT", "DOUBLE", "DROP", "DURATION",
	"DURATION_BETWEEN", "ELEMENT_ID", "ELSE", "END", "EXCEPT", "EXISTS", "EXP",
	"FALSE", "FILTER", "FINISH", "FLOAT", "FLOAT16", "FLOAT32", "FLOAT64",
	"FLOAT128", "FLOAT256", "FLOOR", "FOR", "FROM", "GROUP", "HAVING", "HOME_GRAPH",
	"HOME_PROPERTY_GRAPH", "HOME_SCHEMA", "HOUR", "IF", "IMPLIES", "IN", "INSERT",
	"INT", "INTEGER", "INT8", "INTEGER8", "INT16", "INTEGER16", "INT32", "INTEGER32",
	"INT64", "INTEGER64", "INT128", "INTEGER128", "INT256", "INTEGER256",
	"INTERSECT", "INTERVAL", "IS", "LEADING", "LEFT", "LET", "LIKE", "LIMIT", "LIST",
	"LN", "LOCAL", "LOCAL_DATETIME", "LOCAL_TIME", "LOCAL_TIMESTAMP", "LOG", "LOG10",
	"LOWER", "LTRIM", "MATCH", "MAX", "MIN", "MINUTE", "MOD", "MONTH", "NEXT",
	"NODETACH", "NORMALIZE", "NOT", "NOTHING", "NULL", "NULLS", "NULLIF",
	"OCTET_LENGTH", "OF", "OFFSET", "OPTIONAL", "OR", "ORDER", "OTHERWISE",
	"PARAMETER", "PARAMETERS", "PATH", "PATH_LENGTH", "PATHS", "PERCENTILE_CONT",
	"PERCENTILE_DISC", "POWER", "PRECISION", "PROPERTY_EXISTS", "RADIANS", "REAL",
	"RECORD", "REMOVE", "REPLACE", "RESET", "RETURN", "RIGHT", "ROLLBACK", "RTRIM",
	"SAME", "SCHEMA", "SECOND", "SELECT", "SESSION", "SESSION_USER", "SET", "SIGNED",
	"SIN", "SINH", "SIZE", "SKIP", "SMALL", "SMALLINT", "SQRT", "START", "STDDEV_POP",
	"STDDEV_SAMP", "STRING", "SUM", "TAN", "TANH", "THEN", "TIME", "TIMESTAMP",
	"TRAILING", "TRIM", "TRUE", "TYPED", "UBIGINT", "UINT", "UINT8", "UINT16",
	"UINT32", "UINT64", "UINT128", "UINT256", "UNION", "UNKNOWN", "UNSIGNED", "UPPER",
	"USE", "USMALLINT", "VALUE", "VARBINARY", "VARCHAR", "VARIABLE", "WHEN", "WHERE",
	"WITH", "XOR", "YEAR", "YIELD", "ZONED", "ZONED_DATETIME", "ZONED_TIME",
}

// PreReservedWords are reserved for future editions of the standard and are
// treated exactly like reserved words.
var PreReservedWords = []string{
	"ABSTRACT", "AGGREGATE", "AGGREGATES", "ALTER", "CATALOG", "CLEAR", "CLONE",
	"CONSTRAINT", "CURRENT_ROLE", "CURRENT_USER", "DATA", "DIRECTORY", "DRYRUN",
	"EXACT", "EXISTING", "FUNCTION", "GQLSTATUS", "GRANT", "INSTANT", "INFINITY",
	"NUMBER", "NUMERIC", "ON", "OPEN", "PARTITION", "PROCEDURE", "PRODUCT", "PROJECT",
	"QUERY", "RECORDS", "REFERENCE", "RENAME", "REVOKE", "SUBSTRING", "SYSTEM_USER",
	"TEMPORAL", "UNIQUE", "UNIT", "VALUES", "WHITESPACE",
}

// Functions are the reserved words that name a built-in function and may be
// followed by an argument list.
var Functions = []string{
	"ABS", "ACOS", "ASIN", "ATAN", "AVG", "BTRIM", "BYTE_LENGTH", "CARDINALITY",
	"CEIL", "CEILING", "CHAR_LENGTH", "CHARACTER_LENGTH", "COALESCE", "COLLECT_LIST",
	"COS", "COSH", "COT", "COUNT", "DEGREES", "DURATION_BETWEEN", "ELEMENT_ID", "EXP",
	"FLOOR", "LN", "LOG", "LOG10", "LOWER", "LTRIM", "MAX", "MIN", "MOD", "NORMALIZE",
	"NULLIF", "OCTET_LENGTH", "PATH_LENGTH", "PERCENTILE_CONT", "PERCENTILE_DISC",
	"POWER", "RADIANS", "RTRIM", "SIN", "SINH", "SIZE", "SQRT", "STDDEV_POP",
	"STDDEV_SAMP", "SUM", "TAN", "TANH", "TRIM", "UPPER",
	"DATE", "TIME", "DATETIME", "DURATION", "LOCAL_TIME", "LOCAL_DATETIME",
	"ZONED_TIME", "ZONED_DATETIME", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
}

var (
	reservedSet = upperSet(ReservedWords, PreReservedWords)
	functionSet = upperSet(Functions)
)

func upperSet(lists ...[]string) map[string]bool {
	set := make(map[string]bool)

	for _, list := range lists {
		for _, w := range list {
			set[strings.ToUpper(w)] = true
		}
	}

	return set
}

// IsReserved reports whether word, in any case, is a reserved or
// pre-reserved word.
func IsReserved(word string) bool {
	return reservedSet[strings.ToUpper(word)]
}

// IsFunction reports whether name, in any case, is a built-in function.
func IsFunction(name string) bool {
	return functionSet[strings.ToUpper(name)]
}

// Keywords returns every reserved and pre-reserved word, longest first.
func Keywords() []string {
	words := make([]string, 0, len(reservedSet))
	for w := range reservedSet {
		words = append(words, w)
	}

	slices.SortFunc(words, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}

		return strings.Compare(a, b)
	})

	return words
}
