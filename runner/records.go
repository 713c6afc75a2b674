package runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cyphergrammar "github.com/rlch/graphil/dialects/cypher/grammar"
)

// ErrUnknownInput is returned for query files that are neither JSON nor Cypher.
var ErrUnknownInput = errors.New("runner: unknown input format")

// WriteRecords writes records as an indented JSON array.
func WriteRecords(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	return enc.Encode(records)
}

// WriteRecordsFile writes records to path.
func WriteRecordsFile(path string, records []Record) error {
	var buf bytes.Buffer

	if err := WriteRecords(&buf, records); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// LoadQueries reads the queries of a batch from path. A .json file holds an
// array of query strings or of records with a "cypher" field; any other
// file is a Cypher script split on semicolons.
func LoadQueries(path string) ([]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseQueriesJSON(data)
	case ".cypher", ".cql", ".txt", "":
		return ParseQueriesScript(string(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownInput, path)
	}
}

// ParseQueriesJSON decodes a JSON array of strings or of records.
func ParseQueriesJSON(data []byte) ([]string, error) {
	var raw []json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownInput, err)
	}

	queries := make([]string, 0, len(raw))

	for i, item := range raw {
		var query string
		if err := json.Unmarshal(item, &query); err == nil {
			queries = append(queries, query)

			continue
		}

		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrUnknownInput, i, err)
		}

		queries = append(queries, rec.Cypher)
	}

	return queries, nil
}

// ParseQueriesScript splits a Cypher script into statements. A script the
// Cypher lexer cannot tokenize is split line by line.
func ParseQueriesScript(script string) ([]string, error) {
	stmts, err := cyphergrammar.SplitStatements(script)
	if err != nil {
		var queries []string

		for line := range strings.SplitSeq(script, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				queries = append(queries, line)
			}
		}

		return queries, nil
	}

	queries := make([]string, len(stmts))
	for i, s := range stmts {
		queries[i] = s.Text
	}

	return queries, nil
}
