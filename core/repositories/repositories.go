// Package repositories holds what the entity repositories have in common.
package repositories

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by stores and repositories when no record
	// matches the requested identifier.
	ErrNotFound = errors.New("record not found")
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching term anywhere in a column.
// Wildcards in term match literally when the query uses ESCAPE '\'.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
