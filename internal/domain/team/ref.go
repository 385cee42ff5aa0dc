// Package team identifies a club by numeric StatsAPI id or by name.
package team

import (
	"strconv"
	"strings"
)

// Ref is a team reference as a caller supplies it: a numeric id, a name,
// or both once resolved.
type Ref struct {
	ID   int64
	Name string
}

// ParseRef reads a CLI-style team argument. All-digit input is an id,
// anything else is a name. Empty input is not a valid reference.
func ParseRef(s string) (Ref, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, false
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Ref{ID: id}, true
	}
	return Ref{Name: s}, true
}

// Matches reports whether the reference identifies the given team. Ids
// win over names; name comparison is case-insensitive and exact.
func (r Ref) Matches(id int64, name string) bool {
	if r.ID != 0 {
		return r.ID == id
	}
	if r.Name == "" {
		return false
	}
	return strings.EqualFold(r.Name, name)
}

func (r Ref) String() string {
	if r.Name != "" {
		return r.Name
	}
	return strconv.FormatInt(r.ID, 10)
}
