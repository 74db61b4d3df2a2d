package schema

import (
	"strings"
)

// RelationKind is the closed set of relations between two names.
type RelationKind int

const (
	// RelationOther is any relation type not recognized by ipnidb.
	RelationOther RelationKind = iota
	Basionym
	Homotypic
	Conserved
	LaterHomonym
	SpellingCorrection
	OrthographicVariant
	Superfluous
	Isonym
	ValidationOf
)

var relationKinds = []string{
	"other",
	"basionym",
	"homotypic",
	"conserved",
	"later-homonym",
	"spelling-correction",
	"orthographic-variant",
	"superfluous",
	"isonym",
	"validation-of",
}

// String returns the normalized name of the relation kind.
func (k RelationKind) String() string {
	if k < 0 || int(k) >= len(relationKinds) {
		return relationKinds[0]
	}
	return relationKinds[k]
}

// RelationType is the relation type as it appears in the source.
type RelationType string

// Kind maps the raw type to a RelationKind, unknown values give
// RelationOther.
func (t RelationType) Kind() RelationKind {
	return RelationKind(kindIndex(relationKinds, string(t)))
}

// TypeStatusKind is the closed set of type statuses.
type TypeStatusKind int

const (
	// TypeStatusOther is any status not recognized by ipnidb.
	TypeStatusOther TypeStatusKind = iota
	Holotype
	Isotype
	Lectotype
	Isolectotype
	Neotype
	Isoneotype
	Epitype
	Isoepitype
	Spirit
	TypeStatusUnknown
	TypeStatusNull
)

var typeStatusKinds = []string{
	"other",
	"holotype",
	"isotype",
	"lectotype",
	"isolectotype",
	"neotype",
	"isoneotype",
	"epitype",
	"isoepitype",
	"spirit",
	"unknown",
	"null",
}

func (k TypeStatusKind) String() string {
	if k < 0 || int(k) >= len(typeStatusKinds) {
		return typeStatusKinds[0]
	}
	return typeStatusKinds[k]
}

// TypeStatus is the status of a type specimen as given by the source.
type TypeStatus string

// Kind maps the raw status to a TypeStatusKind, unknown values give
// TypeStatusOther.
func (s TypeStatus) Kind() TypeStatusKind {
	return TypeStatusKind(kindIndex(typeStatusKinds, string(s)))
}

// kindIndex normalizes s ("Later Homonym", "later_homonym") and finds it
// in names. Index 0 is returned for unknown values.
func kindIndex(names []string, s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return i
		}
	}
	return 0
}
