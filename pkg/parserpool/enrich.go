package parserpool

import (
	"github.com/gnames/gnuuid"
	"github.com/gnames/ipnidb/pkg/schema"
)

// Enrich sets the name-string UUID, canonical forms, cardinality and
// parse quality of a name. The UUID covers the name with authorship,
// parsed fields stay empty when the name cannot be parsed.
func Enrich(p Pool, n *schema.Name) {
	full := n.ScientificName
	if n.Authorship != nil && *n.Authorship != "" {
		full += " " + *n.Authorship
	}
	id := gnuuid.New(full).String()
	n.NameStringID = &id

	n.Canonical, n.CanonicalFull = nil, nil
	n.Cardinality, n.ParseQuality = 0, 0

	res := p.Parse(full)
	if !res.Parsed || res.Canonical == nil {
		return
	}
	simple, canFull := res.Canonical.Simple, res.Canonical.Full
	n.Canonical = &simple
	n.CanonicalFull = &canFull
	n.Cardinality = res.Cardinality
	n.ParseQuality = res.ParseQuality
}
