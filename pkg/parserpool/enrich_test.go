package parserpool_test

import (
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/ipnidb/pkg/parserpool"
	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich(t *testing.T) {
	pool := parserpool.NewPool(1, nomcode.Botanical)
	defer pool.Close()

	auth := "L."
	tests := []struct {
		msg       string
		name      schema.Name
		canonical string
		card      int
	}{
		{"binomial", schema.Name{ScientificName: "Pinus sylvestris", Authorship: &auth},
			"Pinus sylvestris", 2},
		{"trinomial", schema.Name{ScientificName: "Abies alba var. acutifolia"},
			"Abies alba acutifolia", 3},
		{"unparsed", schema.Name{ScientificName: "12345 67890"}, "", 0},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			n := v.name
			stale := "stale"
			n.Canonical = &stale
			parserpool.Enrich(pool, &n)
			require.NotNil(t, n.NameStringID)
			assert.Equal(t, v.card, n.Cardinality)
			if v.canonical == "" {
				assert.Nil(t, n.Canonical)
				assert.Zero(t, n.ParseQuality)
				return
			}
			require.NotNil(t, n.Canonical)
			assert.Equal(t, v.canonical, *n.Canonical)
		})
	}

	// authorship is a part of the name-string identity
	a := schema.Name{ScientificName: "Pinus sylvestris", Authorship: &auth}
	b := schema.Name{ScientificName: "Pinus sylvestris"}
	parserpool.Enrich(pool, &a)
	parserpool.Enrich(pool, &b)
	assert.NotEqual(t, *a.NameStringID, *b.NameStringID)
}
