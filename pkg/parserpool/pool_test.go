package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/ipnidb/pkg/parserpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	for _, jobs := range []int{0, 1, 4} {
		pool := parserpool.NewPool(jobs, nomcode.Botanical)
		require.NotNil(t, pool)
		assert.Equal(t, nomcode.Botanical, pool.Code())

		res := pool.Parse("Plantago major L.")
		assert.True(t, res.Parsed)
		pool.Close()
	}
}

func TestParse(t *testing.T) {
	pool := parserpool.NewPool(2, nomcode.Botanical)
	defer pool.Close()

	tests := []struct {
		msg, name, canonical string
		card                 int
	}{
		{"binomial", "Plantago major L.", "Plantago major", 2},
		{"trinomial", "Rosa acicularis var. acicularis", "Rosa acicularis acicularis", 3},
		{"uninomial", "Abies Mill.", "Abies", 1},
	}

	for _, v := range tests {
		res := pool.Parse(v.name)
		require.True(t, res.Parsed, v.msg)
		require.NotNil(t, res.Canonical, v.msg)
		assert.Equal(t, v.canonical, res.Canonical.Simple, v.msg)
		assert.Equal(t, v.card, res.Cardinality, v.msg)
	}

	res := pool.Parse("12345 67890")
	assert.False(t, res.Parsed)
}

func TestParseConcurrent(t *testing.T) {
	pool := parserpool.NewPool(4, nomcode.Botanical)
	defer pool.Close()

	var wg sync.WaitGroup
	results := make([]bool, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = pool.Parse("Abies alba Mill.").Parsed
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		assert.True(t, v)
	}
}
