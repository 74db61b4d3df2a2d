package ioweb

import (
	"context"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/gnames/ipnidb/internal/iostore"
	"github.com/gnames/ipnidb/pkg/parserpool"
	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/gnames/ipnidb/pkg/store"
	"github.com/gnames/ipnidb/pkg/tsv"
	"github.com/labstack/echo/v4"
)

type tableColumn struct {
	table, column string
}

var distinctRoutes = map[string]tableColumn{
	"/name_ranks":          {schema.NameTable, "rank"},
	"/name_statuses":       {schema.NameTable, "status"},
	"/taxon_families":      {schema.TaxonTable, "family"},
	"/name_relation_types": {schema.NameRelationTable, "type"},
	"/type_statuses":       {schema.TypeMaterialTable, "status"},
}

// Match types of find_similar results.
const (
	matchExact     = "exact"
	matchCanonical = "canonical"
	matchFuzzy     = "fuzzy"
)

const (
	// fuzzyMinScore is the lowest similarity of a fuzzy match.
	fuzzyMinScore = 0.3
	// fuzzyTop is the number of fuzzy matches returned.
	fuzzyTop = 3
	// fuzzyCandidates caps the names scored by the fuzzy stage.
	fuzzyCandidates = 1000
)

// SimilarName is a name found by find_similar.
type SimilarName struct {
	ID             string  `json:"id"`
	ScientificName string  `json:"scientific_name"`
	Authorship     *string `json:"authorship"`
	MatchType      string  `json:"match_type"`
	Similarity     float64 `json:"similarity"`
}

func (s *Server) nameMetadata(c echo.Context) error {
	res, err := s.store.NameMetadata(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(res))
}

// enrich fills canonical forms and the name-string id of a name
// created through the API, the same way the importer does.
func (s *Server) enrich(n *schema.Name) {
	parserpool.Enrich(s.parser, n)
}

// findSimilar looks for names equal to the query, then for names with
// the same canonical form, then for the closest names by edit distance.
func (s *Server) findSimilar(c echo.Context) error {
	name := tsv.CleanValue(strings.ReplaceAll(c.QueryParam("name"), "%", ""))
	if name == "" {
		return iostore.ValidationError("Parameter <em>name</em> is required")
	}
	ctx := c.Request().Context()

	res, err := s.matchNames(ctx, "scientific_name", name, matchExact)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		p := s.parser.Parse(name)
		if p.Parsed && p.Canonical != nil {
			res, err = s.matchNames(ctx, "canonical", p.Canonical.Simple, matchCanonical)
			if err != nil {
				return err
			}
		}
	}
	if len(res) == 0 {
		res, err = s.fuzzyNames(ctx, name)
		if err != nil {
			return err
		}
	}
	if len(res) == 0 {
		return iostore.NotFoundError(schema.NameTable, name)
	}
	return c.JSON(http.StatusOK, success(res))
}

func (s *Server) matchNames(
	ctx context.Context,
	col, val, match string,
) ([]SimilarName, error) {
	page, err := s.store.Names().List(ctx, store.Query{
		Limit:   store.MaxLimit,
		Filters: map[string]string{col: val},
	})
	if err != nil {
		return nil, err
	}
	res := make([]SimilarName, len(page.Results))
	for i, v := range page.Results {
		res[i] = similarName(v, match, 1)
	}
	return res, nil
}

// fuzzyNames scores names sharing the first word of the query, or its
// first letter when the word finds nothing, by Levenshtein similarity.
func (s *Server) fuzzyNames(ctx context.Context, name string) ([]SimilarName, error) {
	var cands []schema.Name
	var err error
	for _, pattern := range fuzzyPatterns(name) {
		cands, err = s.candidates(ctx, pattern)
		if err != nil {
			return nil, err
		}
		if len(cands) > 0 {
			break
		}
	}

	var res []SimilarName
	for _, v := range cands {
		score := levenshtein.Similarity(name, v.ScientificName, nil)
		if score <= fuzzyMinScore {
			continue
		}
		score = math.Round(score*100) / 100
		res = append(res, similarName(v, matchFuzzy, score))
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Similarity > res[j].Similarity
	})
	if len(res) > fuzzyTop {
		res = res[:fuzzyTop]
	}
	return res, nil
}

func (s *Server) candidates(ctx context.Context, pattern string) ([]schema.Name, error) {
	var res []schema.Name
	for offset := 0; offset < fuzzyCandidates; offset += store.MaxLimit {
		page, err := s.store.Names().List(ctx, store.Query{
			Offset:  offset,
			Limit:   store.MaxLimit,
			Filters: map[string]string{"scientific_name": pattern},
		})
		if err != nil {
			return nil, err
		}
		res = append(res, page.Results...)
		if len(page.Results) < store.MaxLimit {
			break
		}
	}
	return res, nil
}

func fuzzyPatterns(name string) []string {
	word, _, _ := strings.Cut(name, " ")
	res := []string{word + "%"}
	if r := []rune(word); len(r) > 1 {
		res = append(res, string(r[0])+"%")
	}
	return res
}

func similarName(n schema.Name, match string, score float64) SimilarName {
	return SimilarName{
		ID:             n.ID,
		ScientificName: n.ScientificName,
		Authorship:     n.Authorship,
		MatchType:      match,
		Similarity:     score,
	}
}

func (s *Server) distinct(table, column string) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := s.store.Distinct(c.Request().Context(), table, column)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, success(res))
	}
}
