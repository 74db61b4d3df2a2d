package ioimport

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/gnames/ipnidb/pkg/tsv"
)

// Source file names inside the IPNI export.
const (
	referenceFile    = "Reference.tsv"
	nameFile         = "Name.tsv"
	taxonFile        = "Taxon.tsv"
	nameRelationFile = "NameRelation.tsv"
	typeMaterialFile = "TypeMaterial.tsv"
)

// dataset is the content of an export converted to models.
type dataset struct {
	references    []schema.Reference
	names         []schema.Name
	taxa          []schema.Taxon
	relations     []schema.NameRelation
	typeMaterials []schema.TypeMaterial

	skippedRelations     int
	unknownRelationTypes int
	unknownTypeStatuses  int
}

// readTable reads and cleans one TSV file and checks required columns.
func readTable(dir, file string, required ...string) (*tsv.Table, error) {
	path := filepath.Join(dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, FileNotFoundError(path, err)
	}
	defer f.Close()

	tbl, err := tsv.Read(f)
	if err != nil {
		return nil, err
	}
	tbl.Clean()
	if miss := tbl.MissingColumns(required...); len(miss) > 0 {
		return nil, MissingColumnsError(file, miss)
	}
	slog.Info("Read IPNI file", "file", file, "rows", len(tbl.Rows))
	return tbl, nil
}

// loadDataset reads all five files from dir. Files are read before
// anything touches the database, so malformed input never starts a
// transaction.
func loadDataset(dir string) (*dataset, error) {
	var ds dataset
	var err error

	if ds.references, err = loadReferences(dir); err != nil {
		return nil, err
	}
	if ds.names, err = loadNames(dir); err != nil {
		return nil, err
	}
	if ds.taxa, err = loadTaxa(dir); err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(ds.names))
	for i := range ds.names {
		ids[ds.names[i].ID] = struct{}{}
	}
	if err = loadRelations(dir, ids, &ds); err != nil {
		return nil, err
	}
	if err = loadTypeMaterials(dir, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func loadReferences(dir string) ([]schema.Reference, error) {
	tbl, err := readTable(dir, referenceFile, "id")
	if err != nil {
		return nil, err
	}
	res := make([]schema.Reference, 0, len(tbl.Rows))
	for i, r := range tbl.Records() {
		if r.Get("id") == "" {
			return nil, EmptyValueError(referenceFile, i+1, "id")
		}
		res = append(res, schema.Reference{
			ID:            r.Get("id"),
			DOI:           opt(r, "doi"),
			AlternativeID: opt(r, "alternative_id"),
			Citation:      opt(r, "citation"),
			Title:         opt(r, "title"),
			Author:        opt(r, "author"),
			Issued:        opt(r, "issued"),
			Volume:        opt(r, "volume"),
			Issue:         opt(r, "issue"),
			Page:          opt(r, "page"),
			ISSN:          opt(r, "issn"),
			ISBN:          opt(r, "isbn"),
			Link:          opt(r, "link"),
			Remarks:       opt(r, "remarks"),
		})
	}
	return res, nil
}

func loadNames(dir string) ([]schema.Name, error) {
	tbl, err := readTable(dir, nameFile, "id", "scientific_name")
	if err != nil {
		return nil, err
	}
	res := make([]schema.Name, 0, len(tbl.Rows))
	for i, r := range tbl.Records() {
		if r.Get("id") == "" {
			return nil, EmptyValueError(nameFile, i+1, "id")
		}
		res = append(res, schema.Name{
			ID:              r.Get("id"),
			Rank:            opt(r, "rank"),
			ScientificName:  r.Get("scientific_name"),
			Authorship:      opt(r, "authorship"),
			Status:          opt(r, "status"),
			ReferenceID:     opt(r, "reference_id"),
			PublishedInYear: opt(r, "published_in_year"),
			PublishedInPage: opt(r, "published_in_page"),
			Link:            opt(r, "link"),
			Remarks:         opt(r, "remarks"),
		})
	}
	return res, nil
}

func loadTaxa(dir string) ([]schema.Taxon, error) {
	tbl, err := readTable(dir, taxonFile, "id", "name_id")
	if err != nil {
		return nil, err
	}
	res := make([]schema.Taxon, 0, len(tbl.Rows))
	for i, r := range tbl.Records() {
		for _, col := range []string{"id", "name_id"} {
			if r.Get(col) == "" {
				return nil, EmptyValueError(taxonFile, i+1, col)
			}
		}
		res = append(res, schema.Taxon{
			ID:          r.Get("id"),
			NameID:      r.Get("name_id"),
			Provisional: parseBool(r.Get("provisional")),
			Status:      opt(r, "status"),
			Family:      opt(r, "family"),
			Link:        opt(r, "link"),
		})
	}
	return res, nil
}

// loadRelations skips relations that point to names absent from the
// export, those rows cannot satisfy the foreign keys.
func loadRelations(dir string, names map[string]struct{}, ds *dataset) error {
	tbl, err := readTable(dir, nameRelationFile, "name_id", "related_name_id")
	if err != nil {
		return err
	}
	unknown := make(map[string]int)
	ds.relations = make([]schema.NameRelation, 0, len(tbl.Rows))
	for _, r := range tbl.Records() {
		nameID, relID := r.Get("name_id"), r.Get("related_name_id")
		_, ok1 := names[nameID]
		_, ok2 := names[relID]
		if !ok1 || !ok2 {
			ds.skippedRelations++
			continue
		}
		rt := schema.RelationType(r.Get("type"))
		if rt != "" && rt.Kind() == schema.RelationOther {
			unknown[string(rt)]++
			ds.unknownRelationTypes++
		}
		ds.relations = append(ds.relations, schema.NameRelation{
			NameID:        nameID,
			RelatedNameID: relID,
			Type:          rt,
			Remarks:       opt(r, "remarks"),
		})
	}
	if ds.skippedRelations > 0 {
		slog.Warn("Skipped relations to names outside of the export",
			"count", ds.skippedRelations)
	}
	for k, v := range unknown {
		slog.Warn("Unknown relation type", "type", k, "count", v)
	}
	return nil
}

func loadTypeMaterials(dir string, ds *dataset) error {
	tbl, err := readTable(dir, typeMaterialFile, "name_id")
	if err != nil {
		return err
	}
	// source ids are not kept, rows that differ only by id collapse
	tbl.Drop("id").Clean()

	unknown := make(map[string]int)
	ds.typeMaterials = make([]schema.TypeMaterial, 0, len(tbl.Rows))
	for i, r := range tbl.Records() {
		if r.Get("name_id") == "" {
			return EmptyValueError(typeMaterialFile, i+1, "name_id")
		}
		var status *schema.TypeStatus
		if v := r.Get("status"); v != "" {
			ts := schema.TypeStatus(v)
			status = &ts
			if ts.Kind() == schema.TypeStatusOther {
				unknown[v]++
				ds.unknownTypeStatuses++
			}
		}
		ds.typeMaterials = append(ds.typeMaterials, schema.TypeMaterial{
			NameID:          r.Get("name_id"),
			Citation:        opt(r, "citation"),
			Status:          status,
			InstitutionCode: opt(r, "institution_code"),
			CatalogNumber:   opt(r, "catalog_number"),
			Collector:       opt(r, "collector"),
			Date:            opt(r, "date"),
			Locality:        opt(r, "locality"),
			Latitude:        opt(r, "latitude"),
			Longitude:       opt(r, "longitude"),
			Remarks:         opt(r, "remarks"),
		})
	}
	for k, v := range unknown {
		slog.Warn("Unknown type status", "status", k, "count", v)
	}
	return nil
}

// opt returns nil for empty cells.
func opt(r tsv.Record, col string) *string {
	v := r.Get(col)
	if v == "" {
		return nil
	}
	return &v
}

func parseBool(s string) bool {
	res, _ := strconv.ParseBool(s)
	return res
}
