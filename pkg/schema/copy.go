package schema

// Copier describes how a model is streamed into postgres with COPY.
type Copier interface {
	// TableName returns the table the rows go to.
	TableName() string

	// CopyColumns returns column names in the order of CopyValues.
	CopyColumns() []string

	// CopyValues returns the row. Nil pointers become NULL.
	CopyValues() []any
}

func (Reference) CopyColumns() []string {
	return []string{
		"id", "doi", "alternative_id", "citation", "title", "author",
		"issued", "volume", "issue", "page", "issn", "isbn", "link",
		"remarks",
	}
}

func (r Reference) CopyValues() []any {
	return []any{
		r.ID, r.DOI, r.AlternativeID, r.Citation, r.Title, r.Author,
		r.Issued, r.Volume, r.Issue, r.Page, r.ISSN, r.ISBN, r.Link,
		r.Remarks,
	}
}

func (Name) CopyColumns() []string {
	return []string{
		"id", "rank", "scientific_name", "authorship", "status",
		"reference_id", "published_in_year", "published_in_page", "link",
		"remarks", "canonical", "canonical_full", "name_string_id",
		"cardinality", "parse_quality",
	}
}

func (n Name) CopyValues() []any {
	return []any{
		n.ID, n.Rank, n.ScientificName, n.Authorship, n.Status,
		n.ReferenceID, n.PublishedInYear, n.PublishedInPage, n.Link,
		n.Remarks, n.Canonical, n.CanonicalFull, n.NameStringID,
		n.Cardinality, n.ParseQuality,
	}
}

func (Taxon) CopyColumns() []string {
	return []string{"id", "name_id", "provisional", "status", "family", "link"}
}

func (t Taxon) CopyValues() []any {
	return []any{t.ID, t.NameID, t.Provisional, t.Status, t.Family, t.Link}
}

// CopyColumns omits id, it is generated by the database.
func (NameRelation) CopyColumns() []string {
	return []string{"name_id", "related_name_id", "type", "remarks"}
}

func (r NameRelation) CopyValues() []any {
	return []any{r.NameID, r.RelatedNameID, string(r.Type), r.Remarks}
}

// CopyColumns omits id, it is generated by the database.
func (TypeMaterial) CopyColumns() []string {
	return []string{
		"name_id", "citation", "status", "institution_code",
		"catalog_number", "collector", "date", "locality", "latitude",
		"longitude", "remarks",
	}
}

func (t TypeMaterial) CopyValues() []any {
	var status *string
	if t.Status != nil {
		s := string(*t.Status)
		status = &s
	}
	return []any{
		t.NameID, t.Citation, status, t.InstitutionCode,
		t.CatalogNumber, t.Collector, t.Date, t.Locality, t.Latitude,
		t.Longitude, t.Remarks,
	}
}
