// Package schema provides database models for the IPNI tables.
// Every descriptive field keeps the text of the source export; empty
// source cells are stored as NULL.
package schema

// Table names. All IPNI tables share the ipni_ prefix.
const (
	ReferenceTable    = "ipni_reference"
	NameTable         = "ipni_name"
	TaxonTable        = "ipni_taxon"
	NameRelationTable = "ipni_name_relation"
	TypeMaterialTable = "ipni_type_material"
)

// Reference is a publication where names were published.
type Reference struct {
	// ID is the IPNI identifier of the publication (e.g. "1-1$v1").
	ID string `gorm:"type:varchar(255);primaryKey" json:"id"`

	// DOI is the Digital Object Identifier of the publication.
	DOI *string `gorm:"column:doi;type:varchar(255)" json:"doi"`

	// AlternativeID keeps other identifiers of the publication.
	AlternativeID *string `gorm:"type:text" json:"alternative_id"`

	// Citation is the full bibliographic citation.
	Citation *string `gorm:"type:text" json:"citation"`

	Title  *string `gorm:"type:text" json:"title"`
	Author *string `gorm:"type:text" json:"author"`

	// Issued is the publication date as given by the source.
	Issued *string `gorm:"type:varchar(255)" json:"issued"`
	Volume *string `gorm:"type:varchar(255)" json:"volume"`
	Issue  *string `gorm:"type:varchar(255)" json:"issue"`
	Page   *string `gorm:"type:varchar(255)" json:"page"`
	ISSN   *string `gorm:"column:issn;type:varchar(255)" json:"issn"`
	ISBN   *string `gorm:"column:isbn;type:varchar(255)" json:"isbn"`

	Link    *string `gorm:"type:text" json:"link"`
	Remarks *string `gorm:"type:text" json:"remarks"`
}

// Name is a plant scientific name registered in IPNI.
type Name struct {
	// ID is the IPNI identifier of the name (e.g. "1000000-1").
	ID string `gorm:"type:varchar(255);primaryKey" json:"id"`

	// Rank is the rank as written by IPNI (spec., gen., var. etc).
	Rank *string `gorm:"type:varchar(255);index" json:"rank"`

	// ScientificName is the name without authorship.
	ScientificName string `gorm:"type:varchar(255);not null;index" json:"scientific_name"`

	Authorship *string `gorm:"type:varchar(255)" json:"authorship"`

	// Status is the nomenclatural status (e.g. "nom. illeg.").
	Status *string `gorm:"type:varchar(255);index" json:"status"`

	// ReferenceID links the name to the publication where it appeared.
	ReferenceID *string `gorm:"type:varchar(255);index" json:"reference_id"`

	PublishedInYear *string `gorm:"type:varchar(255)" json:"published_in_year"`
	PublishedInPage *string `gorm:"type:varchar(255)" json:"published_in_page"`

	Link    *string `gorm:"type:text" json:"link"`
	Remarks *string `gorm:"type:text" json:"remarks"`

	// Canonical is the simple canonical form produced by gnparser.
	Canonical *string `gorm:"type:varchar(255);index" json:"canonical"`

	// CanonicalFull keeps infraspecific rank markers and hybrid signs.
	CanonicalFull *string `gorm:"type:varchar(255)" json:"canonical_full"`

	// NameStringID is UUID v5 of scientific name with authorship.
	NameStringID *string `gorm:"type:varchar(36)" json:"name_string_id"`

	// Cardinality: 0-unknown, 1-uninomial, 2-binomial, 3-trinomial.
	Cardinality int `gorm:"not null;default:0" json:"cardinality"`

	// ParseQuality: 0-no parse, 1-clear, 2-some problems, 3-big problems.
	ParseQuality int `gorm:"not null;default:0" json:"parse_quality"`

	Reference     *Reference     `gorm:"foreignKey:ReferenceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Taxa          []Taxon        `gorm:"foreignKey:NameID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TypeMaterials []TypeMaterial `gorm:"foreignKey:NameID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Relations     []NameRelation `gorm:"foreignKey:NameID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// Taxon is a taxonomic placement of a name.
type Taxon struct {
	ID string `gorm:"type:varchar(255);primaryKey" json:"id"`

	NameID string `gorm:"type:varchar(255);not null;index" json:"name_id"`

	// Provisional is true for placements IPNI does not consider settled.
	Provisional bool `gorm:"not null;default:false" json:"provisional"`

	Status *string `gorm:"type:varchar(255)" json:"status"`
	Family *string `gorm:"type:varchar(255);index" json:"family"`
	Link   *string `gorm:"type:text" json:"link"`
}

// NameRelation is a nomenclatural link between two names.
type NameRelation struct {
	ID int `gorm:"primaryKey;autoIncrement" json:"id"`

	NameID        string `gorm:"type:varchar(255);not null;index" json:"name_id"`
	RelatedNameID string `gorm:"type:varchar(255);not null;index" json:"related_name_id"`

	// Type is kept as given by the source, see RelationType.Kind.
	Type RelationType `gorm:"type:varchar(255);index" json:"type"`

	Remarks *string `gorm:"type:text" json:"remarks"`

	RelatedName *Name `gorm:"foreignKey:RelatedNameID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TypeMaterial is a specimen that anchors a name.
// The source identifier is discarded, rows get an autoincrement ID.
type TypeMaterial struct {
	ID int `gorm:"primaryKey;autoIncrement" json:"id"`

	NameID string `gorm:"type:varchar(255);not null;index" json:"name_id"`

	Citation *string `gorm:"type:text" json:"citation"`

	// Status is the type status, see TypeStatus.Kind.
	Status *TypeStatus `gorm:"type:varchar(255);index" json:"status"`

	InstitutionCode *string `gorm:"type:varchar(255)" json:"institution_code"`
	CatalogNumber   *string `gorm:"type:varchar(255)" json:"catalog_number"`
	Collector       *string `gorm:"type:text" json:"collector"`

	// Date, Latitude and Longitude pass through as text.
	Date      *string `gorm:"type:varchar(255)" json:"date"`
	Locality  *string `gorm:"type:text" json:"locality"`
	Latitude  *string `gorm:"type:varchar(255)" json:"latitude"`
	Longitude *string `gorm:"type:varchar(255)" json:"longitude"`

	Remarks *string `gorm:"type:text" json:"remarks"`
}

func (Reference) TableName() string    { return ReferenceTable }
func (Name) TableName() string         { return NameTable }
func (Taxon) TableName() string        { return TaxonTable }
func (NameRelation) TableName() string { return NameRelationTable }
func (TypeMaterial) TableName() string { return TypeMaterialTable }
