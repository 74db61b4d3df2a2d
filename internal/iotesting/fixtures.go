package iotesting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Fixture holds contents of the five IPNI files keyed by file name.
type Fixture map[string]string

// NewFixture returns a small consistent IPNI export. It contains two
// names with one reference, a taxon, a type specimen and relations,
// one of which points to a name absent from the export.
func NewFixture() Fixture {
	return Fixture{
		"Reference.tsv": lines(
			"col:ID\tcol:citation\tcol:title\tcol:issued\tcol:link",
			"1-1$v1\tSp. Pl. 1: 1 (1753)\tSpecies  Plantarum \t1753\t",
			"1-1$v1\tSp. Pl. 1: 1 (1753)\tSpecies Plantarum\t1753\t",
		),
		"Name.tsv": lines(
			"col:ID\tcol:rank\tcol:scientificName\tcol:authorship"+
				"\tcol:status\tcol:referenceID\tcol:publishedInYear",
			"1-1\tspec.\tAbies alba\tMill.\t\t1-1$v1\t1768",
			"2-1\tgen.\tAbies\tMill.\tnom. cons.\t1-1$v1\t1754",
		),
		"Taxon.tsv": lines(
			"col:ID\tcol:nameID\tcol:provisional\tcol:status\tcol:family",
			"1-1\t1-1\ttrue\taccepted\tPinaceae",
		),
		"NameRelation.tsv": lines(
			"col:nameID\tcol:relatedNameID\tcol:type",
			"1-1\t2-1\tbasionym",
			"1-1\t777-1\tlater homonym",
		),
		"TypeMaterial.tsv": lines(
			"col:ID\tcol:nameID\tcol:citation\tcol:status"+
				"\tcol:institutionCode\tcol:latitude",
			"t1\t1-1\tK000001\tholotype\tK\t51.47",
			"t2\t1-1\tBM000002\tsyntype\tBM\t",
		),
	}
}

// Write saves the fixture files into a new temporary directory.
func (f Fixture) Write(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range f {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return dir
}

func lines(ss ...string) string {
	return strings.Join(ss, "\n") + "\n"
}
