// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultNamespace replaces an empty namespace and qualifies bare ids.
	DefaultNamespace = "mystructure"

	// StructureExt is the file extension of materialized structures.
	StructureExt = ".mcstructure"

	// StructuresDir is the directory under the output root holding structure files.
	StructuresDir = "structures"

	// SelectAll is the criterion that selects every scanned record.
	SelectAll = "all"
)

// Record is one structure record read from the world store. Payload is the
// raw value bytes: uncompressed little-endian NBT, never re-encoded.
type Record struct {
	ID      string `json:"id" yaml:"id"`
	Payload []byte `json:"-" yaml:"-"`
}

// RecordSet is an ordered collection of records keyed by id. Iteration
// order is the order in which ids were first added.
type RecordSet struct {
	records []Record
	index   map[string]int
}

// Set stores rec. A repeated id keeps its original position and takes the
// new payload.
func (s *RecordSet) Set(rec Record) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[rec.ID]; ok {
		s.records[i] = rec
		return
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
}

// Get returns the record for id.
func (s *RecordSet) Get(id string) (Record, bool) {
	i, ok := s.index[id]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// Len returns the number of records.
func (s *RecordSet) Len() int { return len(s.records) }

// Records returns the records in first-observed order.
func (s *RecordSet) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// IDs returns the record ids in first-observed order.
func (s *RecordSet) IDs() []string {
	ids := make([]string, len(s.records))
	for i, r := range s.records {
		ids[i] = r.ID
	}
	return ids
}

// StructureID is the parsed form of a record id such as "foo.bar:baz".
type StructureID struct {
	Namespace    string   `json:"namespace" yaml:"namespace"`
	PathSegments []string `json:"path_segments,omitempty" yaml:"path_segments,omitempty"`
	Name         string   `json:"name" yaml:"name"`
}

// Folder returns the path segments joined with "/", or "" when there are none.
func (id StructureID) Folder() string {
	return strings.Join(id.PathSegments, "/")
}

// FileName returns the structure file name, e.g. "house.mcstructure".
func (id StructureID) FileName() string {
	return id.Name + StructureExt
}

// Dir returns the output directory relative to the output root.
func (id StructureID) Dir() string {
	parts := append([]string{StructuresDir, id.Namespace}, id.PathSegments...)
	return filepath.Join(parts...)
}

// RelPath returns the structure file path relative to the output root.
func (id StructureID) RelPath() string {
	return filepath.Join(id.Dir(), id.FileName())
}

// DisplayID returns the id used to load the structure in game.
func (id StructureID) DisplayID() string {
	if folder := id.Folder(); folder != "" {
		return id.Namespace + ":" + folder + "/" + id.Name
	}
	return id.Namespace + ":" + id.Name
}

// Selection is the user's selection criterion: every record or one qualified id.
type Selection struct {
	All bool   `json:"all" yaml:"all"`
	ID  string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Matches reports whether the record id is selected.
func (s Selection) Matches(id string) bool {
	return s.All || s.ID == id
}

// String returns "all" or the selected id.
func (s Selection) String() string {
	if s.All {
		return SelectAll
	}
	return s.ID
}

// MaterializeStatus is the outcome of writing one structure file.
type MaterializeStatus string

const (
	MaterializeSaved   MaterializeStatus = "saved"
	MaterializeSkipped MaterializeStatus = "skipped"
	MaterializeFailed  MaterializeStatus = "failed"
)
