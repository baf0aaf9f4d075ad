// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordSet_FirstObservedOrderLastWins(t *testing.T) {
	var s RecordSet
	s.Set(Record{ID: "b:b", Payload: []byte("1")})
	s.Set(Record{ID: "a:a", Payload: []byte("2")})
	s.Set(Record{ID: "b:b", Payload: []byte("3")})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"b:b", "a:a"}, s.IDs())

	rec, ok := s.Get("b:b")
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), rec.Payload)

	_, ok = s.Get("c:c")
	assert.False(t, ok)
}

func TestRecordSet_RecordsIsACopy(t *testing.T) {
	var s RecordSet
	s.Set(Record{ID: "a:a"})
	recs := s.Records()
	recs[0].ID = "changed"
	assert.Equal(t, []string{"a:a"}, s.IDs())
}

func TestRecordSet_ZeroValue(t *testing.T) {
	var s RecordSet
	_, ok := s.Get("x")
	assert.False(t, ok)
	assert.Empty(t, s.IDs())
	assert.Empty(t, s.Records())
}

func TestStructureID_Paths(t *testing.T) {
	id := StructureID{Namespace: "foo", PathSegments: []string{"bar", "qux"}, Name: "baz"}
	assert.Equal(t, "bar/qux", id.Folder())
	assert.Equal(t, "baz.mcstructure", id.FileName())
	assert.Equal(t, filepath.Join("structures", "foo", "bar", "qux"), id.Dir())
	assert.Equal(t, filepath.Join("structures", "foo", "bar", "qux", "baz.mcstructure"), id.RelPath())
	assert.Equal(t, "foo:bar/qux/baz", id.DisplayID())

	flat := StructureID{Namespace: "mystructure", Name: "house"}
	assert.Equal(t, "", flat.Folder())
	assert.Equal(t, "mystructure:house", flat.DisplayID())
}

func TestSelection(t *testing.T) {
	all := Selection{All: true}
	assert.True(t, all.Matches("anything:at_all"))
	assert.Equal(t, "all", all.String())

	one := Selection{ID: "mystructure:house"}
	assert.True(t, one.Matches("mystructure:house"))
	assert.False(t, one.Matches("mystructure:tower"))
	assert.Equal(t, "mystructure:house", one.String())
}
