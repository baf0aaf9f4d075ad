// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantNS      string
		wantFolder  string
		wantPath    string
		wantDisplay string
	}{
		{
			name:        "default namespace no folder",
			raw:         "mystructure:house",
			wantNS:      "mystructure",
			wantPath:    filepath.Join("structures", "mystructure", "house.mcstructure"),
			wantDisplay: "mystructure:house",
		},
		{
			name:        "one folder segment",
			raw:         "foo.bar:baz",
			wantNS:      "foo",
			wantFolder:  "bar",
			wantPath:    filepath.Join("structures", "foo", "bar", "baz.mcstructure"),
			wantDisplay: "foo:bar/baz",
		},
		{
			name:        "nested folders",
			raw:         "foo.bar.qux:baz",
			wantNS:      "foo",
			wantFolder:  "bar/qux",
			wantPath:    filepath.Join("structures", "foo", "bar", "qux", "baz.mcstructure"),
			wantDisplay: "foo:bar/qux/baz",
		},
		{
			name:        "empty namespace normalized",
			raw:         ":tower",
			wantNS:      "mystructure",
			wantPath:    filepath.Join("structures", "mystructure", "tower.mcstructure"),
			wantDisplay: "mystructure:tower",
		},
		{
			name:        "empty namespace with folder",
			raw:         ".ruins:gate",
			wantNS:      "mystructure",
			wantFolder:  "ruins",
			wantPath:    filepath.Join("structures", "mystructure", "ruins", "gate.mcstructure"),
			wantDisplay: "mystructure:ruins/gate",
		},
		{
			name:        "empty segments dropped",
			raw:         "foo..bar:baz",
			wantNS:      "foo",
			wantFolder:  "bar",
			wantPath:    filepath.Join("structures", "foo", "bar", "baz.mcstructure"),
			wantDisplay: "foo:bar/baz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNS, id.Namespace)
			assert.Equal(t, tt.wantFolder, id.Folder())
			assert.Equal(t, tt.wantPath, id.RelPath())
			assert.Equal(t, tt.wantDisplay, id.DisplayID())
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	a, err := Parse("foo.bar:baz")
	require.NoError(t, err)
	b, err := Parse("foo.bar:baz")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParse_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"house",
		"a:b:c",
		"foo::bar",
		"foo:",
		"foo:../etc",
		"foo.bar/..:x",
		"foo:..",
		"foo:.",
		`foo:a\b`,
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedID)
		})
	}
}

func TestQualify(t *testing.T) {
	assert.Equal(t, "mystructure:house", Qualify("house"))
	assert.Equal(t, "foo:house", Qualify("foo:house"))
	assert.Equal(t, ":house", Qualify(":house"))
	assert.Equal(t, "mystructure:", Qualify(""))
}
