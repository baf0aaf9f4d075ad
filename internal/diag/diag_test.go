// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diag

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	ldberrors "github.com/df-mc/goleveldb/leveldb/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	var quiet bytes.Buffer
	l := NewLogger(&quiet, false)
	l.Debug("hidden")
	l.Warn("shown")
	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "shown")

	var loud bytes.Buffer
	l = NewLogger(&loud, true)
	l.Debug("visible")
	assert.Contains(t, loud.String(), "visible")
}

func TestClassify(t *testing.T) {
	errNotFound := errors.New("not found")
	errBadInput := errors.New("bad input")

	c := new(Classifier).
		Add(CodeResolution, errNotFound).
		Add(CodeInput, errBadInput)

	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing"))

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "registered sentinel", err: fmt.Errorf("wrap: %w", errNotFound), want: CodeResolution},
		{name: "second sentinel", err: errBadInput, want: CodeInput},
		{name: "store corruption", err: &ldberrors.ErrCorrupted{Err: errors.New("bad block")}, want: CodeStore},
		{name: "path error", err: fmt.Errorf("open: %w", statErr), want: CodeIO},
		{name: "other", err: errors.New("boom"), want: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}
