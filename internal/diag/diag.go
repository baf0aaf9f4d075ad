// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diag builds the diagnostic logger and classifies fatal errors.
package diag

import (
	"errors"
	"io"
	"io/fs"

	ldberrors "github.com/df-mc/goleveldb/leveldb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Code is a coarse error category used in logs. Exit status does not depend on it.
type Code string

const (
	CodeUnknown    Code = "unknown"
	CodeResolution Code = "resolution"
	CodeInput      Code = "input"
	CodeStore      Code = "store"
	CodeIO         Code = "io"
)

// NewLogger returns a console logger writing to w. Debug entries are
// emitted only when verbose is set.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// Classifier groups sentinel errors under a code. Packages register their
// sentinels from the command layer so diag stays free of domain imports.
type Classifier struct {
	rules []rule
}

type rule struct {
	target error
	code   Code
}

// Add maps errors matching target (errors.Is) to code.
func (c *Classifier) Add(code Code, targets ...error) *Classifier {
	for _, t := range targets {
		c.rules = append(c.rules, rule{target: t, code: code})
	}
	return c
}

// Classify returns the code of the first matching rule. Store corruption
// and filesystem errors are recognized without registration.
func (c *Classifier) Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	for _, r := range c.rules {
		if errors.Is(err, r.target) {
			return r.code
		}
	}
	var cerr *ldberrors.ErrCorrupted
	if errors.As(err, &cerr) || ldberrors.IsCorrupted(err) {
		return CodeStore
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
