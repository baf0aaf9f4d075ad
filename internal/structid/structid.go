// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structid parses structure record ids of the form
// <namespace>[.<segment>]*:<name> and derives their output paths.
package structid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

// ErrMalformedID is wrapped by every Parse failure.
var ErrMalformedID = errors.New("malformed structure id")

// Parse splits raw into namespace, folder segments and name. An empty
// namespace becomes types.DefaultNamespace and empty segments are dropped.
// Parse performs no I/O.
func Parse(raw string) (types.StructureID, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return types.StructureID{}, fmt.Errorf("%w: %q: want exactly one ':'", ErrMalformedID, raw)
	}

	group, name := parts[0], parts[1]
	if name == "" {
		return types.StructureID{}, fmt.Errorf("%w: %q: empty name", ErrMalformedID, raw)
	}
	if err := checkSegment(name); err != nil {
		return types.StructureID{}, fmt.Errorf("%w: %q: %v", ErrMalformedID, raw, err)
	}

	tokens := strings.Split(group, ".")
	id := types.StructureID{Namespace: tokens[0], Name: name}
	if id.Namespace == "" {
		id.Namespace = types.DefaultNamespace
	}
	if err := checkSegment(id.Namespace); err != nil {
		return types.StructureID{}, fmt.Errorf("%w: %q: %v", ErrMalformedID, raw, err)
	}

	for _, seg := range tokens[1:] {
		if seg == "" {
			continue
		}
		if err := checkSegment(seg); err != nil {
			return types.StructureID{}, fmt.Errorf("%w: %q: %v", ErrMalformedID, raw, err)
		}
		id.PathSegments = append(id.PathSegments, seg)
	}

	return id, nil
}

// Qualify prefixes input with the default namespace when it has no colon.
func Qualify(input string) string {
	if strings.Contains(input, ":") {
		return input
	}
	return types.DefaultNamespace + ":" + input
}

// checkSegment rejects tokens that would escape the output directory.
func checkSegment(s string) error {
	if s == "." || s == ".." {
		return fmt.Errorf("relative directory reference %q", s)
	}
	if strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("path separator in %q", s)
	}
	return nil
}
