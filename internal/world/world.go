// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package world resolves Bedrock world display names to world directories.
//
// A world directory holds levelname.txt (the display name on its first
// line), the db/ store and optional behavior_packs/ and resource_packs/.
package world

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/destruc7i0n/extract-mcstructure/internal/worlddb"
	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

const (
	levelNameFile    = "levelname.txt"
	behaviorPacksDir = "behavior_packs"
)

var (
	// ErrWorldNotFound is returned when no world carries the requested name.
	ErrWorldNotFound = errors.New("world not found")

	// ErrUnsupportedPlatform is returned when worlds cannot be located on this platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoBehaviorPack is returned when a world has no behavior pack directory.
	ErrNoBehaviorPack = errors.New("no behavior pack found")
)

// PlatformFor maps a runtime GOOS to its default platform layout.
func PlatformFor(goos string) (types.Platform, error) {
	switch goos {
	case "windows":
		return types.PlatformWindows, nil
	case "android":
		return types.PlatformAndroid, nil
	}
	return "", fmt.Errorf("%w: %s (set worlds_dir to point at a minecraftWorlds directory)", ErrUnsupportedPlatform, goos)
}

// ParsePlatform validates a configured platform name.
func ParsePlatform(s string) (types.Platform, error) {
	for _, p := range types.Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
}

// WorldsDir returns the minecraftWorlds directory for p. getenv supplies
// environment variables (os.Getenv in production).
func WorldsDir(p types.Platform, getenv func(string) string) (string, error) {
	switch p {
	case types.PlatformWindows:
		return filepath.Join(getenv("LOCALAPPDATA"), "Packages", "Microsoft.MinecraftUWP_8wekyb3d8bbwe",
			"LocalState", "games", "com.mojang", "minecraftWorlds"), nil
	case types.PlatformWindowsGDK:
		return filepath.Join(getenv("APPDATA"), "Minecraft Bedrock", "Users", "Shared",
			"games", "com.mojang", "minecraftWorlds"), nil
	case types.PlatformAndroid:
		return filepath.Join("/storage", "emulated", "0", "games", "com.mojang", "minecraftWorlds"), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, p)
}

// ResolveDir picks the worlds directory from configuration: an explicit Dir
// wins, then a configured platform, then the platform of goos.
func ResolveDir(cfg types.WorldsConfig, goos string, getenv func(string) string) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	p := cfg.Platform
	if p == "" {
		var err error
		if p, err = PlatformFor(goos); err != nil {
			return "", err
		}
	} else if _, err := ParsePlatform(string(p)); err != nil {
		return "", err
	}
	return WorldsDir(p, getenv)
}

// World is one world directory.
type World struct {
	Name string `json:"name" yaml:"name"`
	Root string `json:"root" yaml:"root"`
}

// DBDir returns the path of the world's key-value store.
func (w World) DBDir() string {
	return filepath.Join(w.Root, worlddb.Dir)
}

// BehaviorPack returns the first behavior pack directory in name order.
func (w World) BehaviorPack() (string, error) {
	dir := filepath.Join(w.Root, behaviorPacksDir)
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoBehaviorPack, dir)
}

// Locator finds worlds beneath one minecraftWorlds directory.
type Locator struct {
	Dir string
}

// List returns every world with a readable levelname.txt, sorted by name
// and then by root.
func (l Locator) List() ([]World, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading worlds directory %s: %w", l.Dir, err)
	}

	var worlds []World
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		root := filepath.Join(l.Dir, e.Name())
		name, err := readLevelName(filepath.Join(root, levelNameFile))
		if err != nil {
			continue
		}
		worlds = append(worlds, World{Name: name, Root: root})
	}

	sort.SliceStable(worlds, func(i, j int) bool {
		if worlds[i].Name != worlds[j].Name {
			return worlds[i].Name < worlds[j].Name
		}
		return worlds[i].Root < worlds[j].Root
	})
	return worlds, nil
}

// Find returns the world whose display name equals name. When several
// worlds share a name the one with the greatest root path wins.
func (l Locator) Find(name string) (World, error) {
	worlds, err := l.List()
	if err != nil {
		return World{}, err
	}
	var found *World
	for i := range worlds {
		if worlds[i].Name == name {
			found = &worlds[i]
		}
	}
	if found == nil {
		return World{}, fmt.Errorf("%w: %q", ErrWorldNotFound, name)
	}
	return *found, nil
}

func readLevelName(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
