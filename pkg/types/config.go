package types

// Platform identifies a supported host layout for Bedrock world folders.
type Platform string

const (
	PlatformWindows    Platform = "windows"
	PlatformWindowsGDK Platform = "windows-gdk"
	PlatformAndroid    Platform = "android"
)

// Platforms lists every supported platform in a stable order.
var Platforms = []Platform{PlatformWindows, PlatformWindowsGDK, PlatformAndroid}

// WorldsConfig holds settings for locating worlds on disk.
type WorldsConfig struct {
	// Dir overrides platform detection when non-empty. It points at the
	// minecraftWorlds directory that holds one subdirectory per world.
	Dir string `json:"worlds_dir" yaml:"worlds_dir" mapstructure:"worlds_dir"`

	// Platform forces a platform layout instead of deriving it from the
	// running OS. Ignored when Dir is set.
	Platform Platform `json:"platform" yaml:"platform" mapstructure:"platform"`
}

// JournalConfig holds settings for the extraction journal.
type JournalConfig struct {
	// Enabled controls whether runs are recorded and deleted records backed up.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default: <user config dir>/extract-mcstructure/journal.db).
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ExtractOptions is the immutable per-invocation configuration of an extract run.
type ExtractOptions struct {
	// WorldName is the display name from the world's levelname.txt.
	WorldName string

	// Criterion is the raw user selection: "all" or a structure id.
	Criterion string

	// Force overwrites existing output files.
	Force bool

	// Delete removes matched records from the store during the scan.
	Delete bool

	// BehaviorPack writes under the world's first behavior pack instead of the world root.
	BehaviorPack bool

	// OutputDir overrides the output root entirely when non-empty.
	OutputDir string
}
