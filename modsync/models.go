package modsync

// Collection is a remotely hosted list of projects curated together.
type Collection struct {
	ID   string
	Name string

	// Projects are the project identifiers in collection order.
	Projects []string
}

// Version is a single release of a project.
type Version struct {
	ID            string
	Name          string
	VersionNumber string

	// GameVersions lists compatible game versions, e.g. "1.20.4".
	GameVersions []string
	// Loaders lists compatible mod loaders, e.g. "fabric".
	Loaders []string

	Files []File
}

// File is a downloadable artifact of a Version.
type File struct {
	URL      string
	Filename string
	Size     int64

	// Primary marks the canonical download artifact.
	// Exactly one file per version is expected to have it set.
	Primary bool
}

// InstalledMod is a mod file found in the local mods directory.
type InstalledMod struct {
	// ID is the project identifier recovered from Filename.
	ID string
	// Filename is the managed file name, see ManagedName.
	Filename string
}

// Target identifies the game installation mods are selected for.
type Target struct {
	GameVersion string
	Loader      string
}
