package modsync

// SelectVersion returns the first version compatible with the target.
// Versions are expected newest first, as returned by the API.
func SelectVersion(versions []Version, t Target) (Version, bool) {
	for _, v := range versions {
		if !contains(v.GameVersions, t.GameVersion) {
			continue
		}
		if !contains(v.Loaders, t.Loader) {
			continue
		}
		return v, true
	}
	return Version{}, false
}

// PrimaryFile returns the file flagged primary.
func PrimaryFile(v Version) (File, bool) {
	for _, f := range v.Files {
		if f.Primary {
			return f, true
		}
	}
	return File{}, false
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
