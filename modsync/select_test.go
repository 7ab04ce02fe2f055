package modsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectVersion(t *testing.T) {
	versions := []Version{
		{ID: "new-forge", GameVersions: []string{"1.20.4"}, Loaders: []string{"forge"}},
		{ID: "new-fabric", GameVersions: []string{"1.20.4", "1.20.3"}, Loaders: []string{"fabric", "quilt"}},
		{ID: "old-fabric", GameVersions: []string{"1.20.4"}, Loaders: []string{"fabric"}},
	}

	v, ok := SelectVersion(versions, Target{GameVersion: "1.20.4", Loader: "fabric"})
	assert.True(t, ok)
	assert.Equal(t, "new-fabric", v.ID)

	v, ok = SelectVersion(versions, Target{GameVersion: "1.20.3", Loader: "quilt"})
	assert.True(t, ok)
	assert.Equal(t, "new-fabric", v.ID)

	_, ok = SelectVersion(versions, Target{GameVersion: "1.19.2", Loader: "fabric"})
	assert.False(t, ok)

	_, ok = SelectVersion(nil, Target{GameVersion: "1.20.4", Loader: "fabric"})
	assert.False(t, ok)
}

func TestPrimaryFile(t *testing.T) {
	v := Version{Files: []File{
		{Filename: "sources.jar"},
		{Filename: "mod.jar", Primary: true},
		{Filename: "other.jar", Primary: true},
	}}
	f, ok := PrimaryFile(v)
	assert.True(t, ok)
	assert.Equal(t, "mod.jar", f.Filename)

	_, ok = PrimaryFile(Version{Files: []File{{Filename: "a.jar"}}})
	assert.False(t, ok)
}
