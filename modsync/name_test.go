package modsync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagedName(t *testing.T) {
	tests := []struct {
		filename string
		id       string
		want     string
	}{
		{filename: "foo.jar", id: "abc", want: "foo.abc.jar"},
		{filename: "sodium-x.y.z.jar", id: "sodium", want: "sodium-x.y.z.sodium.jar"},
		{filename: "lithium-fabric-mc1.20.4-0.12.1.jar", id: "gvQqBUqZ", want: "lithium-fabric-mc1.20.4-0.12.1.gvQqBUqZ.jar"},
	}
	for _, test := range tests {
		got, err := ManagedName(test.filename, test.id)
		require.NoError(t, err)
		assert.Equal(t, test.want, got)
	}
}

func TestManagedNameInvalid(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		id       string
	}{
		{name: "no extension", filename: "README", id: "abc"},
		{name: "trailing dot", filename: "foo.", id: "abc"},
		{name: "dot file", filename: ".jar", id: "abc"},
		{name: "empty id", filename: "foo.jar", id: ""},
		{name: "dotted id", filename: "foo.jar", id: "a.b"},
		{name: "short id", filename: "foo.jar", id: "ab"},
		{name: "numeric id", filename: "foo.jar", id: "1234"},
		{name: "path", filename: "../foo.jar", id: "abc"},
		{name: "slug after version", filename: "foo-1.2.jar", id: "3d-skin-layers"},
		{name: "qualifier after version", filename: "foo-1.2.jar", id: "final"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ManagedName(test.filename, test.id)
			assert.True(t, errors.Is(err, ErrInvalidName), "got %v", err)
		})
	}
}

func TestParseManagedName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{filename: "sodium-x.y.z.sodium.jar", want: "sodium"},
		{filename: "sodium-1.sodium.jar", want: "sodium"},
		{filename: "sodium-fabric-0.5.8+mc1.20.4.AANobbMI.jar", want: "AANobbMI"},
		{filename: "lithium-0.12.1.gvQqBUqZ.jar", want: "gvQqBUqZ"},
		{filename: "mod-1.2.1eAoo2KR.jar", want: "1eAoo2KR"},
		{filename: "3d-skin-layers.3d-skin-layers.jar", want: "3d-skin-layers"},
	}
	for _, test := range tests {
		id, err := ParseManagedName(test.filename)
		require.NoError(t, err, test.filename)
		assert.Equal(t, test.want, id, test.filename)
	}
}

func TestParseManagedNameUnmanaged(t *testing.T) {
	for _, name := range []string{
		"foo",
		"foo.jar",
		".hidden.abc.jar",
		"foo..jar",
		"foo.a+b.jar",
		"foo.v2.jar",
		"fabric-api-0.97.0+1.20.4.jar",
		"iris-1.7.0.jar",
		"iris-mc1.20.4-1.7.0.jar",
		"mod-1.2.0-beta.jar",
		"mod-1.0.0b1.jar",
		"mod-1.0.0.Final.jar",
		"mod-2.1.RELEASE.jar",
		"modmenu-9.0.0+fabric.jar",
		"config.2024.01.json",
	} {
		_, err := ParseManagedName(name)
		assert.Truef(t, errors.Is(err, ErrInvalidName), "%q: got %v", name, err)
	}
}

func TestManagedNameRoundTrip(t *testing.T) {
	bases := []string{"a.jar", "fabric-api-0.97.0+1.20.4.jar", "x.zip", "My Mod (1).jar"}
	ids := []string{"P7dR8mSH", "1eAoo2KR", "sodium", "fabric-api", "a_b"}
	for _, base := range bases {
		for _, id := range ids {
			name, err := ManagedName(base, id)
			require.NoError(t, err)
			got, err := ParseManagedName(name)
			require.NoError(t, err)
			assert.Equal(t, id, got, "managed name %q", name)
		}
	}
}
