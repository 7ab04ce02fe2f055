package config

import (
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/modsync/config/hclspec"
)

func TestEncode(t *testing.T) {
	spec := hclspec.Config{
		CollectionID: "AbCdEf12",
		GameVersion:  "1.20.4",
		Loader:       "fabric",
		ModPath:      "mods",
	}
	src := Encode(spec)
	assert.Equal(t, `collection_id = "AbCdEf12"
mc_version    = "1.20.4"
loader        = "fabric"
mod_path      = "mods"
`, string(src))

	got, diags := Parse(hclparse.NewParser(), src, "modsync.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Equal(t, spec, got)
}

func TestEncodeOptional(t *testing.T) {
	spec := hclspec.Config{
		CollectionID: "a",
		GameVersion:  "1.20.4",
		Loader:       "quilt",
		Workers:      3,
		APIURL:       "https://staging-api.modrinth.com",
		UserAgent:    "me/pack",
	}
	got, diags := Parse(hclparse.NewParser(), Encode(spec), "modsync.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Equal(t, spec, got)
}
