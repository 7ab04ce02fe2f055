package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/tie/modsync/config/hclspec"
)

// Encode renders c in HCL syntax. Optional attributes are
// omitted when unset.
func Encode(c hclspec.Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("collection_id", cty.StringVal(c.CollectionID))
	body.SetAttributeValue("mc_version", cty.StringVal(c.GameVersion))
	body.SetAttributeValue("loader", cty.StringVal(c.Loader))

	if p := c.ModPath; p != "" {
		body.SetAttributeValue("mod_path", cty.StringVal(p))
	}
	if n := int64(c.Workers); n > 0 {
		body.SetAttributeValue("workers", cty.NumberIntVal(n))
	}
	if u := c.APIURL; u != "" {
		body.SetAttributeValue("api_url", cty.StringVal(u))
	}
	if ua := c.UserAgent; ua != "" {
		body.SetAttributeValue("user_agent", cty.StringVal(ua))
	}
	return hclwrite.Format(f.Bytes())
}
