package hclspec

// Config is the on-disk configuration. Attribute names match the
// keys of the JSON configuration format so that either syntax can
// be decoded into it.
type Config struct {
	CollectionID string `hcl:"collection_id,attr"`
	GameVersion  string `hcl:"mc_version,attr"`
	Loader       string `hcl:"loader,attr"`
	ModPath      string `hcl:"mod_path,optional"`
	Workers      int    `hcl:"workers,optional"`
	APIURL       string `hcl:"api_url,optional"`
	UserAgent    string `hcl:"user_agent,optional"`
}
