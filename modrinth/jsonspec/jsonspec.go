package jsonspec

type Collection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	User        string   `json:"user"`
	Status      string   `json:"status"`
	Projects    []string `json:"projects"`
}

type Version struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	Name          string `json:"name"`
	VersionNumber string `json:"version_number"`
	VersionType   string `json:"version_type"`

	GameVersions []string `json:"game_versions"`
	Loaders      []string `json:"loaders"`

	Files []File `json:"files"`
}

type File struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Primary  bool   `json:"primary"`
	Size     int64  `json:"size"`
}
