package model

// VideoFile 代表目录中的一个视频文件. Identity is Path; never cached between operations.
type VideoFile struct {
	Path      string `json:"path"`
	FileName  string `json:"file_name"`
	Extension string `json:"extension"` // without the leading dot
	Size      int64  `json:"size,omitempty"`
}

// FileEntry is one row of a directory listing.
type FileEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	IsDir   bool   `json:"is_dir"`
	IsVideo bool   `json:"is_video"`
}

// DirectoryLevel is one breadcrumb of the current directory hierarchy.
type DirectoryLevel struct {
	FullPath string `json:"full_path"`
	DirName  string `json:"dir_name"`
}

// EpisodeMeta 是元数据源返回的单集信息, season/episode/aired are optional.
type EpisodeMeta struct {
	Title     string `json:"title"`
	Season    *int   `json:"season,omitempty"`
	Episode   *int   `json:"episode,omitempty"`
	AiredDate string `json:"aired_date,omitempty"`
}

// ShowMeta is the show-level half of a metadata fetch.
type ShowMeta struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	PremieredYear string `json:"premiered_year,omitempty"`
}

// SeasonedEpisodes groups titles into one season (or calendar year, for year buckets).
type SeasonedEpisodes struct {
	Season       int      `json:"season"`
	StartEpisode int      `json:"start_episode"`
	EndEpisode   int      `json:"end_episode"`
	Titles       []string `json:"titles"`
}

// ShowDetails is returned by value to the caller that requested the fetch.
type ShowDetails struct {
	ID               int                `json:"id"`
	Name             string             `json:"name"`
	PremieredYear    *string            `json:"premiered_year"`
	EpisodesBySeason []SeasonedEpisodes `json:"episodes_by_season"`
}

// RenamePair is one entry of an ephemeral rename plan.
type RenamePair struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// SizedEntry is one row of a size report.
type SizedEntry struct {
	FileEntry
	Size      int64  `json:"size"`
	SizeHuman string `json:"size_human"`
}

// GlobalConfig 存储运行时可修改的设置 (key/value)
type GlobalConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const (
	ConfigKeyTVDBApiKey      = "tvdb_api_key"
	ConfigKeyTMDBToken       = "tmdb_token"
	ConfigKeyDefaultProvider = "default_provider"
	ConfigKeyLastDirectory   = "last_directory"
)
