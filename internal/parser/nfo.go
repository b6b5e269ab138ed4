package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/spf13/afero"
)

// ShowNFOName is the Kodi/Jellyfin show descriptor file.
const ShowNFOName = "tvshow.nfo"

// TVShowNFO represents tvshow.nfo
type TVShowNFO struct {
	XMLName  xml.Name `xml:"tvshow" json:"-"`
	Title    string   `xml:"title" json:"title"`
	Original string   `xml:"originaltitle" json:"original_title,omitempty"`
	Year     string   `xml:"year" json:"year,omitempty"`
	// IDs
	BangumiID int `xml:"bangumiid" json:"bangumi_id,omitempty"` // Custom or from plugin
	TMDBID    int `xml:"tmdbid" json:"tmdb_id,omitempty"`
	TVDBID    int `xml:"tvdbid" json:"tvdb_id,omitempty"`
	MALID     int `xml:"malid" json:"mal_id,omitempty"`
	// 旧版刮削器把 TVDB ID 写在 <id>
	LegacyID int `xml:"id" json:"-"`
}

// ProviderIDs maps metadata provider names to the ids recorded in the NFO.
func (n TVShowNFO) ProviderIDs() map[string]int {
	ids := map[string]int{}
	tvdb := n.TVDBID
	if tvdb == 0 {
		tvdb = n.LegacyID
	}
	for name, id := range map[string]int{"tvdb": tvdb, "tmdb": n.TMDBID, "bangumi": n.BangumiID, "jikan": n.MALID} {
		if id > 0 {
			ids[name] = id
		}
	}
	return ids
}

// ReadShowNFO parses dir/tvshow.nfo. A missing file is ErrNotFound.
func ReadShowNFO(fs afero.Fs, dir string) (TVShowNFO, error) {
	var nfo TVShowNFO
	path := filepath.Join(dir, ShowNFOName)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nfo, fmt.Errorf("%w: no %s in %s", model.ErrNotFound, ShowNFOName, dir)
		}
		return nfo, err
	}
	if err := xml.Unmarshal(data, &nfo); err != nil {
		return nfo, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nfo, nil
}
