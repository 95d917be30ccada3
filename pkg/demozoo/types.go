package demozoo

import "time"

// Platform is a hardware/software target category in the catalog
// (e.g. "Amiga AGA", "ZX Spectrum").
type Platform struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Nick is a releaser credit (group or individual) on a production.
type Nick struct {
	Name string `json:"name"`
}

// Link is a single download or external link attached to a production.
// LinkClass tags what the URL points at: an archive file on a scene
// mirror, a streaming page, a portal entry, and so on.
type Link struct {
	LinkClass string `json:"link_class"`
	URL       string `json:"url"`
}

// Production is a single release entry in the catalog. DownloadLinks
// may be empty: not every production has a public download.
type Production struct {
	ID                 int        `json:"id"`
	Title              string     `json:"title"`
	DemozooURL         string     `json:"demozoo_url"`
	ReleaseDate        string     `json:"release_date"`
	CompetitionPlacing *int       `json:"competition_placing"`
	Platforms          []Platform `json:"platforms"`
	AuthorNicks        []Nick     `json:"author_nicks"`
	DownloadLinks      []Link     `json:"download_links"`
}

// The catalog serves partial release dates for old productions.
var releaseDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ReleasedAt parses the production's release date. Partial dates
// ("2010", "2010-05") resolve to the first day of the period. The
// second return is false when no date is recorded or it cannot be
// parsed.
func (p Production) ReleasedAt() (time.Time, bool) {
	if p.ReleaseDate == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, p.ReleaseDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Author returns the first credited releaser name, or "" when the
// production has no recorded author.
func (p Production) Author() string {
	if len(p.AuthorNicks) == 0 {
		return ""
	}
	return p.AuthorNicks[0].Name
}

// Paginated response envelopes.

type platformsResponse struct {
	Next    string     `json:"next"`
	Results []Platform `json:"results"`
}

type productionsResponse struct {
	Count   int          `json:"count"`
	Next    string       `json:"next"`
	Results []Production `json:"results"`
}
