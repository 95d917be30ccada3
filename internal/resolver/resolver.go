// Package resolver picks the downloadable asset for a production.
// Only links whose class denotes a directly fetchable archive are
// eligible; external viewer and streaming pages are ignored.
package resolver

import "github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"

// DefaultLinkClasses are the catalog link classes that point at
// directly fetchable archive files on the scene mirrors. Viewer and
// streaming classes (YoutubeVideo, PouetProduction, ...) are
// deliberately absent.
func DefaultLinkClasses() []string {
	return []string{
		"SceneOrgFile",
		"UntergrundFile",
		"AmigascneFile",
		"FujiologyFile",
		"PaduaOrgFile",
		"ModlandFile",
		"SceneSkFile",
	}
}

// Resolver selects download links by link class.
type Resolver struct {
	allowed map[string]bool
}

// New creates a Resolver accepting the given link classes. An empty
// list means DefaultLinkClasses.
func New(classes []string) *Resolver {
	if len(classes) == 0 {
		classes = DefaultLinkClasses()
	}
	allowed := make(map[string]bool, len(classes))
	for _, c := range classes {
		allowed[c] = true
	}
	return &Resolver{allowed: allowed}
}

// Resolve returns the first directly fetchable link of the production.
// The second return is false when no eligible link exists; that is an
// expected outcome, not an error, and the caller reports the
// production as having no download available.
func (r *Resolver) Resolve(p demozoo.Production) (demozoo.Link, bool) {
	for _, l := range p.DownloadLinks {
		if r.allowed[l.LinkClass] {
			return l, true
		}
	}
	return demozoo.Link{}, false
}

// Eligible returns every directly fetchable link in catalog order. The
// pipeline tries them as fallbacks when a download fails.
func (r *Resolver) Eligible(p demozoo.Production) []demozoo.Link {
	var links []demozoo.Link
	for _, l := range p.DownloadLinks {
		if r.allowed[l.LinkClass] {
			links = append(links, l)
		}
	}
	return links
}
