package listing

import (
	"strings"
	"time"
)

// Portal identifies an external job-listing source.
type Portal string

const (
	PortalIndeed    Portal = "indeed"
	PortalLinkedIn  Portal = "linkedin"
	PortalGlassdoor Portal = "glassdoor"
	PortalRemoteOK  Portal = "remoteok"
)

func ParsePortal(s string) (Portal, bool) {
	p := Portal(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}

func (p Portal) Valid() bool {
	switch p {
	case PortalIndeed, PortalLinkedIn, PortalGlassdoor, PortalRemoteOK:
		return true
	}
	return false
}

func (p Portal) String() string {
	return string(p)
}

type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// JobListing is immutable once cached. ID is the content hash of the
// normalized title and company, or a portal-native key when the portal
// provides one.
type JobListing struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Company     string       `json:"company"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	Skills      []string     `json:"skills"`
	Salary      *SalaryRange `json:"salary,omitempty"`
	SourceURL   string       `json:"source_url"`
	Portal      Portal       `json:"portal"`
	ScrapedAt   time.Time    `json:"scraped_at"`
}
