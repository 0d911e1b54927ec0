// Package sourcecheck resolves the source citations a model attaches to an
// event and reads each page title, so the UI can flag dead or fabricated
// links. It never blocks the pipeline; inspection runs after acceptance.
package sourcecheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Citation is one "Source Name: URL" pair pulled out of a source field.
type Citation struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Report is the resolution outcome for one citation.
type Report struct {
	Citation
	Reachable bool   `json:"reachable"`
	PageTitle string `json:"page_title,omitempty"`
}

// ParseCitations splits a source field into citations. Multiple sources are
// comma-joined; an estimation note after a semicolon is not a citation.
func ParseCitations(field string) []Citation {
	if i := strings.Index(field, ";"); i >= 0 {
		field = field[:i]
	}

	var out []Citation
	for _, part := range strings.Split(field, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, link := part, ""
		// split on the colon that starts the URL scheme, not the one in "://"
		if i := strings.Index(part, ": "); i >= 0 {
			name, link = strings.TrimSpace(part[:i]), strings.TrimSpace(part[i+2:])
		} else if i := strings.Index(part, "http"); i > 0 {
			name, link = strings.TrimSpace(strings.TrimSuffix(part[:i], ":")), part[i:]
		} else if strings.HasPrefix(part, "http") {
			name, link = "", part
		}

		if link != "" {
			if u, err := url.Parse(link); err != nil || u.Scheme == "" {
				link = ""
			}
		}
		out = append(out, Citation{Name: name, URL: link})
	}

	return out
}

// Inspector fetches cited pages.
type Inspector struct {
	HTTPClient *http.Client
}

// New creates an Inspector with the given per-fetch timeout.
func New(timeout time.Duration) *Inspector {
	return &Inspector{HTTPClient: &http.Client{Timeout: timeout}}
}

// Inspect resolves every citation in the field. Citations without a URL are
// reported unreachable.
func (in *Inspector) Inspect(ctx context.Context, field string) []Report {
	citations := ParseCitations(field)

	reports := make([]Report, 0, len(citations))
	for _, c := range citations {
		r := Report{Citation: c}
		if c.URL != "" {
			if title, err := in.fetchTitle(ctx, c.URL); err == nil {
				r.Reachable = true
				r.PageTitle = title
			}
		}
		reports = append(reports, r)
	}

	return reports
}

func (in *Inspector) fetchTitle(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := in.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
