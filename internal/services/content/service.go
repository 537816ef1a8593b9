// Package content proxies article pages for the navigation surface. It
// fetches a page from the configured wiki origin, strips everything that
// could execute or escape the page, and rewrites article links so clients
// report every navigation back through the race flow.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperhustle/hustle-go/internal/article"
	"github.com/hyperhustle/hustle-go/internal/notify"
)

// DefaultBaseURL is the wiki origin articles are fetched from
const DefaultBaseURL = "https://en.wikipedia.org"

// DefaultTimeout bounds a single article fetch
const DefaultTimeout = 15 * time.Second

// Article is a sanitized page ready to serve to a racing client
type Article struct {
	Ref   string `json:"ref"`
	Title string `json:"title"`
	HTML  string `json:"html"`
	Links []Link `json:"links"`

	// Placeholder marks content synthesized after a failed fetch. A
	// placeholder page never advances anyone's race state.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Link is one in-wiki link found on a page
type Link struct {
	Ref   string `json:"ref"`
	Title string `json:"title"`
}

// Service fetches and sanitizes wiki pages
type Service struct {
	baseURL  string
	client   *http.Client
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates a content service against the given wiki origin. A nil client
// gets a default with a sane timeout.
func New(baseURL string, client *http.Client, notifier notify.Notifier, logger *slog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Service{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		notifier: notifier,
		logger:   logger,
	}
}

// Fetch retrieves and sanitizes the page for an article reference. Fetch
// failures surface as an error notification plus a placeholder page rather
// than an error; broken upstream fetches must never disturb a race.
func (s *Service) Fetch(ctx context.Context, ref string) (*Article, error) {
	normalized := article.Normalize(ref)
	pageURL, err := s.pageURL(normalized)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "hustle-go/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return s.placeholder(normalized, err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.placeholder(normalized, fmt.Errorf("upstream returned %s", resp.Status)), nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return s.placeholder(normalized, err), nil
	}

	return s.sanitize(normalized, doc), nil
}

// sanitize reduces a fetched document to inert article HTML and its in-wiki
// links
func (s *Service) sanitize(ref string, doc *goquery.Document) *Article {
	doc.Find("script, style, link, iframe, form, noscript").Remove()

	// The content body carries the article; fall back to the whole body
	// for non-standard pages
	body := doc.Find("#mw-content-text")
	if body.Length() == 0 {
		body = doc.Find("body")
	}

	var links []Link
	seen := map[string]struct{}{}
	body.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, article.PathMarker) {
			// Off-wiki links are dead ends in a race
			sel.RemoveAttr("href")
			return
		}
		normalized := article.Normalize(href)
		sel.SetAttr("href", normalized)
		if _, ok := seen[normalized]; ok {
			return
		}
		seen[normalized] = struct{}{}
		links = append(links, Link{Ref: normalized, Title: article.Title(normalized)})
	})

	html, err := body.Html()
	if err != nil {
		s.logger.Warn("failed to render sanitized article",
			slog.String("ref", ref),
			slog.String("error", err.Error()),
		)
		html = ""
	}

	return &Article{
		Ref:   ref,
		Title: article.Title(ref),
		HTML:  html,
		Links: links,
	}
}

// placeholder builds the stand-in page served when a fetch fails
func (s *Service) placeholder(ref string, cause error) *Article {
	s.logger.Warn("article fetch failed",
		slog.String("ref", ref),
		slog.String("error", cause.Error()),
	)
	s.notifier.Notify(notify.Notification{
		Kind:        notify.KindError,
		Title:       "Failed to load article",
		Description: fmt.Sprintf("Could not load %s, try another link", article.Title(ref)),
	})

	title := article.Title(ref)
	return &Article{
		Ref:         ref,
		Title:       title,
		HTML:        fmt.Sprintf("<p>Could not load <strong>%s</strong>. Go back and try another link.</p>", title),
		Placeholder: true,
	}
}

func (s *Service) pageURL(ref string) (string, error) {
	if !strings.HasPrefix(ref, article.PathMarker) {
		ref = article.PathMarker + url.PathEscape(strings.ReplaceAll(ref, " ", "_"))
	}
	return s.baseURL + ref, nil
}
