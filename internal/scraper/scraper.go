// Package scraper fetches a paginated quote listing, parses it into records
// and aggregates tag statistics.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

const (
	userAgent   = "Mozilla/5.0 (compatible; toolbelt/1.0)"
	maxBodySize = 512 * 1024
)

type Quote struct {
	Text   string
	Author string
	Tags   []string
}

type Result struct {
	Quotes       []Quote
	PagesFetched int
	PagesFailed  int
}

type Scraper struct {
	client   *http.Client
	log      zerolog.Logger
	baseURL  string
	maxPages int
	delay    time.Duration
}

func New(baseURL string, maxPages int, delay time.Duration, log zerolog.Logger) *Scraper {
	return &Scraper{
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxPages: maxPages,
		delay:    delay,
	}
}

// Run walks /page/1/, /page/2/, ... until the listing ends or maxPages is
// reached. A page that fails to fetch or parse is logged and skipped; the
// run keeps going.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	for page := 1; page <= s.maxPages; page++ {
		if page > 1 && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return res, ctx.Err()
			}
		}

		url := fmt.Sprintf("%s/page/%d/", s.baseURL, page)
		quotes, status, err := s.fetchPage(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.PagesFailed++
			s.log.Warn().Str("url", url).Err(err).Msg("page skipped")
			continue
		}
		if status == http.StatusNotFound || len(quotes) == 0 {
			// End of the listing.
			break
		}

		res.PagesFetched++
		res.Quotes = append(res.Quotes, quotes...)
		s.log.Info().Str("url", url).Int("quotes", len(quotes)).Msg("page scraped")
	}

	return res, nil
}

func (s *Scraper) fetchPage(ctx context.Context, url string) ([]Quote, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, http.StatusNotFound, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	quotes, err := ParseQuotes(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse: %w", err)
	}
	return quotes, resp.StatusCode, nil
}

// ParseQuotes extracts quote records from listing markup: each div.quote
// holds a span.text, a small.author and zero or more a.tag elements.
func ParseQuotes(r io.Reader) ([]Quote, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var quotes []Quote
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "quote") {
			if q := parseQuoteNode(n); q.Text != "" {
				quotes = append(quotes, q)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return quotes, nil
}

func parseQuoteNode(root *html.Node) Quote {
	var q Quote
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "span" && hasClass(n, "text"):
				q.Text = strings.TrimSpace(textContent(n))
			case n.Data == "small" && hasClass(n, "author"):
				q.Author = strings.TrimSpace(textContent(n))
			case n.Data == "a" && hasClass(n, "tag"):
				if tag := strings.TrimSpace(textContent(n)); tag != "" {
					q.Tags = append(q.Tags, tag)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return q
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
