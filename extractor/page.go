package extractor

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
	pkgerrors "github.com/pkg/errors"
)

var whitespaceRe = regexp.MustCompile(`[ \t]+`)

// extractPage fetches a generic webpage and reduces it to plain text.
// go-readability finds the main content; html-to-markdown flattens it.
// A goquery boilerplate-stripping pass is the fallback when readability
// cannot identify an article.
func (s *service) extractPage(ctx context.Context, rawURL string) (*models.Document, error) {
	const op = "ExtractorService.extractPage"

	body, err := s.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	parsedURL, _ := url.Parse(rawURL)

	title, text := s.readableText(body, parsedURL)
	if text == "" {
		title, text = s.goqueryText(body)
	}

	text = normalizeText(text, s.config.MaxContentChars)
	if text == "" {
		return nil, errors.FetchFailed(op, nil, "No textual content could be extracted from the URL")
	}

	return &models.Document{
		SourceURL: rawURL,
		Kind:      models.KindPage,
		Title:     title,
		Text:      text,
	}, nil
}

func (s *service) fetchHTML(ctx context.Context, rawURL string) ([]byte, error) {
	const op = "ExtractorService.fetchHTML"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.FetchFailed(op, err, "Invalid URL")
	}
	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.FetchFailed(op, pkgerrors.Wrap(err, "fetch page"), "Failed to reach the URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.FetchFailed(op, nil, "URL returned status "+resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isTextualContentType(contentType) {
		return nil, errors.FetchFailed(op, nil, "URL does not point to textual content")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxBodyBytes+1))
	if err != nil {
		return nil, errors.FetchFailed(op, pkgerrors.Wrap(err, "read body"), "Failed to read the page")
	}
	if int64(len(body)) > s.config.MaxBodyBytes {
		return nil, errors.FetchFailed(op, nil, "Page body exceeds the size limit")
	}

	return body, nil
}

func (s *service) readableText(body []byte, pageURL *url.URL) (title, text string) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", ""
	}

	md, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		md = article.TextContent
	}

	return article.Title, md
}

// goqueryText strips obvious boilerplate and returns the dominant content node.
func (s *service) goqueryText(body []byte) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", ""
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		if og, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}

	removeSelectors := []string{
		"script", "style", "noscript", "iframe", "svg",
		"header", "footer", "nav", "aside",
	}
	doc.Find(strings.Join(removeSelectors, ", ")).Each(func(i int, sel *goquery.Selection) {
		sel.Remove()
	})

	contentSel := doc.Find("article, main, .content, .post-content, #content").First()
	if contentSel.Length() == 0 {
		contentSel = doc.Find("body")
	}

	return title, contentSel.Text()
}

func isTextualContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml") ||
		strings.Contains(contentType, "text/plain")
}

func normalizeText(text string, maxChars int) string {
	text = whitespaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	cleanLines := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleanLines = append(cleanLines, line)
		}
	}
	text = strings.Join(cleanLines, "\n")

	if maxChars > 0 && len(text) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}
