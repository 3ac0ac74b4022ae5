// Package webpage fetches the hosted support documents (privacy policy,
// terms of service) and reduces them to readable terminal text.
package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Fetch retrieves the document at rawURL and extracts its readable text
func Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "fishhit/1.0 (support-pages)")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := ExtractText(string(body))
	if text == "" {
		return "", fmt.Errorf("no text content found")
	}

	return text, nil
}

// block is one rendered unit of the document: a heading, a paragraph or
// a list item
type block struct {
	text string
	item bool
}

// ExtractText parses HTML and renders its content for a terminal:
// headings and paragraphs become blocks separated by blank lines, list
// items become "- " lines. Policy documents are printed whole; the only
// size cap is the fetch limit.
func ExtractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	skip := map[string]bool{
		"script": true, "style": true, "nav": true,
		"header": true, "footer": true, "aside": true,
		"noscript": true, "iframe": true,
	}
	breaks := map[string]bool{
		"p": true, "div": true, "li": true, "br": true, "tr": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	}

	var blocks []block
	var cur strings.Builder
	inItem := false

	flush := func() {
		text := strings.Join(strings.Fields(cur.String()), " ")
		cur.Reset()
		if text == "" {
			return
		}
		blocks = append(blocks, block{text: text, item: inItem})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skip[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			cur.WriteString(n.Data)
			cur.WriteString(" ")
		}

		isItem := n.Type == html.ElementNode && n.Data == "li"
		if isItem {
			flush()
			inItem = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && breaks[n.Data] {
			flush()
		}
		if isItem {
			inItem = false
		}
	}
	walk(doc)
	flush()

	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			// consecutive list items stay together; everything else
			// gets a blank line between blocks
			if b.item && blocks[i-1].item {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		if b.item {
			sb.WriteString("- ")
		}
		sb.WriteString(b.text)
	}
	return sb.String()
}
