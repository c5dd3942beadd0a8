package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractText converts an inline HTML fragment into styled terminal text.
// Every resolvable <a> becomes its text followed by a [n] marker, numbered
// from *linkCounter, and is returned as a Link.
func extractText(fragment, baseURL string, linkCounter *int) (string, []Link) {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " "), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + fragment + "</body>"))
	if err != nil {
		return collapseSpace(fragment), nil
	}
	doc.Find("script, style, iframe, noscript").Remove()

	var links []Link
	var b strings.Builder
	extractTextFromElement(doc.Find("body"), &b, &links, linkCounter, baseURL)
	return collapseSpace(b.String()), links
}

// extractTextFromElement walks the child nodes of sel, styling inline
// markup and numbering links.
func extractTextFromElement(
	sel *goquery.Selection,
	b *strings.Builder,
	links *[]Link,
	linkCounter *int,
	baseURL string,
) {
	sel.Contents().Each(func(i int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "#text":
			// Only <br> breaks a line
			b.WriteString(strings.ReplaceAll(s.Text(), "\n", " "))

		case "a":
			linkText := collapseSpace(s.Text())
			href, _ := s.Attr("href")
			resolved := resolveURL(href, baseURL)
			if resolved == "" {
				// Anchors and unsupported schemes keep their text only
				b.WriteString(linkText)
				return
			}
			if linkText == "" {
				linkText = resolved
			}
			*links = append(*links, Link{Text: linkText, URL: resolved, ID: *linkCounter})
			b.WriteString(linkStyle.Render(linkText))
			fmt.Fprintf(b, " [%d]", *linkCounter)
			*linkCounter++

		case "b", "strong":
			b.WriteString(strongStyle.Render(innerText(s, links, linkCounter, baseURL)))

		case "i", "em":
			b.WriteString(emphasisStyle.Render(innerText(s, links, linkCounter, baseURL)))

		case "code":
			b.WriteString(codeStyle.Render(s.Text()))

		case "br":
			b.WriteString("\n")

		default:
			extractTextFromElement(s, b, links, linkCounter, baseURL)
		}
	})
}

func innerText(s *goquery.Selection, links *[]Link, linkCounter *int, baseURL string) string {
	var inner strings.Builder
	extractTextFromElement(s, &inner, links, linkCounter, baseURL)
	return collapseSpace(inner.String())
}

// collapseSpace squeezes whitespace runs to one space, keeping explicit
// line breaks.
func collapseSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// resolveURL converts relative URLs to absolute http(s) URLs
func resolveURL(href, baseURL string) string {
	if href == "" {
		return ""
	}

	// Skip links we can't open from a description
	if strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "javascript:") {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	resolved, err := base.Parse(href)
	if err != nil {
		return ""
	}

	switch resolved.Scheme {
	case "http", "https", "mailto":
		return resolved.String()
	}
	return ""
}
