package content

import "strings"

type Category string

const (
	FrontEnd Category = "Front End"
	BackEnd  Category = "Back End"
	AI       Category = "Artificial Intelligence"
	Other    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{FrontEnd, BackEnd, AI, Other}

var categoryKeywords = []struct {
	category Category
	keywords []string
	exact    string
}{
	{FrontEnd, []string{"front end", "javascript", "responsive web design", "html", "css"}, ""},
	{BackEnd, []string{"back end", "sql", "database", "node", "express", "django", "laravel", "php", "spring"},
		"programming fundamentals for software development"},
	{AI, []string{"ai", "artificial intelligence", "generative", "granite", "prompting", "machine learning", "deep learning"},
		"code generations and optimization"},
}

// Categorize files a certificate by keywords in its title. Anything issued
// by freeCodeCamp is front end. Keywords are plain substrings, so "ai"
// also matches inside longer words.
func Categorize(c Certificate) Category {
	title := strings.ToLower(c.Title)
	if strings.Contains(strings.ToLower(c.Issuer), "freecodecamp") {
		return FrontEnd
	}
	for _, rule := range categoryKeywords {
		if rule.exact != "" && title == rule.exact {
			return rule.category
		}
		for _, kw := range rule.keywords {
			if strings.Contains(title, kw) {
				return rule.category
			}
		}
	}
	return Other
}

type Group struct {
	Category     Category
	Certificates []Certificate
}

// GroupByCategory returns one group per category in display order, empty
// groups included, keeping the input order within each group.
func GroupByCategory(certs []Certificate) []Group {
	groups := make([]Group, len(Categories))
	index := make(map[Category]int, len(Categories))
	for i, c := range Categories {
		groups[i].Category = c
		index[c] = i
	}
	for _, c := range certs {
		i := index[Categorize(c)]
		groups[i].Certificates = append(groups[i].Certificates, c)
	}
	return groups
}

// Search keeps the certificates whose title or issuer contains term,
// ignoring case. An empty term keeps everything.
func Search(certs []Certificate, term string) []Certificate {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return certs
	}
	var out []Certificate
	for _, c := range certs {
		if strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(strings.ToLower(c.Issuer), term) {
			out = append(out, c)
		}
	}
	return out
}
