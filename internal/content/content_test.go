package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDocument(t *testing.T) {
	doc, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if doc.Owner.Name != "Naufal Zaky Ramadhan" {
		t.Errorf("owner = %q", doc.Owner.Name)
	}
	if len(doc.FAQ) != 6 || len(doc.Experience) != 3 || len(doc.Technologies) != 14 {
		t.Errorf("faq=%d experience=%d technologies=%d", len(doc.FAQ), len(doc.Experience), len(doc.Technologies))
	}
	for i, p := range doc.Projects {
		if p.ID == "" || p.BorderColor != ProjectColors[i%len(ProjectColors)] {
			t.Errorf("project %d not normalized: %+v", i, p)
		}
	}
	if len(doc.Titles.FAQ) == 0 || len(doc.Titles.Projects) == 0 {
		t.Error("section titles missing")
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no owner", "owner: {name: ''}", ErrNoOwner},
		{"skill level", "owner: {name: a}\nskills: [{name: x, level: 101}]", ErrSkillLevel},
		{"duplicate certificate", "owner: {name: a}\ncertificates: [{id: '1', title: A}, {id: '1', title: B}]", ErrDuplicateID},
		{"untitled project", "owner: {name: a}\nprojects: [{description: x}]", ErrNoTitle},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.doc)); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := Parse([]byte("owner: {name: a}\nunknown: 1")); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	data := "owner:\n  name: Someone\nprojects:\n  - title: One\n  - title: Two\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Projects[1].ID != "project-2" || doc.Projects[1].BorderColor != ProjectColors[1] {
		t.Errorf("second project = %+v", doc.Projects[1])
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title, issuer string
		want          Category
	}{
		{"Responsive Web Design", "freeCodeCamp", FrontEnd},
		{"Anything At All", "FreeCodeCamp.org", FrontEnd},
		{"Modern CSS Layouts", "Udemy", FrontEnd},
		{"Intro to SQL", "Sololearn", BackEnd},
		{"Node and Express APIs", "Dicoding", BackEnd},
		{"Programming Fundamentals for Software Development", "Coursera", BackEnd},
		{"Getting Started with Generative AI", "IBM", AI},
		{"Code Generations and Optimization", "IBM", AI},
		{"Granite Models in Practice", "IBM", AI},
		{"Certified Maintenance Technician", "X", AI}, // "ai" inside "maintenance"
		{"Cloud Computing Fundamentals", "Cisco", Other},
		{"", "", Other},
	}
	for _, tt := range tests {
		if got := Categorize(Certificate{Title: tt.title, Issuer: tt.issuer}); got != tt.want {
			t.Errorf("Categorize(%q, %q) = %q, want %q", tt.title, tt.issuer, got, tt.want)
		}
	}
}

func TestGroupByCategory(t *testing.T) {
	doc, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	groups := GroupByCategory(doc.Certificates)
	if len(groups) != len(Categories) {
		t.Fatalf("groups = %d", len(groups))
	}
	total := 0
	for i, g := range groups {
		if g.Category != Categories[i] {
			t.Errorf("group %d = %q, want %q", i, g.Category, Categories[i])
		}
		for _, c := range g.Certificates {
			if Categorize(c) != g.Category {
				t.Errorf("%q filed under %q", c.Title, g.Category)
			}
		}
		total += len(g.Certificates)
	}
	if total != len(doc.Certificates) {
		t.Errorf("grouped %d of %d certificates", total, len(doc.Certificates))
	}
}

func TestSearch(t *testing.T) {
	certs := []Certificate{
		{Title: "Responsive Web Design", Issuer: "freeCodeCamp"},
		{Title: "Intro to SQL", Issuer: "Sololearn"},
		{Title: "Generative AI", Issuer: "IBM SkillsBuild"},
	}
	tests := []struct {
		term string
		want int
	}{
		{"", 3},
		{"   ", 3},
		{"sql", 1},
		{"IBM", 1},
		{"e", 3},
		{"nothing", 0},
	}
	for _, tt := range tests {
		got := Search(certs, tt.term)
		if len(got) != tt.want {
			t.Errorf("Search(%q) = %d results, want %d", tt.term, len(got), tt.want)
		}
		for _, c := range got {
			hay := strings.ToLower(c.Title + " " + c.Issuer)
			if !strings.Contains(hay, strings.ToLower(strings.TrimSpace(tt.term))) {
				t.Errorf("Search(%q) kept %q", tt.term, c.Title)
			}
		}
	}
}
