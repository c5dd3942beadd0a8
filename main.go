package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/folio/internal/content"
)

// Link represents an openable link on the current section
type Link struct {
	Text string // The visible link text
	URL  string // The destination URL
	ID   int    // Number shown next to the text, starting at 1
}

func main() {
	config, err := ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, "folio:", err)
		os.Exit(2)
	}

	// The TUI owns the terminal, so logs only go to a file when asked for.
	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "folio")
		if err != nil {
			log.Fatal("Error opening log file:", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	doc, err := loadContent(config.ContentFile)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("Error loading content: ", err)
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if config.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}

	p := tea.NewProgram(initialModel(config, doc), opts...)
	if _, err := p.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("Error running TUI: ", err)
	}
}

func loadContent(path string) (*content.Document, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}
