package main

// sectionHistory records visited sections for back/forward navigation.
type sectionHistory struct {
	entries []section
	pos     int
}

func newSectionHistory(start section) sectionHistory {
	return sectionHistory{entries: []section{start}}
}

func (h *sectionHistory) current() section {
	return h.entries[h.pos]
}

// navigateTo drops any forward entries, like a browser.
func (h *sectionHistory) navigateTo(s section) {
	if s == h.current() {
		return
	}
	if h.pos < len(h.entries)-1 {
		h.entries = h.entries[:h.pos+1]
	}
	h.entries = append(h.entries, s)
	h.pos = len(h.entries) - 1
}

func (h *sectionHistory) canGoBack() bool {
	return h.pos > 0
}

func (h *sectionHistory) canGoForward() bool {
	return h.pos < len(h.entries)-1
}

func (h *sectionHistory) goBack() section {
	if h.canGoBack() {
		h.pos--
	}
	return h.current()
}

func (h *sectionHistory) goForward() section {
	if h.canGoForward() {
		h.pos++
	}
	return h.current()
}
