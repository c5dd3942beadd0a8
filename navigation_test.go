package main

import "testing"

func TestSectionHistory(t *testing.T) {
	h := newSectionHistory(Home)
	if h.canGoBack() || h.canGoForward() {
		t.Fatal("fresh history should not move")
	}

	h.navigateTo(Projects)
	h.navigateTo(FAQ)
	h.navigateTo(FAQ) // same section is not recorded twice

	if got := h.goBack(); got != Projects {
		t.Errorf("goBack = %v, want Projects", got)
	}
	if got := h.goBack(); got != Home {
		t.Errorf("goBack = %v, want Home", got)
	}
	if got := h.goBack(); got != Home {
		t.Errorf("goBack at the start = %v, want Home", got)
	}
	if got := h.goForward(); got != Projects {
		t.Errorf("goForward = %v, want Projects", got)
	}

	// Navigating from the middle drops the forward entries
	h.navigateTo(Contact)
	if h.canGoForward() {
		t.Error("forward entries survived a new navigation")
	}
	if got := h.goBack(); got != Projects {
		t.Errorf("goBack = %v, want Projects", got)
	}
	if len(h.entries) != 3 {
		t.Errorf("entries = %v, want [Home Projects Contact]", h.entries)
	}
}
