package tui

import tea "github.com/charmbracelet/bubbletea"

// NavigateMsg requests that the reader load the page at Path
type NavigateMsg struct {
	Path string

	// load is the page load that asked for the navigation; zero means any
	load int
}

// navRequest is a navigation queued by a page load
type navRequest struct {
	load int
	path string
}

// waitForNavigation turns the next queued navigation request into a NavigateMsg
func waitForNavigation(ch <-chan navRequest) tea.Cmd {
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return NavigateMsg{Path: req.path, load: req.load}
	}
}
