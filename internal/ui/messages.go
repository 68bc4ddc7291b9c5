package ui

import "eventscout/internal/session"

// searchResultMsg carries a finished request back into Update
type searchResultMsg struct {
	result session.Result
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// linkOpenedMsg reports the outcome of opening a link in the browser
type linkOpenedMsg struct {
	url string
	err error
}
