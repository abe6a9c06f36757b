package tui

type state int

const (
	searchState state = iota
	loadingState
	resultState
	historyState
	errorState
)
