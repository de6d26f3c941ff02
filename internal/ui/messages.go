package ui

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// clearStatusMsg clears the status line once it is stale
type clearStatusMsg struct {
	seq int
}

// readyMsg is delivered once the first frame has a size
type readyMsg struct{}
