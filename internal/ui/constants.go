package ui

// Window sizing
const (
	WindowMinWidth  float32 = 500
	WindowMinHeight float32 = 300
)

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)
