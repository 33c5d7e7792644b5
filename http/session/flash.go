package session

// Flash classes.
const (
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
)

// Messages flashed when a navigation fails.
const (
	DefaultErrMsg = "Uh oh! We've run into an issue."
	NoAccessMsg   = "Oops, sending you back somewhere safe."
	NotFoundMsg   = "Hmm... we couldn't find that page."
	TimeoutMsg    = "That took too long. Please try again."
)

// A Flash is a message shown once, on the next page a visitor sees.
type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}
