package domain

// SetupStage identifies a dependency bootstrap step
type SetupStage int

const (
	SetupStarting SetupStage = iota
	SetupDownloading
	SetupExtracting
	SetupCompleted
	SetupFailed
)

// SetupEvent reports bootstrap progress to the UI
type SetupEvent struct {
	Stage   SetupStage
	Message string
	File    string
	Percent float64 // only for SetupDownloading
	Err     error   // only for SetupFailed
}

// Tool identifies an external dependency
type Tool string

const (
	ToolYtDlp  Tool = "yt-dlp"
	ToolFFmpeg Tool = "ffmpeg"
)

// ToolStatus describes where a dependency was found
type ToolStatus struct {
	Tool    Tool
	Path    string
	Bundled bool // installed by us under the data dir
}

// Available reports whether the tool was resolved
func (s ToolStatus) Available() bool {
	return s.Path != ""
}
