package viewmodel

// LiveStatus is the coarse state of a referral. The vocabulary is fixed by
// the backend; unrecognized values degrade to the pending presentation.
type LiveStatus string

const (
	StatusPending      LiveStatus = "pending"
	StatusInjected     LiveStatus = "injected"
	StatusContacted    LiveStatus = "contacted"
	StatusConverted    LiveStatus = "converted"
	StatusProcessing   LiveStatus = "processing"
	StatusInProgress   LiveStatus = "in_progress"
	StatusCompleted    LiveStatus = "completed"
	StatusCancelled    LiveStatus = "cancelled"
	StatusRejected     LiveStatus = "rejected"
	StatusDropped      LiveStatus = "dropped"
	StatusNoResponse   LiveStatus = "no_response"
	StatusFailed       LiveStatus = "failed"
	StatusInjectFailed LiveStatus = "inject_failed"
)

// Stage categories group fine-grained pipeline stages for badge styling.
const (
	CategoryNew        = "NEW"
	CategoryPending    = "PENDING"
	CategoryProcessing = "PROCESSING"
	CategoryComplete   = "COMPLETE"
)

// StatusConfig is the presentation for one live status.
type StatusConfig struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var statusConfigs = map[LiveStatus]StatusConfig{
	StatusPending:      {Label: "Pending", Emoji: "⏳", Color: "text-gray-400"},
	StatusInjected:     {Label: "AI Contacting", Emoji: "🤖", Color: "text-blue-400"},
	StatusContacted:    {Label: "In Conversation", Emoji: "💬", Color: "text-indigo-400"},
	StatusConverted:    {Label: "Order Created", Emoji: "📋", Color: "text-purple-400"},
	StatusProcessing:   {Label: "Processing", Emoji: "⚙️", Color: "text-yellow-400"},
	StatusInProgress:   {Label: "AI Handling", Emoji: "🤖", Color: "text-blue-400"},
	StatusCompleted:    {Label: "Completed", Emoji: "✅", Color: "text-emerald-400"},
	StatusCancelled:    {Label: "Cancelled", Emoji: "🚫", Color: "text-red-400"},
	StatusRejected:     {Label: "Rejected", Emoji: "⚠️", Color: "text-orange-400"},
	StatusDropped:      {Label: "Not Interested", Emoji: "👋", Color: "text-gray-500"},
	StatusNoResponse:   {Label: "No Response", Emoji: "😶", Color: "text-gray-500"},
	StatusFailed:       {Label: "Failed", Emoji: "❌", Color: "text-red-400"},
	StatusInjectFailed: {Label: "Contact Failed", Emoji: "⚠️", Color: "text-red-400"},
}

// ConfigFor returns the presentation for a status, falling back to the
// pending entry for anything the backend sends that we do not recognize.
func (s LiveStatus) ConfigFor() StatusConfig {
	if conf, ok := statusConfigs[s]; ok {
		return conf
	}
	return statusConfigs[StatusPending]
}

// IsTerminal reports whether the status is a dead end for the referral.
func (s LiveStatus) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusRejected, StatusDropped, StatusNoResponse, StatusFailed, StatusInjectFailed:
		return true
	}
	return false
}

// CategoryStyle is the badge styling for one stage category.
type CategoryStyle struct {
	Background string `json:"bg"`
	Text       string `json:"text"`
	Glow       string `json:"glow"`
}

var categoryStyles = map[string]CategoryStyle{
	CategoryNew:        {Background: "bg-blue-500/15", Text: "text-blue-400", Glow: "shadow-blue-500/20"},
	CategoryPending:    {Background: "bg-yellow-500/15", Text: "text-yellow-400", Glow: "shadow-yellow-500/20"},
	CategoryProcessing: {Background: "bg-purple-500/15", Text: "text-purple-400", Glow: "shadow-purple-500/20"},
	CategoryComplete:   {Background: "bg-emerald-500/15", Text: "text-emerald-400", Glow: "shadow-emerald-500/20"},
}

var fallbackCategoryStyle = CategoryStyle{Background: "bg-gray-500/15", Text: "text-gray-400", Glow: "shadow-gray-500/20"}

// StyleForCategory returns the badge style for a stage category, with a
// neutral fallback for unknown categories.
func StyleForCategory(category string) CategoryStyle {
	if style, ok := categoryStyles[category]; ok {
		return style
	}
	return fallbackCategoryStyle
}
