package model

// Message author roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message content classifications
const (
	ContentText           = "text"
	ContentCode           = "code"
	ContentMultimodalText = "multimodal_text"
)

// Tool recipients tagged on assistant messages
const (
	RecipientDalle   = "dalle.text2im"
	RecipientBrowser = "browser"
	RecipientPython  = "python"
)

// Model slug counted toward the GPT-4 total
const ModelSlugGPT4 = "gpt-4"

// GPT visibility
const (
	ShareRecipientPrivate     = "private"
	ShareRecipientLink        = "link"
	ShareRecipientMarketplace = "marketplace"
)
