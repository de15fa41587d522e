// Package prompt renders chat turns into the single-string format the
// fine-tuned EXAONE model was trained on.
package prompt

import "strings"

// Turn delimiters. They must match the training format byte for byte.
const (
	SystemTag    = "[|system|]"
	UserTag      = "[|user|]"
	AssistantTag = "[|assistant|]"
	EndOfTurn    = "[|endofturn|]"
)

// DefaultSystemPrompt is the built-in instruction text. The agent names are
// plain text for the model; nothing dispatches on them.
const DefaultSystemPrompt = "GOPANG 중개 AI입니다. 전문 기관 AI에게 업무를 지시합니다.\n" +
	"호출 가능: 경찰청_AI, 법원_AI, 국세청_AI, 주민센터_AI, 병원_AI, 은행_AI"

// StopTokens returns the sequences that end generation. A fresh slice is
// returned so callers may not mutate shared state.
func StopTokens() []string {
	return []string{EndOfTurn, UserTag}
}

// Template renders prompts with a fixed default system text.
type Template struct {
	defaultSystem string
}

// NewTemplate returns a Template that falls back to defaultSystem when a
// request carries no system text. An empty defaultSystem selects DefaultSystemPrompt.
func NewTemplate(defaultSystem string) *Template {
	if defaultSystem == "" {
		defaultSystem = DefaultSystemPrompt
	}
	return &Template{defaultSystem: defaultSystem}
}

// DefaultSystem returns the configured fallback system text.
func (t *Template) DefaultSystem() string { return t.defaultSystem }

// Select returns custom when non-empty, otherwise the default system text.
func (t *Template) Select(custom string) string {
	if custom != "" {
		return custom
	}
	return t.defaultSystem
}

// Render builds the prompt for one system/user exchange and leaves the
// assistant turn open.
func (t *Template) Render(system, message string) string {
	var b strings.Builder
	b.Grow(len(system) + len(message) + 64)
	b.WriteString(SystemTag)
	b.WriteString(system)
	b.WriteString(EndOfTurn)
	b.WriteByte('\n')
	b.WriteString(UserTag)
	b.WriteString(message)
	b.WriteString(EndOfTurn)
	b.WriteByte('\n')
	b.WriteString(AssistantTag)
	return b.String()
}
