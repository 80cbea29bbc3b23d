package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/lexbridge"
)

// buildSystemPrompt is shared by the LLM-backed providers.
func buildSystemPrompt(req Request) string {
	sourceName := "the source language"
	if req.SourceLang != "" {
		sourceName = lexbridge.NameForISO(req.SourceLang)
	}
	targetName := lexbridge.NameForISO(req.TargetLang)

	return fmt.Sprintf(`# Role
You are a careful translator for short, everyday phrases. You translate from %s into %s.

# Task
Translate the phrase in the "text" field into %s.

# Rules
- Translate the meaning, not word by word. Greetings and courtesies should use the form a native speaker would say.
- Keep names, numbers and URLs unchanged.
- If the phrase is already in %s, return it unchanged.
- Never add explanations, alternatives or transliterations.

# Format
Return a valid JSON object with a single key "translation" containing the translated string.
Example: { "translation": "translated phrase" }
- Do NOT wrap in Markdown code blocks.`, sourceName, targetName, targetName, targetName)
}

func buildUserMessage(req Request) string {
	data, _ := json.Marshal(map[string]string{"text": req.Text})
	return string(data)
}

// parseTranslation extracts the translated string from a model reply. It
// accepts {"translation": "..."}, an object with any single string value,
// or a bare JSON string.
func parseTranslation(content, provider string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if s, ok := obj["translation"].(string); ok {
			return s, nil
		}
		if len(obj) == 1 {
			for _, v := range obj {
				if s, ok := v.(string); ok {
					return s, nil
				}
			}
		}
	}

	var s string
	if err := json.Unmarshal([]byte(content), &s); err == nil {
		return s, nil
	}

	return "", &lexbridge.ProviderError{
		Message:   fmt.Sprintf("invalid response format from %s", provider),
		Retryable: false,
	}
}
