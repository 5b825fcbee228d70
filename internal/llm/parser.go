package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON unmarshals a model reply, tolerating a ```json fence around it.
func DecodeJSON(text string, dest any) error {
	cleaned := stripCodeFence(text)
	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return nil
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// drop the language tag on the opening line
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
