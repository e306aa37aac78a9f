package anthropic

import (
	"testing"

	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
)

func TestRequestToAnthropic_SystemPrompt_BecomesTopLevelField(t *testing.T) {
	request := ai.CompletionRequest{
		Model:        "claude-sonnet-4-20250514",
		SystemPrompt: "Answer in French.",
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: "Hello"}},
	}

	converted := requestToAnthropic(request)

	if converted.System != "Answer in French." {
		t.Errorf("System: got %q", converted.System)
	}
	for _, message := range converted.Messages {
		if message.Role == "system" {
			t.Error("system prompt must not appear in the messages array")
		}
	}
}

func TestRequestToAnthropic_Defaults_StreamAndMaxTokensSet(t *testing.T) {
	converted := requestToAnthropic(ai.CompletionRequest{
		Model:    "claude-sonnet-4-20250514",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "Hello"}},
	})

	if !converted.Stream {
		t.Error("Stream must always be true")
	}
	if converted.MaxTokens != defaultMaxTokens {
		t.Errorf("MaxTokens: got %d, want %d", converted.MaxTokens, defaultMaxTokens)
	}
	if converted.System != "" {
		t.Errorf("System should be empty when no prompt is given, got %q", converted.System)
	}
}

func TestBuildMessages_UnknownRoles_CollapseToAssistant(t *testing.T) {
	messages := buildMessages([]ai.Message{
		{Role: ai.RoleUser, Content: "question"},
		{Role: ai.RoleAssistant, Content: "answer"},
		{Role: ai.MessageRole("function"), Content: "result"},
	})

	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	wantRoles := []string{"user", "assistant", "assistant"}
	for i, want := range wantRoles {
		if messages[i].Role != want {
			t.Errorf("message %d role: got %q, want %q", i, messages[i].Role, want)
		}
	}
}
