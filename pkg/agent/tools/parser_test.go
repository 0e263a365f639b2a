package tools

import (
	"strings"
	"testing"
)

func TestParseToolCall(t *testing.T) {
	t.Run("BasicToolCall", func(t *testing.T) {
		text := `<thinking>done thinking</thinking>
<tool>
<server_name>local</server_name>
<tool_name>save_patterns</tool_name>
<arguments>
  <patterns>{"hooks": []}</patterns>
</arguments>
</tool>`

		toolCall, remaining, err := ParseToolCall(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolCall.ToolName != "save_patterns" {
			t.Errorf("expected save_patterns, got %s", toolCall.ToolName)
		}
		if toolCall.ServerName != "local" {
			t.Errorf("expected local server, got %s", toolCall.ServerName)
		}
		if !strings.Contains(remaining, "done thinking") {
			t.Errorf("remaining text should keep non-tool content, got %q", remaining)
		}
	})

	t.Run("DefaultsServerName", func(t *testing.T) {
		text := `<tool><tool_name>load_patterns</tool_name><arguments></arguments></tool>`

		toolCall, _, err := ParseToolCall(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolCall.ServerName != "local" {
			t.Errorf("server name should default to local, got %s", toolCall.ServerName)
		}
	})

	t.Run("MissingToolName", func(t *testing.T) {
		text := `<tool><arguments><topic>x</topic></arguments></tool>`

		if _, _, err := ParseToolCall(text); err == nil {
			t.Error("expected error for missing tool_name")
		}
	})

	t.Run("NoToolCall", func(t *testing.T) {
		if _, _, err := ParseToolCall("just a message"); err == nil {
			t.Error("expected error when no tool call present")
		}
	})

	t.Run("UnescapedAmpersandFallback", func(t *testing.T) {
		text := `<tool>
<tool_name>write_post</tool_name>
<arguments>
  <topic>APIs & SDKs</topic>
</arguments>
</tool>`

		toolCall, _, err := ParseToolCall(text)
		if err != nil {
			t.Fatalf("expected ampersand fallback to recover, got %v", err)
		}
		if toolCall.ToolName != "write_post" {
			t.Errorf("expected write_post, got %s", toolCall.ToolName)
		}
	})
}

func TestHasToolCall(t *testing.T) {
	if !HasToolCall("<tool><tool_name>converse</tool_name></tool>") {
		t.Error("should detect tool call")
	}
	if HasToolCall("no tools here") {
		t.Error("should not detect tool call in plain text")
	}
}

func TestGetArgumentsXML(t *testing.T) {
	text := `<tool><tool_name>write_post</tool_name><arguments><topic>go testing</topic></arguments></tool>`

	toolCall, _, err := ParseToolCall(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	argsXML := string(toolCall.GetArgumentsXML())
	if !strings.HasPrefix(argsXML, "<arguments>") || !strings.HasSuffix(argsXML, "</arguments>") {
		t.Errorf("arguments should be rewrapped, got %q", argsXML)
	}
	if !strings.Contains(argsXML, "<topic>go testing</topic>") {
		t.Errorf("arguments should preserve inner XML, got %q", argsXML)
	}
}

func TestXMLToMap(t *testing.T) {
	data := []byte(`<arguments>
  <topic>concurrency</topic>
  <include_code>true</include_code>
</arguments>`)

	result, err := XMLToMap(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["topic"] != "concurrency" {
		t.Errorf("expected topic=concurrency, got %v", result["topic"])
	}
	if result["include_code"] != "true" {
		t.Errorf("expected include_code=true, got %v", result["include_code"])
	}
}

func TestEscapeUnescapedAmpersands(t *testing.T) {
	in := []byte("<a>x & y &amp; z &lt; w</a>")
	out := string(escapeUnescapedAmpersands(in))

	if out != "<a>x &amp; y &amp; z &lt; w</a>" {
		t.Errorf("unexpected escaping result: %q", out)
	}
}
