package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/loomhq/loom/pkg/agent/tools"
)

// FormatToolSchema renders a single tool's documentation for the system prompt:
// name, description, parameter schema, and a usage example.
func FormatToolSchema(tool tools.Tool) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("## %s\n", tool.Name()))
	if tool.IsLoopBreaking() {
		builder.WriteString("(loop-breaking tool)\n")
	}
	builder.WriteString(fmt.Sprintf("Description: %s\n", tool.Description()))

	if schemaJSON, err := SchemaToJSON(tool.Schema()); err == nil {
		builder.WriteString("Parameters (JSON Schema):\n")
		builder.WriteString(schemaJSON)
		builder.WriteString("\n")
	}

	builder.WriteString("Example:\n")
	builder.WriteString(generateXMLExample(tool))
	builder.WriteString("\n")

	return builder.String()
}

// FormatToolSchemas renders documentation for all available tools, sorted by
// name so the prompt is stable across runs.
func FormatToolSchemas(toolsList []tools.Tool) string {
	if len(toolsList) == 0 {
		return "No tools available.\n"
	}

	sorted := make([]tools.Tool, len(toolsList))
	copy(sorted, toolsList)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name() < sorted[j].Name()
	})

	var builder strings.Builder
	builder.WriteString("# AVAILABLE TOOLS\n\n")
	for _, tool := range sorted {
		builder.WriteString(FormatToolSchema(tool))
		builder.WriteString("\n")
	}
	return builder.String()
}

// SchemaToJSON renders a tool schema as indented JSON.
func SchemaToJSON(schema map[string]interface{}) (string, error) {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

// generateXMLExample creates a concrete tool call example from the tool's
// schema, filling required parameters with placeholder values.
func generateXMLExample(tool tools.Tool) string {
	var builder strings.Builder

	builder.WriteString("<tool>\n")
	builder.WriteString("<server_name>local</server_name>\n")
	builder.WriteString(fmt.Sprintf("<tool_name>%s</tool_name>\n", tool.Name()))
	builder.WriteString("<arguments>\n")

	schema := tool.Schema()
	properties, _ := schema["properties"].(map[string]interface{})
	required := requiredFields(schema)

	names := make([]string, 0, len(properties))
	for name := range properties {
		if required[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		prop, _ := properties[name].(map[string]interface{})
		builder.WriteString(fmt.Sprintf("  <%s>%s</%s>\n", name, placeholderFor(prop), name))
	}

	builder.WriteString("</arguments>\n")
	builder.WriteString("</tool>")

	return builder.String()
}

func requiredFields(schema map[string]interface{}) map[string]bool {
	out := make(map[string]bool)
	switch req := schema["required"].(type) {
	case []string:
		for _, f := range req {
			out[f] = true
		}
	case []interface{}:
		for _, f := range req {
			if s, ok := f.(string); ok {
				out[s] = true
			}
		}
	}
	return out
}

func placeholderFor(prop map[string]interface{}) string {
	propType, _ := prop["type"].(string)
	switch propType {
	case "integer", "number":
		return "1"
	case "boolean":
		return "true"
	default:
		return "value"
	}
}
