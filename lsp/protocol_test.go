package lsp

import (
	"encoding/json"
	"testing"
)

func TestServerCapabilitiesBoolOrObject(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		definition bool
		signature  bool
	}{
		{"booleans", `{"definitionProvider": true, "signatureHelpProvider": false}`, true, false},
		{"objects", `{"definitionProvider": {}, "signatureHelpProvider": {"triggerCharacters": ["("]}}`, true, true},
		{"absent", `{}`, false, false},
		{"null", `{"definitionProvider": null}`, false, false},
	}

	for _, tc := range tests {
		var caps ServerCapabilities
		if err := json.Unmarshal([]byte(tc.body), &caps); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", tc.name, err)
		}
		if bool(caps.DefinitionProvider) != tc.definition {
			t.Fatalf("%s: expected definition=%v, got %v", tc.name, tc.definition, bool(caps.DefinitionProvider))
		}
		if bool(caps.SignatureHelpProvider) != tc.signature {
			t.Fatalf("%s: expected signatureHelp=%v, got %v", tc.name, tc.signature, bool(caps.SignatureHelpProvider))
		}
	}
}

func TestInitializeResultParsing(t *testing.T) {
	body := `{"capabilities": {"definitionProvider": true, "hoverProvider": true}}`

	var init InitializeResult
	if err := json.Unmarshal([]byte(body), &init); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !init.Capabilities.DefinitionProvider || init.Capabilities.SignatureHelpProvider {
		t.Fatalf("unexpected capabilities: %+v", init.Capabilities)
	}
}

func TestCapabilitiesUnknownLanguage(t *testing.T) {
	m := NewManager(t.TempDir())
	if _, ok := m.Capabilities("Gemtext"); ok {
		t.Fatalf("expected no capabilities for unknown language")
	}
}
