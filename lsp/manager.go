// Package lsp probes language servers for the capabilities the wrap
// heuristic treats as "this buffer is source code": go-to-definition and
// signature help. Servers are optional; a language with no installed server
// simply contributes no signal.
package lsp

import (
	"os/exec"
	"path/filepath"

	"autowrap/host"
)

// Known language server commands
var languageServers = map[string][]string{
	"Go":         {"gopls"},
	"Python":     {"pyright-langserver", "--stdio"},
	"TypeScript": {"typescript-language-server", "--stdio"},
	"JavaScript": {"typescript-language-server", "--stdio"},
	"Rust":       {"rust-analyzer"},
	"C":          {"clangd"},
	"C++":        {"clangd"},
}

type Manager struct {
	clients map[string]*Client
	caps    map[string]host.IntelCapabilities
	rootURI string
}

func NewManager(workDir string) *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		caps:    make(map[string]host.IntelCapabilities),
		rootURI: FileURI(workDir),
	}
}

// FileURI converts a file path to a file:// URI.
func FileURI(path string) string {
	absPath, _ := filepath.Abs(path)
	return "file://" + absPath
}

// Capabilities reports what the language's server advertises, starting the
// server on first use. ok is false when no server is known, installed, or
// startable for the language.
func (m *Manager) Capabilities(language string) (host.IntelCapabilities, bool) {
	if caps, ok := m.caps[language]; ok {
		return caps, true
	}

	serverCmd, ok := languageServers[language]
	if !ok {
		return host.IntelCapabilities{}, false
	}
	if _, err := exec.LookPath(serverCmd[0]); err != nil {
		return host.IntelCapabilities{}, false
	}

	client, err := NewClient(serverCmd[0], serverCmd[1:]...)
	if err != nil {
		return host.IntelCapabilities{}, false
	}

	init, err := client.Initialize(m.rootURI)
	if err != nil {
		client.Close()
		return host.IntelCapabilities{}, false
	}

	caps := host.IntelCapabilities{
		Definition:    bool(init.Capabilities.DefinitionProvider),
		SignatureHelp: bool(init.Capabilities.SignatureHelpProvider),
	}
	m.clients[language] = client
	m.caps[language] = caps
	return caps, true
}

// Close shuts down all language servers.
func (m *Manager) Close() {
	for _, client := range m.clients {
		client.Close()
	}
	m.clients = make(map[string]*Client)
	m.caps = make(map[string]host.IntelCapabilities)
}
