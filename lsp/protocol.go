package lsp

import "encoding/json"

// JSON-RPC 2.0 framing types
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int            `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OptionFlag is a server capability that the protocol allows to be either a
// bare boolean or an options object. Any object form means the capability is
// provided.
type OptionFlag bool

func (f *OptionFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = OptionFlag(b)
		return nil
	}
	*f = string(data) != "null"
	return nil
}

// ServerCapabilities carries the subset of the initialize response the wrap
// heuristic cares about: capabilities characteristic of programming-language
// servers rather than document tooling.
type ServerCapabilities struct {
	DefinitionProvider    OptionFlag `json:"definitionProvider"`
	SignatureHelpProvider OptionFlag `json:"signatureHelpProvider"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}
