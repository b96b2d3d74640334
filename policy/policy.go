// Package policy builds the canonical upstream request for a turn. Every
// request carries an immutable, server-controlled system instruction block;
// no code path lets client input alter or omit it.
package policy

import "github.com/june-assistant/relay/core/protocol"

// Injector prepends the canonical system instruction to each user turn.
// The instruction text is fixed at construction and never merged with
// client-supplied content.
type Injector struct {
	system string
}

// New creates an Injector for the given system instruction text. An empty
// text falls back to the built-in JUNE instruction.
func New(system string) *Injector {
	if system == "" {
		system = SystemPrompt
	}
	return &Injector{system: system}
}

// System returns the instruction text the injector was built with.
func (i *Injector) System() string {
	return i.system
}

// Canonical builds the exact two-message payload for a turn: the system
// instruction followed by the user content, in that order.
func (i *Injector) Canonical(content string) []protocol.Message {
	return []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, i.system),
		protocol.NewMessage(protocol.RoleUser, content),
	}
}
