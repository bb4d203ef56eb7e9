package session

import (
	"strings"
	"unicode"
)

// ModelPrefix starts a model-switch directive.
const ModelPrefix = "model:"

var exitKeywords = []string{"exit", "quit", "bye"}

type inputKind int

const (
	inputChat inputKind = iota
	inputEmpty
	inputExit
	inputModel
	inputInvalidModel
)

type input struct {
	kind inputKind
	text string
}

// parseInput classifies one line typed at the prompt.
func parseInput(line string) input {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return input{kind: inputEmpty}
	}

	for _, kw := range exitKeywords {
		if strings.EqualFold(trimmed, kw) {
			return input{kind: inputExit}
		}
	}

	if len(trimmed) >= len(ModelPrefix) && strings.EqualFold(trimmed[:len(ModelPrefix)], ModelPrefix) {
		name := strings.TrimSpace(trimmed[len(ModelPrefix):])
		if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
			return input{kind: inputInvalidModel}
		}
		return input{kind: inputModel, text: name}
	}

	return input{kind: inputChat, text: line}
}
