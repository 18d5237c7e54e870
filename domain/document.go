// Package domain contains core concepts of the document-sync broker.
// This file defines Document naming rules shared by the codec and the store.
package domain

import "strings"

// Document is a named text blob with whole-buffer overwrite semantics.
// There is no versioning: a write replaces content wholesale.
type Document struct {
	Name    string
	Content string
}

// forbidden substrings, matched literally with no path normalization
var forbiddenNameParts = []string{"..", "/", "\\"}

// ValidDocumentName reports whether a name may reach the storage collaborator.
// Blank names and names carrying traversal or separator characters never do.
func ValidDocumentName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, part := range forbiddenNameParts {
		if strings.Contains(name, part) {
			return false
		}
	}
	return true
}
