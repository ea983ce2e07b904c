// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"path/filepath"
	"strings"
)

// joinResolved joins root and name, appending defaultExt when name has no
// extension of its own. defaultExt must include the leading dot, or be
// empty to mean "no extension is appended".
func joinResolved(root, name, defaultExt string) string {
	if defaultExt != "" && filepath.Ext(name) == "" {
		name += defaultExt
	}
	return filepath.Join(root, name)
}

// withoutExt returns name with its extension removed, if any.
func withoutExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
