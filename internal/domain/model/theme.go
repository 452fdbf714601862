package model

import "strings"

// ThemeEntry is a theme as inventoried by the upstream sync stage. The
// detection engine treats the inventory as read-only input.
type ThemeEntry struct {
	Name        string    `json:"name"`
	Repo        string    `json:"repo"`
	Colorscheme string    `json:"colorscheme"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Variant is a named sub-theme with its own colorscheme and, once
// classified, a light/dark mode.
type Variant struct {
	Name        string      `json:"name"`
	Colorscheme string      `json:"colorscheme"`
	Mode        VariantMode `json:"mode,omitempty"`
}

// TreeItem is one entry of a repository file listing.
type TreeItem struct {
	Path string `json:"path"`
	Kind string `json:"type"` // "blob" for files, "tree" for directories.
}

// SafeRepo normalizes a raw repository identity for use as a cache and join
// key: surrounding whitespace and slashes are trimmed, as is a trailing
// ".git" suffix.
func SafeRepo(repo string) string {
	repo = strings.TrimSpace(repo)
	repo = strings.TrimSuffix(repo, ".git")
	return strings.Trim(repo, "/")
}
