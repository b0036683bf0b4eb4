// Package catalog holds the static tables that drive a scan: which header
// kinds exist and how they are found, which friends they carry, and how USB
// identifiers map to boards. A Catalog is built once at startup and only read
// afterwards.
package catalog

import (
	"maps"
	"slices"
	"strings"

	"arduscan/internal/model"
)

// Rule selects a kind-specific acceptance check applied after glob matching.
type Rule int

const (
	RuleNone Rule = iota
	// RuleCoreSegment requires a path segment named "cores".
	RuleCoreSegment
	// RuleToolchain requires an "include" parent and a toolchain token in the path.
	RuleToolchain
)

// KindSpec describes how one header kind is discovered and presented.
type KindSpec struct {
	Kind model.Kind

	Title           string // Section title
	DiscoveredLabel string // "Discovered X"
	NoneFound       string // Message when nothing was found
	ItemLabel       string // Per-item label ("BSP #1")
	HeaderDesc      string // Header name used in "<desc> full path"
	FlagsLabel      string // Label in the suggested flags section

	Patterns []string // Base-name globs
	Exclude  []string // Base names rejected even when a pattern matches
	Rule     Rule

	Friends []string
	// FriendRootUp is how many levels above the include dir the fallback
	// friend search starts. Zero disables the fallback search.
	FriendRootUp int
	FriendsLabel string
}

// VIDPID is a USB vendor/product identifier pair.
type VIDPID struct {
	VID uint16
	PID uint16
}

// BoardEntry is a description and banner short name.
// An empty ShortName defers short-name resolution to the vendor fallbacks.
type BoardEntry struct {
	Description string
	ShortName   string
}

// Boards holds the USB identification tables.
type Boards struct {
	Exact      map[VIDPID]BoardEntry
	FirstParty []uint16
	Clones     map[uint16]BoardEntry
	// Variants maps a short name to variant tokens in priority order.
	Variants map[string][]string

	NoIDs             BoardEntry
	Unmapped          BoardEntry
	FirstPartyUnknown BoardEntry
}

// IsFirstParty reports whether vid belongs to a first-party board vendor.
func (b *Boards) IsFirstParty(vid uint16) bool {
	return slices.Contains(b.FirstParty, vid)
}

// Catalog is the complete set of tables used by a scan.
type Catalog struct {
	Kinds           []KindSpec
	ToolchainTokens []string
	CompilerNames   []string
	Boards          Boards
}

// Spec returns the KindSpec for k.
func (c *Catalog) Spec(k model.Kind) (KindSpec, bool) {
	for _, s := range c.Kinds {
		if s.Kind == k {
			return s, true
		}
	}
	return KindSpec{}, false
}

// WithVariants returns a copy of c whose variant table has overrides merged in.
// Short names are upper-cased; an empty token list removes the entry.
func (c *Catalog) WithVariants(overrides map[string][]string) *Catalog {
	out := c.clone()
	for short, tokens := range overrides {
		key := strings.ToUpper(strings.TrimSpace(short))
		if len(tokens) == 0 {
			delete(out.Boards.Variants, key)
			continue
		}
		out.Boards.Variants[key] = slices.Clone(tokens)
	}
	return out
}

// WithToolchainTokens returns a copy of c with extra toolchain tokens appended.
func (c *Catalog) WithToolchainTokens(extra []string) *Catalog {
	out := c.clone()
	for _, tok := range extra {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" || slices.Contains(out.ToolchainTokens, tok) {
			continue
		}
		out.ToolchainTokens = append(out.ToolchainTokens, tok)
	}
	return out
}

func (c *Catalog) clone() *Catalog {
	out := *c
	out.Kinds = slices.Clone(c.Kinds)
	out.ToolchainTokens = slices.Clone(c.ToolchainTokens)
	out.CompilerNames = slices.Clone(c.CompilerNames)
	out.Boards.Exact = maps.Clone(c.Boards.Exact)
	out.Boards.FirstParty = slices.Clone(c.Boards.FirstParty)
	out.Boards.Clones = maps.Clone(c.Boards.Clones)
	out.Boards.Variants = make(map[string][]string, len(c.Boards.Variants))
	for k, v := range c.Boards.Variants {
		out.Boards.Variants[k] = slices.Clone(v)
	}
	return &out
}
