// Package board turns USB identifiers into a board identity and uses the
// identity to pick the headers that belong to the detected hardware.
package board

import (
	"slices"

	"arduscan/internal/catalog"
	"arduscan/internal/model"
)

// Identifier resolves VID/PID pairs against the catalog's board tables.
type Identifier struct {
	boards *catalog.Boards
}

// NewIdentifier creates an Identifier over cat's board tables.
func NewIdentifier(cat *catalog.Catalog) *Identifier {
	return &Identifier{boards: &cat.Boards}
}

// Describe returns a human-readable board guess.
// Precedence: missing ids, exact pair, first-party vendor, clone vendor, unmapped.
func (id *Identifier) Describe(vid, pid uint16) string {
	if vid == 0 || pid == 0 {
		return id.boards.NoIDs.Description
	}
	if e, ok := id.boards.Exact[catalog.VIDPID{VID: vid, PID: pid}]; ok {
		return e.Description
	}
	if id.boards.IsFirstParty(vid) {
		return id.boards.FirstPartyUnknown.Description
	}
	if e, ok := id.boards.Clones[vid]; ok {
		return e.Description
	}
	return id.boards.Unmapped.Description
}

// ShortName returns the terse token used for banners and variant lookup.
// Exact entries without a short name fall through to the vendor rules.
func (id *Identifier) ShortName(vid, pid uint16) string {
	if vid == 0 || pid == 0 {
		return id.boards.NoIDs.ShortName
	}
	if e, ok := id.boards.Exact[catalog.VIDPID{VID: vid, PID: pid}]; ok && e.ShortName != "" {
		return e.ShortName
	}
	if e, ok := id.boards.Clones[vid]; ok {
		return e.ShortName
	}
	if id.boards.IsFirstParty(vid) {
		return id.boards.FirstPartyUnknown.ShortName
	}
	return id.boards.Unmapped.ShortName
}

// Variants returns the variant tokens for a short name, in priority order.
func (id *Identifier) Variants(shortName string) []string {
	return slices.Clone(id.boards.Variants[shortName])
}

// Identify builds the full identity for a pair.
func (id *Identifier) Identify(vid, pid uint16) model.BoardIdentity {
	short := id.ShortName(vid, pid)
	return model.BoardIdentity{
		ShortName:     short,
		Description:   id.Describe(vid, pid),
		VariantTokens: id.Variants(short),
	}
}

// SelectDetectedPort picks the port that drives matching: the first port from
// a first-party vendor, else the first port. Returns nil when there are none.
func (id *Identifier) SelectDetectedPort(ports []model.ComPort) *model.ComPort {
	if len(ports) == 0 {
		return nil
	}
	for i := range ports {
		if id.boards.IsFirstParty(ports[i].VID) {
			p := ports[i]
			return &p
		}
	}
	p := ports[0]
	return &p
}
