package board

import (
	"strings"

	"arduscan/internal/model"
)

// MatchVariants selects the record for the highest priority variant token.
// Tokens are tried in order; for each token the records are scanned in their
// original order and the first header path containing the token
// (case-insensitive) wins. Without tokens or a hit, Matched is nil and
// Remainder is the whole input.
func MatchVariants(records []model.HeaderRecord, tokens []string) model.MatchResult {
	all := append([]model.HeaderRecord{}, records...)
	if len(records) == 0 || len(tokens) == 0 {
		return model.MatchResult{Remainder: all}
	}

	for _, tok := range tokens {
		needle := strings.ToLower(tok)
		for i, rec := range records {
			if !strings.Contains(strings.ToLower(rec.HeaderPath), needle) {
				continue
			}
			matched := rec
			remainder := make([]model.HeaderRecord, 0, len(records)-1)
			remainder = append(remainder, records[:i]...)
			remainder = append(remainder, records[i+1:]...)
			return model.MatchResult{Matched: &matched, Remainder: remainder}
		}
	}

	return model.MatchResult{Remainder: all}
}

// Match resolves the detected port's variant tokens and matches records
// against them. A nil port never matches.
func (id *Identifier) Match(records []model.HeaderRecord, detected *model.ComPort) model.MatchResult {
	if detected == nil {
		return MatchVariants(records, nil)
	}
	short := id.ShortName(detected.VID, detected.PID)
	return MatchVariants(records, id.Variants(short))
}
