package scan

import (
	"context"

	"golang.org/x/sync/errgroup"

	"arduscan/internal/catalog"
	"arduscan/internal/model"
)

// KindRecords pairs a kind with its deduplicated records.
type KindRecords struct {
	Spec    catalog.KindSpec
	Records []model.HeaderRecord
}

// ScanAll scans every kind in specs concurrently and returns the results in
// the order of specs.
func (s *Scanner) ScanAll(ctx context.Context, root string, specs []catalog.KindSpec) ([]KindRecords, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	results := make([]KindRecords, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			recs, err := s.Scan(gctx, root, spec)
			if err != nil {
				return err
			}
			results[i] = KindRecords{Spec: spec, Records: recs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
