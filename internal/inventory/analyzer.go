// Package inventory runs a complete scan: header discovery, port
// enumeration, board matching, friend resolution and flag composition.
package inventory

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"arduscan/internal/board"
	"arduscan/internal/catalog"
	"arduscan/internal/flags"
	"arduscan/internal/model"
	"arduscan/internal/ports"
	"arduscan/internal/scan"
)

// Options tune an analysis run.
type Options struct {
	MatchedOnly bool
}

// Analyzer assembles an Inventory from a base directory and an enumerator.
type Analyzer struct {
	cat     *catalog.Catalog
	scanner *scan.Scanner
	friends *scan.FriendResolver
	ident   *board.Identifier
	enum    ports.Enumerator
	logger  *log.Logger
	opts    Options
}

// NewAnalyzer wires the pipeline. enum may be nil, meaning no ports.
func NewAnalyzer(cat *catalog.Catalog, enum ports.Enumerator, logger *log.Logger, opts Options) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{
		cat:     cat,
		scanner: scan.NewScanner(cat, logger),
		friends: scan.NewFriendResolver(logger),
		ident:   board.NewIdentifier(cat),
		enum:    enum,
		logger:  logger,
		opts:    opts,
	}
}

// Identifier exposes the board identifier used by the analyzer.
func (a *Analyzer) Identifier() *board.Identifier {
	return a.ident
}

// Analyze scans baseDir and the attached ports. A missing baseDir is the only
// fatal condition; everything else degrades to empty results.
func (a *Analyzer) Analyze(ctx context.Context, baseDir string) (*model.Inventory, error) {
	if err := scan.CheckRoot(baseDir); err != nil {
		return nil, err
	}

	var (
		scanned   []scan.KindRecords
		portList  []model.ComPort
		available bool
	)

	// Enumeration and filesystem scanning are independent
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scanned, err = a.scanner.ScanAll(gctx, baseDir, a.cat.Kinds)
		return err
	})
	g.Go(func() error {
		portList, available = ports.Collect(gctx, a.enum, a.logger)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", baseDir, err)
	}

	inv := &model.Inventory{
		BaseDir:        baseDir,
		Ports:          portList,
		PortsAvailable: available,
		Detected:       a.ident.SelectDetectedPort(portList),
	}
	if inv.Detected != nil {
		inv.Board = a.ident.Identify(inv.Detected.VID, inv.Detected.PID)
	}
	inv.Banner = BannerTitle(inv)

	for _, kr := range scanned {
		inv.Kinds = append(inv.Kinds, a.analyzeKind(ctx, kr, inv.Detected))
	}

	a.logger.Debug("analysis complete", "base", baseDir, "ports", len(portList), "board", inv.Board.ShortName)
	return inv, nil
}

func (a *Analyzer) analyzeKind(ctx context.Context, kr scan.KindRecords, detected *model.ComPort) model.KindResult {
	res := model.KindResult{
		Kind:    kr.Spec.Kind,
		Records: kr.Records,
		Match:   a.ident.Match(kr.Records, detected),
	}

	var extras []string
	if len(kr.Spec.Friends) > 0 {
		res.Friends = make(map[string][]model.FriendStatus, len(kr.Records))
		for _, rec := range kr.Records {
			root := scan.SearchRoot(rec.IncludeDir, kr.Spec.FriendRootUp)
			statuses := a.friends.Resolve(ctx, rec.IncludeDir, kr.Spec.Friends, root)
			res.Friends[rec.HeaderPath] = statuses
			extras = append(extras, scan.ExtraIncludeDirs(rec.IncludeDir, statuses)...)
		}
	}

	res.Flags = flags.Compose(res.Match, extras, flags.Options{MatchedOnly: a.opts.MatchedOnly})
	return res
}

// BannerTitle is "ARDUINO <short>" for the detected port, or "ARDUINO SCAN".
func BannerTitle(inv *model.Inventory) string {
	if inv.Detected == nil || inv.Board.ShortName == "" {
		return "ARDUINO SCAN"
	}
	return "ARDUINO " + inv.Board.ShortName
}
