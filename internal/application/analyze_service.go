// Package application orchestrates the analysis pipeline over the domain
// core and the outbound adapters.
package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/boundary-cli/boundary/internal/domain"
	"github.com/boundary-cli/boundary/internal/domain/checker"
	"github.com/boundary-cli/boundary/internal/domain/classify"
	"github.com/boundary-cli/boundary/internal/domain/graph"
	"github.com/boundary-cli/boundary/internal/domain/scoring"
)

// ParserRegistry selects the parser for a file, or nil when its language
// is disabled or unknown.
type ParserRegistry interface {
	ForFile(path string) domain.SourceParser
}

// AnalyzeService runs the full pipeline: scan, parallel parse, normalize,
// classify, build graph, score, detect violations.
type AnalyzeService struct {
	scanner domain.ProjectScanner
	parsers ParserRegistry
	loader  domain.ConfigLoader
	history domain.SnapshotStore
	commits domain.CommitResolver
	logger  *zap.Logger
}

func NewAnalyzeService(
	scanner domain.ProjectScanner,
	parsers ParserRegistry,
	loader domain.ConfigLoader,
	history domain.SnapshotStore,
	commits domain.CommitResolver,
	logger *zap.Logger,
) *AnalyzeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzeService{
		scanner: scanner,
		parsers: parsers,
		loader:  loader,
		history: history,
		commits: commits,
		logger:  logger,
	}
}

// Analyze builds the Project for root and computes scores, patterns and
// violations. Only parsing runs in parallel; everything after the merge is
// single-threaded and deterministic.
func (s *AnalyzeService) Analyze(root string) (*domain.AnalysisResult, error) {
	cfg, err := s.loader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return s.AnalyzeWithConfig(root, cfg)
}

// AnalyzeWithConfig runs the pipeline with an already-loaded configuration.
func (s *AnalyzeService) AnalyzeWithConfig(root string, cfg *domain.Config) (*domain.AnalysisResult, error) {
	start := time.Now()

	scan, err := s.scanner.Scan(root, cfg)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	s.logger.Debug("scanned project",
		zap.String("root", scan.Root),
		zap.Int("files", len(scan.Files)))

	parsed, diags := s.parseAll(scan)

	project, fileImports := graph.Normalize(scan.Root, scan.GoModulePath, parsed)
	project.Config = cfg
	project.Diagnostics = diags

	classifier, err := classify.New(cfg)
	if err != nil {
		return nil, err
	}
	classifier.ClassifyProject(project)
	graph.BuildEdges(project, fileImports)

	metrics := scoring.ComputeMetrics(project)
	stats := scoring.CollectStats(project, metrics, classify.MatchesPort)
	patterns := scoring.Fingerprints(stats)
	dims := scoring.ComputeDimensions(stats)

	result := &domain.AnalysisResult{
		Project:         project,
		Score:           scoring.BuildReport(dims, patterns, cfg.Scoring),
		Patterns:        patterns,
		Violations:      checker.Detect(project),
		ComponentCount:  stats.TotalReal,
		DependencyCount: len(project.Edges),
	}

	s.logger.Debug("analysis complete",
		zap.Int("components", result.ComponentCount),
		zap.Int("edges", result.DependencyCount),
		zap.Int("violations", len(result.Violations)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// parseAll fans file parsing out over a bounded worker pool. Each worker
// writes only its own slot; a per-file failure becomes a diagnostic and an
// empty slot, never a pipeline error.
func (s *AnalyzeService) parseAll(scan *domain.ScanResult) ([]*domain.ParsedFile, []domain.Diagnostic) {
	parsed := make([]*domain.ParsedFile, len(scan.Files))
	diags := make([]domain.Diagnostic, len(scan.Files))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())

	for i, file := range scan.Files {
		g.Go(func() error {
			p := s.parsers.ForFile(file.Path)
			if p == nil {
				return nil
			}
			src, err := os.ReadFile(filepath.Join(scan.Root, file.Path))
			if err != nil {
				diags[i] = domain.Diagnostic{File: file.Path, Message: err.Error()}
				return nil
			}
			pf, err := p.Parse(file.Path, src)
			if err != nil {
				diags[i] = domain.Diagnostic{File: file.Path, Message: err.Error()}
				return nil
			}
			parsed[i] = pf
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*domain.ParsedFile, 0, len(parsed))
	for _, pf := range parsed {
		if pf != nil {
			out = append(out, pf)
		}
	}
	var outDiags []domain.Diagnostic
	for _, d := range diags {
		if d.File != "" {
			outDiags = append(outDiags, d)
		}
	}
	return out, outDiags
}

// Record appends a snapshot of the result to the history store,
// best-effort, stamping the current commit when available.
func (s *AnalyzeService) Record(root string, res *domain.AnalysisResult) {
	if s.history == nil {
		return
	}
	snap := domain.Snapshot{
		Timestamp:            time.Now().Format(time.RFC3339),
		Root:                 res.Project.Root,
		Overall:              res.Score.Overall,
		LayerConformance:     res.Score.LayerConformance,
		DependencyCompliance: res.Score.DependencyCompliance,
		InterfaceCoverage:    res.Score.InterfaceCoverage,
		StructuralPresence:   res.Score.StructuralPresence,
	}
	if s.commits != nil {
		if hash, err := s.commits.CommitHash(root); err == nil {
			snap.CommitHash = hash
		}
	}
	if err := s.history.Append(res.Project.Root, snap); err != nil {
		s.logger.Debug("snapshot not recorded", zap.Error(err))
	}
}
