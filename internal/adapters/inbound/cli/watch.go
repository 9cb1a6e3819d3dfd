package cli

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/config"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/gitinfo"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/history"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/parser"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/scanner"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/tui"
	"github.com/boundary-cli/boundary/internal/application"
	"github.com/boundary-cli/boundary/internal/domain"
)

const watchDebounce = 300 * time.Millisecond

func newWatchCmd(logger func() *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run the analysis whenever a source file changes",
		Long:  "Watch the project tree and re-analyze on save, reusing parsed files whose content did not change. Violation locations point at the import statement that caused them.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cache, err := lru.New[string, *domain.ParsedFile](4096)
			if err != nil {
				return err
			}
			svc := application.NewAnalyzeService(
				scanner.New(),
				&cachingRegistry{inner: parser.NewRegistry(nil), cache: cache},
				config.New(),
				history.New(),
				gitinfo.New(),
				logger(),
			)

			run := func() {
				res, err := svc.Analyze(absPath)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "analysis failed: %v\n", err)
					return
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderAnalysis(res))
			}
			run()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()
			if err := watchTree(watcher, absPath); err != nil {
				return err
			}

			var timer *time.Timer
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Op.Has(fsnotify.Create) {
						if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
							_ = watchTree(watcher, ev.Name)
						}
					}
					if _, isSource := parser.LanguageForFile(ev.Name); !isSource {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(watchDebounce, run)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
				}
			}
		},
	}
	return cmd
}

// watchTree registers a directory and all its descendants, skipping the
// directories the scanner skips.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		switch d.Name() {
		case "vendor", "node_modules", ".git", "dist", "bin", "target", ".boundary":
			if path != root {
				return filepath.SkipDir
			}
		}
		return watcher.Add(path)
	})
}

// cachingRegistry wraps the parser registry with an LRU of parsed files
// keyed by path and content hash, so an unchanged file is parsed once
// across watch iterations.
type cachingRegistry struct {
	inner *parser.Registry
	cache *lru.Cache[string, *domain.ParsedFile]
}

func (r *cachingRegistry) ForFile(path string) domain.SourceParser {
	p := r.inner.ForFile(path)
	if p == nil {
		return nil
	}
	return &cachingParser{SourceParser: p, cache: r.cache}
}

type cachingParser struct {
	domain.SourceParser
	cache *lru.Cache[string, *domain.ParsedFile]
}

func (p *cachingParser) Parse(path string, src []byte) (*domain.ParsedFile, error) {
	h := fnv.New64a()
	_, _ = h.Write(src)
	key := fmt.Sprintf("%s#%x", path, h.Sum64())

	if pf, ok := p.cache.Get(key); ok {
		return pf, nil
	}
	pf, err := p.SourceParser.Parse(path, src)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, pf)
	return pf, nil
}
