package server

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/rgehrsitz/taxview/internal/config"
	"github.com/rgehrsitz/taxview/internal/domain"
	"go.uber.org/zap"
)

// FactsStore holds the active calculator. Requests take one snapshot with
// Calculator(); a reload swaps the pointer without blocking them.
type FactsStore struct {
	parser  *config.TaxFactsParser
	logger  *zap.Logger
	current atomic.Pointer[calculation.BracketTaxCalculator]
}

// NewFactsStore validates facts and makes them the active table
func NewFactsStore(facts *domain.TaxFacts, logger *zap.Logger) (*FactsStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FactsStore{parser: config.NewTaxFactsParser(), logger: logger}
	if err := s.Replace(facts); err != nil {
		return nil, err
	}
	return s, nil
}

// Calculator returns the active calculator
func (s *FactsStore) Calculator() *calculation.BracketTaxCalculator {
	return s.current.Load()
}

// Replace swaps in a new table. An invalid table leaves the current one active.
func (s *FactsStore) Replace(facts *domain.TaxFacts) error {
	if facts == nil {
		return errors.New("tax facts are required")
	}
	calc, err := calculation.NewBracketTaxCalculator(*facts)
	if err != nil {
		return errors.Wrap(err, "replace tax facts")
	}
	calc.SetLogger(s.logger.Sugar())
	s.current.Store(calc)
	return nil
}

// Reload re-reads the facts file
func (s *FactsStore) Reload(path string) error {
	facts, err := s.parser.LoadFromFile(path)
	if err != nil {
		return errors.Wrap(err, "reload tax facts")
	}
	return s.Replace(facts)
}

// Watch reloads path whenever it is written or recreated, until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func (s *FactsStore) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create facts watcher")
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "watch %s", target)
	}
	s.logger.Info("Watching tax facts", zap.String("path", target))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.Reload(target); err != nil {
				s.logger.Warn("Keeping previous tax facts", zap.String("path", target), zap.Error(err))
				continue
			}
			facts := s.Calculator().Facts
			s.logger.Info("Reloaded tax facts",
				zap.String("path", target),
				zap.Int("tax_year", facts.TaxYear),
				zap.Int("brackets", len(facts.Brackets)))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Tax facts watcher error", zap.Error(err))
		}
	}
}
