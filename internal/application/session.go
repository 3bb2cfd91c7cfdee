package application

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pnidkit/internal/config"
	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

// blockPatterns are the compiled [blocks] patterns of a config.
type blockPatterns struct {
	border  *regexp.Regexp
	title   *regexp.Regexp
	main    *regexp.Regexp
	utility *regexp.Regexp
	bubble  *regexp.Regexp
	line    *regexp.Regexp
}

func compilePatterns(b config.Blocks) (blockPatterns, error) {
	var p blockPatterns
	for _, f := range []struct {
		field string
		expr  string
		dst   **regexp.Regexp
	}{
		{"border", b.Border, &p.border},
		{"title", b.Title, &p.title},
		{"main_connector", b.MainConnector, &p.main},
		{"utility_connector", b.UtilityConnector, &p.utility},
		{"bubble", b.Bubble, &p.bubble},
		{"line", b.Line, &p.line},
	} {
		re, err := ValidatePattern(f.field, f.expr)
		if err != nil {
			return blockPatterns{}, err
		}
		*f.dst = re
	}
	return p, nil
}

// Session holds everything derived from one load of a document: the symbol
// index and the laid out sheets. It is not safe for concurrent use.
// Components returned by an earlier load are stale after Load runs again.
type Session struct {
	ID string

	doc      ports.Document
	cfg      config.Config
	log      zerolog.Logger
	patterns blockPatterns

	index   *domain.SymbolIndex
	sheets  []*domain.Sheet
	dropped []domain.Placement
}

// NewSession binds a document and config. Nothing is read until Load.
func NewSession(doc ports.Document, cfg config.Config, log zerolog.Logger) (*Session, error) {
	patterns, err := compilePatterns(cfg.Blocks)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &Session{
		ID:       id,
		doc:      doc,
		cfg:      cfg,
		log:      log.With().Str("session", id).Logger(),
		patterns: patterns,
	}, nil
}

func (s *Session) Document() ports.Document { return s.doc }
func (s *Session) Config() config.Config    { return s.cfg }
func (s *Session) Logger() *zerolog.Logger  { return &s.log }

// Loaded reports whether Load has completed.
func (s *Session) Loaded() bool {
	return s.index != nil && s.sheets != nil
}

// Load re-reads the document when it supports it, then rebuilds the
// index and the sheets.
func (s *Session) Load(ctx context.Context) error {
	s.index = nil
	s.sheets = nil
	s.dropped = nil
	if r, ok := s.doc.(ports.Reloader); ok {
		if err := r.Reload(ctx); err != nil {
			return fmt.Errorf("failed to reload drawing: %w", err)
		}
	}
	if err := s.BuildIndex(ctx); err != nil {
		return err
	}
	if err := s.BuildSheets(ctx); err != nil {
		return err
	}
	s.log.Info().
		Str("drawing", s.doc.Name()).
		Int("placements", s.index.Len()).
		Int("sheets", len(s.sheets)).
		Msg("drawing loaded")
	return nil
}

// BuildIndex enumerates the document's placements and groups them by name.
func (s *Session) BuildIndex(ctx context.Context) error {
	placements, err := s.doc.Placements(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate placements: %w", err)
	}
	s.index = domain.BuildIndex(placements)
	if s.log.GetLevel() <= zerolog.DebugLevel {
		for _, name := range s.index.Names() {
			s.log.Debug().Str("block", name).Int("count", s.index.Count(name)).Msg("indexed")
		}
	}
	return nil
}

// BuildSheets creates a sheet per border, attaches titles, lays the sheets
// out and numbers them.
func (s *Session) BuildSheets(ctx context.Context) error {
	if s.index == nil {
		return ErrNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	borders := s.index.Search(s.patterns.border)
	sheets := make([]*domain.Sheet, 0, len(borders))
	for _, b := range borders {
		sheet, err := domain.NewSheet(b)
		if err != nil {
			return fmt.Errorf("failed to build sheets: %w", err)
		}
		sheets = append(sheets, sheet)
	}

	s.dropped = domain.AttachTitles(sheets, s.index.Search(s.patterns.title))
	for _, t := range s.dropped {
		s.log.Warn().
			Str("handle", t.Handle()).
			Stringer("at", t.InsertionPoint()).
			Msg("title block dropped: outside every sheet or sheet already titled")
	}

	ordered, err := domain.SortSheets(sheets)
	if err != nil {
		return fmt.Errorf("failed to lay out sheets: %w", err)
	}
	domain.NumberSheets(ordered, s.cfg.Drawing.StartUnit, s.cfg.Drawing.StartSequence)
	s.sheets = ordered
	return nil
}

// Index returns the symbol index of the last load.
func (s *Session) Index() *domain.SymbolIndex {
	return s.index
}

// Sheets returns the sheets in layout order.
func (s *Session) Sheets() []*domain.Sheet {
	return s.sheets
}

// DroppedTitles returns title blocks no sheet accepted.
func (s *Session) DroppedTitles() []domain.Placement {
	return s.dropped
}

// Locate returns the sheet containing p, or nil.
func (s *Session) Locate(p domain.Point) *domain.Sheet {
	return domain.Locate(s.sheets, p)
}

func (s *Session) locate(c *domain.Component) {
	if c.Locate(s.sheets) == nil {
		s.log.Warn().
			Str("handle", c.Handle()).
			Str("kind", c.Kind.String()).
			Stringer("at", c.Position()).
			Msg("component outside every sheet")
	}
}

func (s *Session) MainConnectors() []*domain.MainConnector {
	placements := s.index.Search(s.patterns.main)
	conns := make([]*domain.MainConnector, 0, len(placements))
	for _, p := range placements {
		c := domain.NewMainConnector(p)
		s.locate(&c.Component)
		conns = append(conns, c)
	}
	return conns
}

func (s *Session) UtilityConnectors() []*domain.Connector {
	placements := s.index.Search(s.patterns.utility)
	conns := make([]*domain.Connector, 0, len(placements))
	for _, p := range placements {
		c := domain.NewConnector(p, domain.KindUtilityConnector)
		s.locate(&c.Component)
		conns = append(conns, c)
	}
	return conns
}

func (s *Session) Bubbles() []*domain.Bubble {
	placements := s.index.Search(s.patterns.bubble)
	bubbles := make([]*domain.Bubble, 0, len(placements))
	for _, p := range placements {
		b := domain.NewBubble(p)
		s.locate(&b.Component)
		bubbles = append(bubbles, b)
	}
	return bubbles
}

// Lines wraps every pipe tag. Placements without a TAG attribute are
// skipped and logged.
func (s *Session) Lines() []*domain.Line {
	placements := s.index.Search(s.patterns.line)
	lines := make([]*domain.Line, 0, len(placements))
	for _, p := range placements {
		l, err := domain.NewLine(p)
		if err != nil {
			s.log.Warn().Err(err).Str("handle", p.Handle()).Msg("line skipped")
			continue
		}
		s.locate(&l.Component)
		lines = append(lines, l)
	}
	return lines
}
