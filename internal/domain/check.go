package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Problem messages, in cascade order.
const (
	MsgMissingNumber         = "Missing number"
	MsgMissingRoute          = "Missing route"
	MsgWrongDirection        = "Wrong direction"
	MsgWrongNumberExiting    = "Wrong number when exiting"
	MsgWrongNumberEntering   = "Wrong number when entering"
	MsgLinkOnOffBoundary     = "P&ID No. not blank in off-boundary connector"
	MsgMissingLinkOffDrawing = "Missing P&ID No. in off-drawing connector"
)

// CheckConfig holds the numbering convention the checks compare against.
type CheckConfig struct {
	NumberDigits int // characters of a sheet number, e.g. 4 for "0312"
	UnitDigits   int // leading characters of a sheet number naming the unit
	StartUnit    int // sheets of lower units are legends and are skipped
}

// DefaultCheckConfig matches the usual four digit unit/sequence numbering.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{NumberDigits: 4, UnitDigits: 2, StartUnit: 1}
}

// Problem is one finding against one connector.
type Problem struct {
	Message string
	Tag     string
	Sheet   string
	Handle  string
	X       float64
	Y       float64
}

func (p Problem) String() string {
	return fmt.Sprintf("[%s] %s: %s (%.2f, %.2f)", p.Sheet, p.Tag, p.Message, p.X, p.Y)
}

// CheckRun is one recorded validation pass.
type CheckRun struct {
	ID           string
	SessionID    string
	Source       string
	At           time.Time
	Sheets       int
	Connectors   int
	ProblemCount int
	// Problems is empty in run listings.
	Problems []Problem
}

// CheckMainConnectors runs the main connector cascade. Each connector
// yields at most one problem; the first failing rule wins. A missing
// attribute or property becomes the connector's problem and the batch
// continues.
func CheckMainConnectors(conns []*MainConnector, cfg CheckConfig) []Problem {
	var problems []Problem
	for _, c := range conns {
		msg, err := checkMain(c, cfg)
		if err != nil {
			msg = errorMessage(err)
		}
		if msg != "" {
			problems = append(problems, newProblem(c.Connector, msg))
		}
	}
	return problems
}

func checkMain(c *MainConnector, cfg CheckConfig) (string, error) {
	number, skip, err := sheetNumber(c.Connector, cfg)
	if err != nil || skip {
		return "", err
	}

	tag, err := c.Tag()
	if err != nil {
		return "", err
	}
	if tag == "" {
		return MsgMissingNumber, nil
	}

	dir, err := c.Direction()
	if err != nil {
		return "", err
	}
	if dir == DirectionUnknown {
		return MsgMissingRoute, nil
	}
	isTo := dir == DirectionTo
	isFrom := dir == DirectionFrom

	entering, err := c.IsEntering()
	if err != nil {
		return "", err
	}
	if entering != isFrom {
		return MsgWrongDirection, nil
	}

	matched := firstN(tag, cfg.NumberDigits) == number
	if isTo && !matched {
		return MsgWrongNumberExiting, nil
	}

	offDrawing, err := c.IsOffDrawing()
	if err != nil {
		return "", err
	}
	if offDrawing && isFrom && matched {
		return MsgWrongNumberEntering, nil
	}

	link, err := c.LinkDrawing()
	if err != nil {
		return "", err
	}
	if !offDrawing && link != "" {
		return MsgLinkOnOffBoundary, nil
	}
	if offDrawing && link == "" {
		return MsgMissingLinkOffDrawing, nil
	}
	return "", nil
}

// CheckUtilityConnectors only requires utility connectors to be numbered.
func CheckUtilityConnectors(conns []*Connector, cfg CheckConfig) []Problem {
	var problems []Problem
	for _, c := range conns {
		_, skip, err := sheetNumber(c, cfg)
		if err == nil && skip {
			continue
		}
		var tag string
		if err == nil {
			tag, err = c.Tag()
		}
		switch {
		case err != nil:
			problems = append(problems, newProblem(c, errorMessage(err)))
		case tag == "":
			problems = append(problems, newProblem(c, MsgMissingNumber))
		}
	}
	return problems
}

// Excluded reports whether c is skipped by the checks: it lies outside
// every sheet, on an untitled sheet, or on a sheet below the start unit.
func Excluded(c *Connector, cfg CheckConfig) bool {
	_, skip, err := sheetNumber(c, cfg)
	return err == nil && skip
}

// sheetNumber returns the owning sheet's number and whether the connector
// is exempt from numbering checks.
func sheetNumber(c *Connector, cfg CheckConfig) (string, bool, error) {
	sheet := c.Sheet()
	if sheet == nil || !sheet.HasTitle() {
		return "", true, nil
	}
	if _, err := sheet.Tag(); err != nil {
		return "", false, err
	}
	number := sheet.DrawingNumber(cfg.NumberDigits)
	n, err := SplitNumber(number, cfg.UnitDigits)
	if err != nil {
		// Not a numbered drawing.
		return number, true, nil
	}
	return number, n.Unit < cfg.StartUnit, nil
}

func sheetLabel(s *Sheet) string {
	if s == nil {
		return ""
	}
	if tag, err := s.Tag(); err == nil && tag != "" {
		return tag
	}
	return s.Number
}

func newProblem(c *Connector, msg string) Problem {
	tag, _ := c.Tag()
	pos := c.InsertionPoint()
	return Problem{
		Message: msg,
		Tag:     tag,
		Sheet:   sheetLabel(c.Sheet()),
		Handle:  c.Handle(),
		X:       Round2(pos.X),
		Y:       Round2(pos.Y),
	}
}

func errorMessage(err error) string {
	if key, ok := MissingKey(err); ok {
		return key
	}
	if errors.Is(err, ErrNoSheet) {
		return ErrNoSheet.Error()
	}
	return err.Error()
}

// Link pairs the exiting and entering connectors of one tag.
type Link struct {
	Tag          string
	FromSheet    string
	FromEndpoint string
	ToSheet      string
	ToEndpoint   string
}

func (l Link) String() string {
	return fmt.Sprintf("%s: [%s]%s -> [%s]%s", l.Tag, l.FromSheet, l.FromEndpoint, l.ToSheet, l.ToEndpoint)
}

// LinkConnectors pairs TO and FROM connectors sharing a tag. Tags used by
// more than two connectors are returned as duplicates. Excluded connectors
// and connectors whose attributes cannot be read are left out.
func LinkConnectors(conns []*MainConnector, cfg CheckConfig) ([]Link, []string) {
	groups := make(map[string][]*MainConnector)
	for _, c := range conns {
		if Excluded(c.Connector, cfg) {
			continue
		}
		tag, err := c.Tag()
		if err != nil {
			continue
		}
		groups[tag] = append(groups[tag], c)
	}

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var links []Link
	var duplicates []string
	for _, tag := range tags {
		group := groups[tag]
		if len(group) > 2 {
			duplicates = append(duplicates, tag)
			continue
		}
		var exiting, entering *MainConnector
		for _, c := range group {
			switch d, _ := c.Direction(); d {
			case DirectionFrom:
				entering = c
			case DirectionTo:
				exiting = c
			}
		}
		if exiting == nil || entering == nil {
			continue
		}
		origin, _ := entering.Endpoint()
		destination, _ := exiting.Endpoint()
		links = append(links, Link{
			Tag:          tag,
			FromSheet:    lastN(sheetLabel(exiting.Sheet()), cfg.NumberDigits),
			FromEndpoint: origin,
			ToSheet:      lastN(sheetLabel(entering.Sheet()), cfg.NumberDigits),
			ToEndpoint:   destination,
		})
	}
	return links, duplicates
}

// Loop collects the instrument tags of one control loop.
type Loop struct {
	Name string
	Tags []string
}

// GroupLoops groups instrument bubbles by loop name, sorted by name.
// Non-instrument bubbles are left out.
func GroupLoops(bubbles []*Bubble) ([]Loop, error) {
	byName := make(map[string][]string)
	var names []string
	for _, b := range bubbles {
		code, err := b.Code()
		if err != nil {
			return nil, err
		}
		if !code.IsInstrument() {
			continue
		}
		name, err := b.LoopName()
		if err != nil {
			return nil, err
		}
		tag, err := b.Tag()
		if err != nil {
			return nil, err
		}
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = append(byName[name], tag)
	}
	sort.Strings(names)

	loops := make([]Loop, 0, len(names))
	for _, name := range names {
		loops = append(loops, Loop{Name: name, Tags: byName[name]})
	}
	return loops, nil
}
