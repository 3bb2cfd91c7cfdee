package application

import "pnidkit/internal/domain"

// Re-export domain types for use by adapters
type (
	Sheet     = domain.Sheet
	Problem   = domain.Problem
	CheckRun  = domain.CheckRun
	Link      = domain.Link
	Loop      = domain.Loop
	LineTag   = domain.LineTag
	Point     = domain.Point
	Placement = domain.Placement
)

// ParseLineTag splits a pipe line tag into its fields. A tag that does not
// parse yields a zero LineTag.
func ParseLineTag(text string) LineTag {
	return domain.ParseLineTag(text)
}

// GenLineTag renders line tag fields, writing ? for missing ones
func GenLineTag(service, number, size, spec, insulation string) string {
	return domain.GenLineTag(service, number, size, spec, insulation)
}
