package config

import (
	"fmt"

	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/raw"
)

// Top-level section names of a configuration document.
const (
	SectionTimeHorizon = "time_horizon"
	SectionTimeSlices  = "time_slices"
	SectionClusters    = "clusters"
	SectionSettings    = "settings"
)

// Sections lists the recognized top-level sections in document order.
var Sections = []string{SectionTimeHorizon, SectionTimeSlices, SectionClusters, SectionSettings}

// Model is the unified, format-agnostic representation of one configuration
// document. An absent section is raw.Null.
type Model struct {
	Source      string
	TimeHorizon raw.Value
	TimeSlices  raw.Value
	Clusters    raw.Value
	Settings    raw.Value

	// Unknown holds top-level keys that are not recognized sections, in
	// document order.
	Unknown []string
}

// FromDocument splits a decoded document into its sections. The document
// must be a mapping; an empty document is treated as an empty mapping.
func FromDocument(source string, doc raw.Value) (*Model, error) {
	if doc.IsNull() {
		doc = raw.Map()
	}
	if doc.Kind() != raw.KindMap {
		return nil, fmt.Errorf("%s: configuration document must be a mapping, got %s", source, doc.Kind().TypeName())
	}

	m := &Model{Source: source}
	m.TimeHorizon, _ = doc.Get(SectionTimeHorizon)
	m.TimeSlices, _ = doc.Get(SectionTimeSlices)
	m.Clusters, _ = doc.Get(SectionClusters)
	m.Settings, _ = doc.Get(SectionSettings)
	m.Unknown = issue.ExtraKeys(doc.Keys(), Sections...)
	return m, nil
}
