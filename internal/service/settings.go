package service

import (
	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/recommend"
)

// EngineSettings carries the tunables passed to the planning engine on
// every call. The zero value uses engine defaults.
type EngineSettings struct {
	VelocityPerDay float64
	Weights        recommend.Weights
	InsightLimit   int
	Tracer         capacity.Tracer
}

func (s EngineSettings) capacityOptions(rel domain.Release) capacity.Options {
	return capacity.Options{
		Mapping:        rel.StoryPointMapping,
		VelocityPerDay: s.VelocityPerDay,
		Tracer:         s.Tracer,
	}
}

func (s EngineSettings) recommendOptions(rel domain.Release) recommend.Options {
	return recommend.Options{
		Capacity: s.capacityOptions(rel),
		Weights:  s.Weights,
	}
}
