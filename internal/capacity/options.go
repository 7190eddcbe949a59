package capacity

import "github.com/alexanderramin/releaseplan/internal/domain"

// Options carries the optional knobs shared by every capacity calculation.
// The zero value is ready to use.
type Options struct {
	// Mapping converts story points to days for tickets without EffortDays.
	Mapping domain.StoryPointMapping
	// VelocityPerDay scales team-days into capacity points. Zero means 1.0.
	VelocityPerDay float64
	Tracer         Tracer
}

func (o Options) tracer() Tracer {
	if o.Tracer == nil {
		return NoopTracer{}
	}
	return o.Tracer
}

func (o Options) velocityPerDay() float64 {
	if o.VelocityPerDay <= 0 {
		return 1.0
	}
	return o.VelocityPerDay
}
