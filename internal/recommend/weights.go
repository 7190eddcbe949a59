package recommend

import "github.com/alexanderramin/releaseplan/internal/capacity"

type Weights struct {
	UtilizationFit float64
	SkillMatch     float64
	Continuity     float64
	Proximity      float64
}

func DefaultWeights() Weights {
	return Weights{
		UtilizationFit: 50,
		SkillMatch:     20,
		Continuity:     15,
		Proximity:      15,
	}
}

func (w Weights) total() float64 {
	return w.UtilizationFit + w.SkillMatch + w.Continuity + w.Proximity
}

// Options configures BestDevWindowFix. The zero value uses DefaultWeights.
type Options struct {
	Capacity capacity.Options
	Weights  Weights
}

func (o Options) weights() Weights {
	if o.Weights.total() <= 0 {
		return DefaultWeights()
	}
	return o.Weights
}

func (o Options) trace(name string, fields map[string]any) {
	if o.Capacity.Tracer == nil {
		return
	}
	o.Capacity.Tracer.Trace(capacity.TraceEvent{Name: name, Fields: fields})
}
