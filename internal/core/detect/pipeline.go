// Package detect verifies a physical order against a photo: an image
// reference goes in, a set of recognized menu labels comes out. Three
// tiers back the pipeline, from a fine-tuned food model down to a
// deterministic mock that always answers.
package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/smartserve/backend/internal/config"
	"github.com/smartserve/backend/internal/core/capability"
	"github.com/smartserve/backend/internal/core/model"
)

// Request is one detection unit of work.
type Request struct {
	ImageRef string
	Hint     string
}

const (
	TierFood    = "food-model"
	TierGeneric = "generic-remap"
	TierMock    = "mock"
)

// Pipeline is the capability-tiered detection entry point.
type Pipeline struct {
	executor *capability.Executor[Request, []string]
}

// NewPipeline wires the three detection tiers. Tier backends are
// constructed inside their probes so a failing initialization marks
// the tier unusable instead of propagating.
func NewPipeline(cfg config.DetectionConfig, ortLibrary string, registry *capability.Registry, timeout time.Duration) *Pipeline {
	var food *FoodDetector
	var generic *GenericDetector

	tiers := []capability.Tier[Request, []string]{
		{
			Name: TierFood,
			Probe: func() error {
				if cfg.FoodModelPath == "" {
					return fmt.Errorf("no food model configured")
				}
				d, err := NewFoodDetector(cfg.FoodModelPath, cfg.FoodLabelsPath, ortLibrary, cfg.Confidence)
				if err != nil {
					return err
				}
				food = d
				return nil
			},
			Run: func(ctx context.Context, req Request) ([]string, error) {
				return food.Detect(ctx, req.ImageRef)
			},
		},
		{
			Name: TierGeneric,
			Probe: func() error {
				if cfg.GenericModelPath == "" {
					return fmt.Errorf("no generic model configured")
				}
				d, err := NewGenericDetector(cfg.GenericModelPath, ortLibrary, cfg.Confidence)
				if err != nil {
					return err
				}
				generic = d
				return nil
			},
			Run: func(ctx context.Context, req Request) ([]string, error) {
				return generic.Detect(ctx, req.ImageRef)
			},
		},
		{
			Name: TierMock,
			Run: func(ctx context.Context, req Request) ([]string, error) {
				return MockDetect(req.Hint), nil
			},
		},
	}

	return &Pipeline{
		executor: capability.NewExecutor("detection", registry, timeout, tiers...),
	}
}

// Detect produces the label set for an image reference. It never
// fails: the mock tier is total, so the zero-value result below is
// unreachable short of a programming defect in that tier.
func (p *Pipeline) Detect(ctx context.Context, imageRef, hint string) model.DetectionResult {
	labels, err := p.executor.Execute(ctx, Request{ImageRef: imageRef, Hint: hint})
	if err != nil {
		return model.NewDetectionResult(nil)
	}
	return model.NewDetectionResult(labels)
}

// ServedBy reports which tier served the most recent request.
func (p *Pipeline) ServedBy() string {
	return p.executor.ServedBy()
}
