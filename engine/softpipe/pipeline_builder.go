package softpipe

// PipelineBuilderOption is a functional option applied to a pipeline during construction via NewPipeline.
type PipelineBuilderOption func(*pipelineImpl)

// WithClearColor sets the background color the frame clears to.
//
// Parameters:
//   - r, g, b, a: the clear color components in [0, 1]
//
// Returns:
//   - PipelineBuilderOption: a function that applies the clear color option to a pipeline
func WithClearColor(r, g, b, a float32) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		p.clearColor = [4]float32{r, g, b, a}
	}
}

// WithShadowMapSize sets the shadow map resolution. When not specified, the
// default from the light package is used.
//
// Parameters:
//   - size: the shadow map edge length in texels
//
// Returns:
//   - PipelineBuilderOption: a function that applies the shadow map size option to a pipeline
func WithShadowMapSize(size int) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		if size > 0 {
			p.shadowMapSize = size
		}
	}
}

// WithWorkers sets the number of worker goroutines used for the parallel
// rasterization bands. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the worker count, clamped to at least 1
//
// Returns:
//   - PipelineBuilderOption: a function that applies the worker count option to a pipeline
func WithWorkers(n int) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		if n < 1 {
			n = 1
		}
		p.workers = n
	}
}
