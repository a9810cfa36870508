// Package shading implements the per-invocation shading algorithm used by the
// sun-lit forward pipeline: the vertex transform contract, the shadow-map
// visibility test, and the ambient/diffuse lighting composite. Every function
// is a pure function of its inputs with no hidden state, so the same code
// drives both the WGSL shader variant assembly and the CPU reference pipeline
// used in tests.
package shading

// ShadowAlgorithm selects how the shadow visibility factor is computed for a fragment.
type ShadowAlgorithm int

const (
	// ShadowNone disables the shadow test entirely; every fragment is fully lit.
	ShadowNone ShadowAlgorithm = iota

	// ShadowHard performs a single depth-map tap with a softened binary
	// comparison: the factor ramps from 0 to 1 across a SoftWidth-wide depth
	// band instead of cutting off hard.
	ShadowHard

	// ShadowPCF9 performs 9-tap percentage-closer filtering over a 3x3 kernel.
	// Each occluded tap subtracts a fixed penalty from full visibility,
	// softening shadow edges over roughly one kernel radius.
	ShadowPCF9
)

// NormalTransform selects how object-space normals are carried into camera space.
type NormalTransform int

const (
	// NormalTransformReference multiplies the normal through the model matrix
	// with a homogeneous w of 1. This matches the legacy shader family bit for bit.
	// It is only exact when the model matrix carries no translation; the
	// translation it picks up is washed out by the per-fragment renormalize,
	// which keeps the error invisible for the scene scales this was tuned on.
	NormalTransformReference NormalTransform = iota

	// NormalTransformInverseTranspose uses the inverse-transpose of the model
	// matrix with w=0, the mathematically correct direction transform. Output
	// diverges slightly from the reference under translation or non-uniform
	// scale.
	NormalTransformInverseTranspose
)

// DefaultAmbientWeight is the default scalar weight of the ambient term in the
// lighting composite.
const DefaultAmbientWeight float32 = 0.2

// DefaultShadowBias is the constant depth bias added to stored shadow-map
// depths before comparison, to reduce shadow acne from self-shadowing.
const DefaultShadowBias float32 = 0.001

// DefaultSoftWidth is the default width of the depth band over which the
// single-tap shadow factor ramps from fully shadowed to fully lit.
const DefaultSoftWidth float32 = 0.001

// DefaultPCFSpread is the default divisor applied to the 3x3 PCF kernel
// offsets, expressing the jitter radius in shadow-map texture space.
const DefaultPCFSpread float32 = 700.0

// pcfTapPenalty is the visibility subtracted per occluded PCF tap. The
// legacy shaders used the rounded literal rather than an exact 1/9, so nine
// occluded taps leave a residue of 0.001 before the final clamp.
const pcfTapPenalty float32 = 0.111

// Config holds the per-variant shading policy. This code consolidates what
// was a family of near-duplicate shader programs differing only in ambient constants,
// shadow filtering, and falloff; Config enumerates that variance so one
// parameterized shading function covers all of them.
type Config struct {
	// AmbientColor is the RGB color of the ambient term.
	AmbientColor [3]float32

	// AmbientWeight scales the ambient term in the final composite.
	AmbientWeight float32

	// ShadowAlgorithm selects the shadow visibility test.
	ShadowAlgorithm ShadowAlgorithm

	// ShadowBias is the depth bias added to stored shadow-map depths.
	ShadowBias float32

	// SoftWidth is the softening window width for the single-tap shadow test.
	SoftWidth float32

	// PCFSpread is the divisor applied to PCF kernel offsets.
	PCFSpread float32

	// FalloffEnabled attenuates the sun color when the camera-space light
	// direction points up from below the horizon, a stylistic sunset effect.
	FalloffEnabled bool

	// NormalTransform selects the normal transform policy.
	NormalTransform NormalTransform

	// TransformSunDirection carries the sun direction through the model matrix
	// like the normal, matching the reference. When false the world-space sun
	// direction is interpolated unmodified.
	TransformSunDirection bool
}

// ConfigOption is a function that adjusts a Config during construction.
type ConfigOption func(*Config)

// NewConfig creates a shading Config with reference defaults and any provided
// options applied.
//
// Parameters:
//   - opts: variadic list of ConfigOption functions to configure the variant
//
// Returns:
//   - Config: the assembled shading configuration
func NewConfig(opts ...ConfigOption) Config {
	c := Config{
		AmbientColor:          [3]float32{1, 1, 1},
		AmbientWeight:         DefaultAmbientWeight,
		ShadowAlgorithm:       ShadowHard,
		ShadowBias:            DefaultShadowBias,
		SoftWidth:             DefaultSoftWidth,
		PCFSpread:             DefaultPCFSpread,
		FalloffEnabled:        false,
		NormalTransform:       NormalTransformReference,
		TransformSunDirection: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithAmbient is an option builder that sets the ambient color and weight.
//
// Parameters:
//   - r, g, b: ambient color components
//   - weight: scalar ambient weight
//
// Returns:
//   - ConfigOption: a function that applies the ambient option to a Config
func WithAmbient(r, g, b, weight float32) ConfigOption {
	return func(c *Config) {
		c.AmbientColor = [3]float32{r, g, b}
		c.AmbientWeight = weight
	}
}

// WithShadowAlgorithm is an option builder that selects the shadow visibility test.
//
// Parameters:
//   - alg: the shadow algorithm to use
//
// Returns:
//   - ConfigOption: a function that applies the algorithm option to a Config
func WithShadowAlgorithm(alg ShadowAlgorithm) ConfigOption {
	return func(c *Config) {
		c.ShadowAlgorithm = alg
	}
}

// WithShadowBias is an option builder that sets the depth bias and softening
// window for shadow comparisons.
//
// Parameters:
//   - bias: depth bias added to stored depths
//   - softWidth: softening window width for the single-tap test
//
// Returns:
//   - ConfigOption: a function that applies the bias option to a Config
func WithShadowBias(bias, softWidth float32) ConfigOption {
	return func(c *Config) {
		c.ShadowBias = bias
		c.SoftWidth = softWidth
	}
}

// WithPCFSpread is an option builder that sets the PCF kernel offset divisor.
//
// Parameters:
//   - spread: the divisor applied to kernel offsets
//
// Returns:
//   - ConfigOption: a function that applies the spread option to a Config
func WithPCFSpread(spread float32) ConfigOption {
	return func(c *Config) {
		c.PCFSpread = spread
	}
}

// WithFalloff is an option builder that toggles the below-horizon sun falloff.
//
// Parameters:
//   - enabled: true to attenuate sun color when the light comes from below
//
// Returns:
//   - ConfigOption: a function that applies the falloff option to a Config
func WithFalloff(enabled bool) ConfigOption {
	return func(c *Config) {
		c.FalloffEnabled = enabled
	}
}

// WithNormalTransform is an option builder that selects the normal transform policy.
//
// Parameters:
//   - nt: the normal transform to use
//
// Returns:
//   - ConfigOption: a function that applies the normal transform option to a Config
func WithNormalTransform(nt NormalTransform) ConfigOption {
	return func(c *Config) {
		c.NormalTransform = nt
	}
}

// WithWorldSpaceSun is an option builder that keeps the sun direction in world
// space instead of carrying it through the model matrix.
//
// Returns:
//   - ConfigOption: a function that applies the sun-space option to a Config
func WithWorldSpaceSun() ConfigOption {
	return func(c *Config) {
		c.TransformSunDirection = false
	}
}
