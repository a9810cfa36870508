// pre_processor.go implements the WGSL shader pre-processor for the sun-lit
// forward pipeline. It scans template source for //sun: directives and
// replaces them with embedded struct definitions or with WGSL generated from a
// shading.Config, so one pair of shader templates covers every shading
// variant.
//
// The pre-processor maintains a struct registry mapping directive arguments to
// the canonical WGSL struct sources embedded next to their Go GPU types. This
// keeps each buffer layout defined in exactly one place.
package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/mesh"
	"github.com/sunward-gfx/sunward/engine/shading"
)

// registryEntry pairs a WGSL struct source string (embedded from a .wgsl
// asset file) with its struct's byte size, used for MinBindingSize on buffer
// layout entries.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by //sun:include.
	Source string

	// TypeName is the WGSL struct name declared by Source.
	TypeName string

	// Size is the GPU byte size of the struct, or 0 for vertex input structs.
	Size uint64
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry map[string]registryEntry
}

// PreProcessor processes WGSL template source containing //sun: directives,
// replacing them with embedded struct sources or with variant WGSL generated
// from a shading configuration.
type PreProcessor interface {
	// Process takes WGSL template source and replaces every //sun: directive
	// with its expansion. Include directives inject registered struct sources.
	// Config directives (constants, shadow_factor, falloff, normal_transform,
	// sun_space) generate variant-specific WGSL from cfg and require a non-nil
	// cfg.
	//
	// Parameters:
	//   - source: the WGSL template source containing directives
	//   - cfg: the shading variant configuration, or nil for templates without config directives
	//
	// Returns:
	//   - string: the processed WGSL source with directives replaced
	//   - error: an error if a directive is malformed, unknown, or needs a missing cfg
	Process(source string, cfg *shading.Config) (string, error)

	// StructSize returns the registered GPU byte size for a WGSL struct name,
	// used to set MinBindingSize when parsing bind group layouts.
	//
	// Parameters:
	//   - typeName: the WGSL struct name
	//
	// Returns:
	//   - uint64: the struct size in bytes, or 0 if unknown
	StructSize(typeName string) uint64
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with all registered struct
// sources pre-populated from the engine's GPU type packages.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[string]registryEntry{
			"vertex":           {Source: mesh.GPUVertexSource, TypeName: "VertexInput"},
			"forward_uniforms": {Source: shading.GPUForwardUniformsSource, TypeName: "ForwardUniforms", Size: 304},
			"shadow_uniform":   {Source: light.GPUShadowUniformSource, TypeName: "ShadowUniform", Size: 64},
		},
	}
}

func (p *preProcessor) Process(source string, cfg *shading.Config) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		directive, arg, ok := parseDirective(line)
		if !ok {
			out = append(out, line)
			continue
		}

		switch directive {
		case "include":
			entry, found := p.structRegistry[arg]
			if !found {
				return "", fmt.Errorf("line %d: unknown //sun:include argument %q", i+1, arg)
			}
			out = append(out, entry.Source)
		case "constants", "shadow_factor", "falloff", "normal_transform", "sun_space":
			if cfg == nil {
				return "", fmt.Errorf("line %d: //sun:%s requires a shading config", i+1, directive)
			}
			out = append(out, expandConfigDirective(directive, cfg))
		default:
			return "", fmt.Errorf("line %d: unknown directive //sun:%s", i+1, directive)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) StructSize(typeName string) uint64 {
	for _, entry := range p.structRegistry {
		if entry.TypeName == typeName {
			return entry.Size
		}
	}
	return 0
}

// parseDirective recognizes lines of the form "//sun:<directive> [arg]".
// Leading whitespace is permitted. Returns ok=false for any other line.
func parseDirective(line string) (directive, arg string, ok bool) {
	trimmed := strings.TrimSpace(line)
	rest, found := strings.CutPrefix(trimmed, "//sun:")
	if !found {
		return "", "", false
	}
	directive, arg, _ = strings.Cut(rest, " ")
	return directive, strings.TrimSpace(arg), true
}

// expandConfigDirective generates the WGSL for a config-driven directive.
func expandConfigDirective(directive string, cfg *shading.Config) string {
	switch directive {
	case "constants":
		return constantsWGSL(cfg)
	case "shadow_factor":
		return shadowFactorWGSL(cfg)
	case "falloff":
		return falloffWGSL(cfg)
	case "normal_transform":
		return normalTransformWGSL(cfg)
	case "sun_space":
		return sunSpaceWGSL(cfg)
	default:
		return ""
	}
}

// constantsWGSL emits the variant's shading constants as WGSL const
// declarations read by the fragment template.
func constantsWGSL(cfg *shading.Config) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "const AMBIENT_COLOR: vec3<f32> = vec3<f32>(%s, %s, %s);\n",
		wgslFloat(cfg.AmbientColor[0]), wgslFloat(cfg.AmbientColor[1]), wgslFloat(cfg.AmbientColor[2]))
	fmt.Fprintf(&sb, "const AMBIENT_WEIGHT: f32 = %s;\n", wgslFloat(cfg.AmbientWeight))
	fmt.Fprintf(&sb, "const SHADOW_BIAS: f32 = %s;\n", wgslFloat(cfg.ShadowBias))
	fmt.Fprintf(&sb, "const SOFT_WIDTH: f32 = %s;\n", wgslFloat(cfg.SoftWidth))
	fmt.Fprintf(&sb, "const PCF_SPREAD: f32 = %s;", wgslFloat(cfg.PCFSpread))
	return sb.String()
}

// shadowFactorWGSL emits the shadow_factor function for the configured
// algorithm. The light-space clip position is perspective divided, the xy
// remapped to texture space with the y axis flipped for texture addressing,
// and the z compared against the stored depth directly since the hardware
// projection already produces [0, 1] depth.
func shadowFactorWGSL(cfg *shading.Config) string {
	switch cfg.ShadowAlgorithm {
	case shading.ShadowNone:
		return `fn shadow_factor(light_clip: vec4<f32>) -> f32 {
    return 1.0;
}`
	case shading.ShadowPCF9:
		return `fn shadow_factor(light_clip: vec4<f32>) -> f32 {
    let p = light_clip.xyz / light_clip.w;
    let uv = vec2<f32>(0.5 * p.x + 0.5, 0.5 - 0.5 * p.y);
    var taps = array<vec2<f32>, 9>(
        vec2<f32>(-1.0, -1.0), vec2<f32>(0.0, -1.0), vec2<f32>(1.0, -1.0),
        vec2<f32>(-1.0, 0.0), vec2<f32>(0.0, 0.0), vec2<f32>(1.0, 0.0),
        vec2<f32>(-1.0, 1.0), vec2<f32>(0.0, 1.0), vec2<f32>(1.0, 1.0),
    );
    var visibility = 1.0;
    for (var i = 0; i < 9; i = i + 1) {
        let stored = textureSampleLevel(shadow_texture, shadow_sampler, uv + taps[i] / PCF_SPREAD, 0u);
        if (stored + SHADOW_BIAS < p.z) {
            visibility = visibility - 0.111;
        }
    }
    return clamp(visibility, 0.0, 1.0);
}`
	default:
		return `fn shadow_factor(light_clip: vec4<f32>) -> f32 {
    let p = light_clip.xyz / light_clip.w;
    let uv = vec2<f32>(0.5 * p.x + 0.5, 0.5 - 0.5 * p.y);
    let stored = textureSampleLevel(shadow_texture, shadow_sampler, uv, 0u);
    return clamp((SHADOW_BIAS - (p.z - stored)) / SOFT_WIDTH, 0.0, 1.0);
}`
	}
}

// falloffWGSL emits the apply_falloff function, attenuating the sun color
// when the interpolated light direction points up from below the horizon.
func falloffWGSL(cfg *shading.Config) string {
	if !cfg.FalloffEnabled {
		return `fn apply_falloff(color: vec3<f32>, light: vec3<f32>) -> vec3<f32> {
    return color;
}`
	}
	return `fn apply_falloff(color: vec3<f32>, light: vec3<f32>) -> vec3<f32> {
    if (light.z < 0.0) {
        return color * (1.0 / (-10.0 * light.z + 1.0));
    }
    return color;
}`
}

// normalTransformWGSL emits the transform_direction function for the
// configured normal policy. The inverse-transpose policy is approximated on
// the GPU with a w=0 direction transform through the model matrix, exact for
// rigid transforms and uniform scale; the CPU reference pipeline carries the
// true inverse transpose.
func normalTransformWGSL(cfg *shading.Config) string {
	if cfg.NormalTransform == shading.NormalTransformInverseTranspose {
		return `fn transform_direction(v: vec3<f32>) -> vec3<f32> {
    return (uniforms.model * vec4<f32>(v, 0.0)).xyz;
}`
	}
	return `fn transform_direction(v: vec3<f32>) -> vec3<f32> {
    return (uniforms.model * vec4<f32>(v, 1.0)).xyz;
}`
}

// sunSpaceWGSL emits the sun_direction function, either carrying the sun
// direction through the model matrix like the normals or passing the
// world-space direction through unchanged.
func sunSpaceWGSL(cfg *shading.Config) string {
	if cfg.TransformSunDirection {
		return `fn sun_direction() -> vec3<f32> {
    return transform_direction(uniforms.sun_direction);
}`
	}
	return `fn sun_direction() -> vec3<f32> {
    return uniforms.sun_direction;
}`
}

// wgslFloat formats a float32 as a WGSL floating point literal.
func wgslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
