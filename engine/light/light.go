package light

import "fmt"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents a light with no position or direction. It reaches every
	// point in the scene equally.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun, or a headlight fixed to the eye.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Attenuates with both distance and angle from the cone axis, controlled by inner and
	// outer cone angles.
	LightTypeSpot
)

// String returns the lower-case name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return fmt.Sprintf("LightType(%d)", int(t))
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   [3]float32
	direction  [3]float32
	warmColor  [3]float32
	coolColor  [3]float32
	intensity  float32
	lightRange float32
	innerCone  float32 // stored as cos(angle in radians)
	outerCone  float32 // stored as cos(angle in radians)
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// Every light carries a warm and a cool colour for two-tone shading models. Lights that only
// need one colour use Color, which is the warm colour. All light types share this interface;
// type-specific properties (e.g. cone angles for spot lights) are ignored when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction the light travels in.
	// For spot lights this is the cone axis. Meaningless for ambient and point lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the single-colour RGB of the light, which is the warm colour.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// WarmColor returns the warm RGB colour.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	WarmColor() [3]float32

	// CoolColor returns the cool RGB colour.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	CoolColor() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum distance reached by point and spot lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	// Points outside this angle are not illuminated.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light is switched on.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Illuminates reports whether the light reaches world-space point p. A disabled light
	// illuminates nothing.
	//
	// Parameters:
	//   - p: the point to test
	//
	// Returns:
	//   - bool: true if p is lit by this light
	Illuminates(p [3]float32) bool

	// CosFactor returns the cosine between surface normal n at point p and the direction
	// towards the light, clamped at zero. Ambient lights always return 1.
	//
	// Parameters:
	//   - p: surface point
	//   - n: unit surface normal
	//
	// Returns:
	//   - float32: the diffuse cosine factor
	CosFactor(p, n [3]float32) float32

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets both the warm and cool colours.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetWarmColor sets the warm colour only.
	//
	// Parameters:
	//   - r, g, b: color components
	SetWarmColor(r, g, b float32)

	// SetCoolColor sets the cool colour only.
	//
	// Parameters:
	//   - r, g, b: color components
	SetCoolColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the maximum distance reached by point and spot lights.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetEnabled switches the light on or off.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white colours, unit intensity
// and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		position:   [3]float32{0, 0, 0},
		direction:  [3]float32{0, 0, -1},
		warmColor:  [3]float32{1, 1, 1},
		coolColor:  [3]float32{1, 1, 1},
		intensity:  1.0,
		lightRange: 10.0,
		innerCone:  0.9063, // cos(25°)
		outerCone:  0.8192, // cos(35°)
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewHeadlight creates a directional light shining along the eye's view axis. Used to light
// a scene that is rotated under a fixed camera.
//
// Returns:
//   - Light: a directional light pointing down -Z in eye space
func NewHeadlight() Light {
	return NewLight(LightTypeDirectional, WithDirection(0, 0, -1))
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.warmColor
}

func (l *lightImpl) WarmColor() [3]float32 {
	return l.warmColor
}

func (l *lightImpl) CoolColor() [3]float32 {
	return l.coolColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Illuminates(p [3]float32) bool {
	if !l.enabled {
		return false
	}
	switch l.lightType {
	case LightTypePoint:
		return length3(sub3(p, l.position)) <= l.lightRange
	case LightTypeSpot:
		toP := sub3(p, l.position)
		d := length3(toP)
		if d > l.lightRange {
			return false
		}
		if d == 0 {
			return true
		}
		return dot3(toP, l.direction)/d >= l.outerCone
	default:
		return true
	}
}

func (l *lightImpl) CosFactor(p, n [3]float32) float32 {
	var toLight [3]float32
	switch l.lightType {
	case LightTypeAmbient:
		return 1
	case LightTypeDirectional:
		toLight = [3]float32{-l.direction[0], -l.direction[1], -l.direction[2]}
	default:
		d := sub3(l.position, p)
		toLight = normalize3(d[0], d[1], d[2])
	}
	return max(dot3(n, toLight), 0)
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.warmColor = [3]float32{r, g, b}
	l.coolColor = l.warmColor
}

func (l *lightImpl) SetWarmColor(r, g, b float32) {
	l.warmColor = [3]float32{r, g, b}
}

func (l *lightImpl) SetCoolColor(r, g, b float32) {
	l.coolColor = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
