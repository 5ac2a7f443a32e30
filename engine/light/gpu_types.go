package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the maximum number of lights marshaled into a light buffer.
const MaxGPULights = 16

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes (std140 / WGSL aligned).
type GPULight struct {
	Position  [3]float32 // offset  0: world-space position (point/spot) or unused
	LightType uint32     // offset 12: 0 = ambient, 1 = directional, 2 = point, 3 = spot
	WarmColor [3]float32 // offset 16: warm RGB
	Intensity float32    // offset 28: scalar multiplier
	Direction [3]float32 // offset 32: normalized direction (directional/spot) or unused
	Range     float32    // offset 44: cutoff distance
	CoolColor [3]float32 // offset 48: cool RGB
	OuterCone float32    // offset 60: cos(outer half-angle) for spot
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	putVec3(buf[0:12], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:28], g.WarmColor)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:44], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Range))
	putVec3(buf[48:60], g.CoolColor)
	binary.LittleEndian.PutUint32(buf[60:64], math.Float32bits(g.OuterCone))
	return buf
}

// GPULightHeader is the header prepended to a light buffer.
// Size: 16 bytes (vec3 + u32).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: scene ambient RGB
	LightCount   uint32     // offset 12: number of lights following the header
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	putVec3(buf[0:12], h.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
	return buf
}

// ToGPULight converts a Light into its GPU-aligned representation.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	return GPULight{
		Position:  l.Position(),
		LightType: uint32(l.Type()),
		WarmColor: l.WarmColor(),
		Intensity: l.Intensity(),
		Direction: l.Direction(),
		Range:     l.Range(),
		CoolColor: l.CoolColor(),
		OuterCone: l.OuterCone(),
	}
}

// MarshalLightBuffer marshals the enabled lights into a byte buffer suitable for GPU
// upload. Enabled ambient lights are not written as entries; their warm colours scaled by
// intensity are summed into the header's ambient colour instead. The buffer layout is:
//
//	[GPULightHeader (16 bytes)] [GPULight × count (64 bytes each)]
//
// Lights beyond MaxGPULights are dropped.
//
// Parameters:
//   - lights: the lights to marshal (only enabled lights are included)
//
// Returns:
//   - []byte: the marshaled buffer ready for GPU upload
func MarshalLightBuffer(lights []Light) []byte {
	var header GPULightHeader
	var entries []GPULight
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		if l.Type() == LightTypeAmbient {
			c := l.WarmColor()
			for i := range 3 {
				header.AmbientColor[i] += c[i] * l.Intensity()
			}
			continue
		}
		if len(entries) < MaxGPULights {
			entries = append(entries, ToGPULight(l))
		}
	}
	header.LightCount = uint32(len(entries))

	lightSize := (&GPULight{}).Size()
	buf := make([]byte, 0, header.Size()+len(entries)*lightSize)
	buf = append(buf, header.Marshal()...)
	for i := range entries {
		buf = append(buf, entries[i].Marshal()...)
	}
	return buf
}

func putVec3(dst []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(v[2]))
}
