package gpu

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// clipDepth remaps GL clip depth [-w, w] onto the WebGPU range [0, w].
var clipDepth = mgl64.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// GPUViewUniform is the GPU-aligned per-frame view data.
// Size: 160 bytes (WGSL uniform aligned).
type GPUViewUniform struct {
	MVP       [16]float32 // offset   0: clip-corrected projection * model-view
	ModelView [16]float32 // offset  64: model-view matrix
	Viewport  [4]float32  // offset 128: x, y, width, height in pixels
	Headlight [3]float32  // offset 144: eye-space headlight direction
	Ambient   float32     // offset 156: ambient floor applied by the shader
}

// Size returns the size of the GPUViewUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (u *GPUViewUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload
func (u *GPUViewUniform) Marshal() []byte {
	buf := make([]byte, 160)
	putFloats(buf[0:64], u.MVP[:])
	putFloats(buf[64:128], u.ModelView[:])
	putFloats(buf[128:144], u.Viewport[:])
	putFloats(buf[144:156], u.Headlight[:])
	binary.LittleEndian.PutUint32(buf[156:160], math.Float32bits(u.Ambient))
	return buf
}

// ToViewUniform converts a renderer frame into its GPU representation.
//
// Parameters:
//   - f: the flushed frame
//   - headlight: eye-space direction of the headlight
//   - ambient: ambient floor
//
// Returns:
//   - GPUViewUniform: the GPU-ready uniform
func ToViewUniform(f renderer.Frame, headlight [3]float32, ambient float32) GPUViewUniform {
	return GPUViewUniform{
		MVP:       common.ColumnMajor32(clipDepth.Mul4(f.MVP())),
		ModelView: common.ColumnMajor32(f.ModelView),
		Viewport: [4]float32{
			float32(f.Viewport[0]), float32(f.Viewport[1]),
			float32(f.Viewport[2]), float32(f.Viewport[3]),
		},
		Headlight: headlight,
		Ambient:   ambient,
	}
}

func putFloats(dst []byte, vs []float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(v))
	}
}
