package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// gridShader draws coloured line vertices through the view uniform.
const gridShader = `
struct View {
    mvp: mat4x4<f32>,
    model_view: mat4x4<f32>,
    viewport: vec4<f32>,
    headlight: vec3<f32>,
    ambient: f32,
};

@group(0) @binding(0) var<uniform> view: View;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = view.mvp * vec4<f32>(in.position, 1.0);
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(in.color, 1.0);
}
`

// gridVertexStride is the byte size of one vertex: position vec3f + colour vec3f.
const gridVertexStride = 24

// GridVertex is one line-list vertex of the reference grid.
type GridVertex struct {
	Position [3]float32
	Color    [3]float32
}

// GridVertices builds a square grid on the y = 0 plane plus the three coordinate axes.
// Lines run every step units out to halfExtent; the axes are red (x), green (y) and blue (z).
//
// Parameters:
//   - halfExtent: distance from the origin to the grid edge
//   - step: spacing between grid lines
//
// Returns:
//   - []GridVertex: pairs of vertices, one pair per line
func GridVertices(halfExtent, step float32) []GridVertex {
	if step <= 0 || halfExtent <= 0 {
		return nil
	}
	lineColor := [3]float32{0.35, 0.35, 0.35}
	n := int(halfExtent / step)
	out := make([]GridVertex, 0, (2*n+1)*4+6)
	for i := -n; i <= n; i++ {
		if i == 0 {
			continue
		}
		c := float32(i) * step
		out = append(out,
			GridVertex{Position: [3]float32{c, 0, -halfExtent}, Color: lineColor},
			GridVertex{Position: [3]float32{c, 0, halfExtent}, Color: lineColor},
			GridVertex{Position: [3]float32{-halfExtent, 0, c}, Color: lineColor},
			GridVertex{Position: [3]float32{halfExtent, 0, c}, Color: lineColor},
		)
	}
	axes := [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, axis := range axes {
		end := [3]float32{axis[0] * halfExtent, axis[1] * halfExtent, axis[2] * halfExtent}
		out = append(out,
			GridVertex{Position: [3]float32{}, Color: axis},
			GridVertex{Position: end, Color: axis},
		)
	}
	return out
}

// marshalGrid serializes vertices into a tightly packed vertex buffer.
func marshalGrid(vertices []GridVertex) []byte {
	buf := make([]byte, len(vertices)*gridVertexStride)
	for i, v := range vertices {
		off := i * gridVertexStride
		for j := 0; j < 3; j++ {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v.Position[j]))
			binary.LittleEndian.PutUint32(buf[off+12+j*4:], math.Float32bits(v.Color[j]))
		}
	}
	return buf
}

// gridPipeline owns the GPU objects used to draw the reference grid.
type gridPipeline struct {
	pipeline     *wgpu.RenderPipeline
	layout       *wgpu.BindGroupLayout
	bindGroup    *wgpu.BindGroup
	vertexBuffer *wgpu.Buffer
	vertexCount  uint32
}

// newGridPipeline compiles the grid shader against the surface format and binds it to the
// view uniform.
func newGridPipeline(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, viewBuffer *wgpu.Buffer, vertices []GridVertex) (*gridPipeline, error) {
	g := &gridPipeline{vertexCount: uint32(len(vertices))}

	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Grid Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: gridShader,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create grid shader: %w", err)
	}
	defer module.Release()

	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	g.layout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Grid View Layout",
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create grid bind group layout: %w", err)
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Grid",
		BindGroupLayouts: []*wgpu.BindGroupLayout{g.layout},
	})
	if err != nil {
		g.release()
		return nil, fmt.Errorf("gpu: create grid pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	g.pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Grid Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: gridVertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		g.release()
		return nil, fmt.Errorf("gpu: create grid pipeline: %w", err)
	}

	g.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Grid View Bind Group",
		Layout: g.layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  viewBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		g.release()
		return nil, fmt.Errorf("gpu: create grid bind group: %w", err)
	}

	if g.vertexCount > 0 {
		data := marshalGrid(vertices)
		g.vertexBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            "Grid Vertex Buffer",
			Size:             uint64(len(data)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			g.release()
			return nil, fmt.Errorf("gpu: create grid vertex buffer: %w", err)
		}
		queue.WriteBuffer(g.vertexBuffer, 0, data)
	}
	return g, nil
}

// draw records the grid into an open render pass.
func (g *gridPipeline) draw(pass *wgpu.RenderPassEncoder) {
	if g.vertexCount == 0 {
		return
	}
	pass.SetPipeline(g.pipeline)
	pass.SetBindGroup(0, g.bindGroup, nil)
	pass.SetVertexBuffer(0, g.vertexBuffer, 0, wgpu.WholeSize)
	pass.Draw(g.vertexCount, 1, 0, 0)
}

func (g *gridPipeline) release() {
	if g.vertexBuffer != nil {
		g.vertexBuffer.Release()
		g.vertexBuffer = nil
	}
	if g.bindGroup != nil {
		g.bindGroup.Release()
		g.bindGroup = nil
	}
	if g.pipeline != nil {
		g.pipeline.Release()
		g.pipeline = nil
	}
	if g.layout != nil {
		g.layout.Release()
		g.layout = nil
	}
}
