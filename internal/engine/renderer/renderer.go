// Package renderer draws the composed blob scene with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/blob"
	"github.com/Faultbox/morphfolio/internal/engine/shader"
	"github.com/Faultbox/morphfolio/internal/logger"
	"github.com/Faultbox/morphfolio/internal/scene"
	"github.com/Faultbox/morphfolio/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws scene draw lists.
type Renderer struct {
	config  Config
	program *shader.Program

	blob      *gpuMesh
	core      *gpuMesh
	satellite *gpuMesh
	particle  *gpuMesh

	blobVersion uint64
	scratch     []float32
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;
uniform mat3 uNormalMat;

out vec3 vNormal;
out vec3 vWorld;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorld = world.xyz;
	vNormal = normalize(uNormalMat * aNormal);
	gl_Position = uViewProj * world;
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vWorld;

uniform vec3 uColor;
uniform vec3 uEmissive;
uniform float uEmissiveStrength;
uniform float uOpacity;
uniform float uRoughness;
uniform float uMetalness;
uniform float uAmbient;
uniform vec3 uLightDir;
uniform float uLightIntensity;
uniform vec3 uCameraPos;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 l = normalize(-uLightDir);
	float diffuse = max(dot(n, l), 0.0) * uLightIntensity;

	vec3 v = normalize(uCameraPos - vWorld);
	vec3 h = normalize(l + v);
	float shininess = mix(128.0, 4.0, uRoughness);
	float spec = pow(max(dot(n, h), 0.0), shininess) * (1.0 - uRoughness) * uLightIntensity;
	vec3 specColor = mix(vec3(0.04), uColor, uMetalness);

	vec3 base = uColor * (uAmbient + diffuse * (1.0 - uMetalness * 0.5));
	vec3 color = base + specColor * spec + uEmissive * uEmissiveStrength;
	FragColor = vec4(color, uOpacity);
}
`

// New creates a renderer for b's geometry.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, b *blob.Blob, particleSize float32) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.043, 0.043, 0.07, 1.0)

	var err error
	r.program, err = shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	d := b.Deformer()
	r.blob = newGPUMesh(d.Rest(), d.Normals(), d.Indices(), gl.DYNAMIC_DRAW)

	core := b.Core()
	r.core = newGPUMesh(core.Positions, core.Normals, core.Indices, gl.STATIC_DRAW)

	sat := mesh.Icosphere(1, 1)
	r.satellite = newGPUMesh(sat.Positions, sat.Normals, sat.Indices, gl.STATIC_DRAW)

	ico := mesh.Icosphere(particleSize, 0)
	r.particle = newGPUMesh(ico.Positions, ico.Normals, ico.Indices, gl.STATIC_DRAW)

	r.Resize(cfg.Width, cfg.Height)

	logger.Debug("renderer ready",
		zap.Int("blobVertices", len(d.Rest())),
		zap.Uint32("program", r.program.ID),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range []*gpuMesh{r.blob, r.core, r.satellite, r.particle} {
		if m != nil {
			m.delete()
		}
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SyncBlob re-uploads the deformed surface if it changed since the last
// upload.
func (r *Renderer) SyncBlob(d *blob.Deformer) {
	if d.Version() == r.blobVersion {
		return
	}
	r.scratch = mesh.Interleave(r.scratch, d.Positions(), d.Normals())
	r.blob.update(r.scratch)
	r.blobVersion = d.Version()
}

// Draw renders the scene's draw list. Opaque items are drawn before
// transparent ones.
func (r *Renderer) Draw(s *scene.Scene) {
	cam := s.Camera
	cam.Aspect = float32(r.config.Width) / float32(max(r.config.Height, 1))

	r.program.Use()
	r.program.SetMat4("uViewProj", cam.ViewProjection())
	r.program.SetVec3("uCameraPos", cam.Position())
	r.program.SetFloat("uAmbient", s.Ambient.Intensity)
	r.program.SetVec3("uLightDir", s.Directional.Direction())
	r.program.SetFloat("uLightIntensity", s.Directional.Intensity)

	items := s.DrawList()
	for pass := 0; pass < 2; pass++ {
		transparent := pass == 1
		gl.DepthMask(!transparent)
		for _, it := range items {
			if it.Material.Transparent != transparent {
				continue
			}
			r.drawItem(it)
		}
	}
	gl.DepthMask(true)
}

func (r *Renderer) drawItem(it scene.DrawItem) {
	var m *gpuMesh
	switch it.Kind {
	case scene.KindBlob:
		m = r.blob
	case scene.KindCore:
		m = r.core
	case scene.KindSatellite:
		m = r.satellite
	case scene.KindParticle:
		m = r.particle
	default:
		return
	}

	mat := it.Material
	r.program.SetMat4("uModel", it.Model)
	r.program.SetMat3("uNormalMat", it.Model.Mat3().Inv().Transpose())
	r.program.SetVec3("uColor", mat.Color)
	r.program.SetVec3("uEmissive", mat.Emissive)
	r.program.SetFloat("uEmissiveStrength", mat.EmissiveIntensity)
	r.program.SetFloat("uOpacity", mat.Opacity)
	r.program.SetFloat("uRoughness", mat.Roughness)
	r.program.SetFloat("uMetalness", mat.Metalness)
	m.draw()
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// gpuMesh is an indexed mesh with interleaved position and normal
// attributes.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	size          int
}

func newGPUMesh(positions, normals []mgl32.Vec3, indices []uint32, usage uint32) *gpuMesh {
	data := mesh.Interleave(nil, positions, normals)
	m := &gpuMesh{count: int32(len(indices)), size: len(data) * 4}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, m.size, unsafe.Pointer(&data[0]), usage)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	stride := int32(mesh.InterleavedStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return m
}

func (m *gpuMesh) update(data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, min(len(data)*4, m.size), unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
}

func (m *gpuMesh) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}
