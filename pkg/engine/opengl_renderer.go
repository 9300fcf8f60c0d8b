package engine

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"umbra/pkg/scene"
)

// gpuGeometry is the uploaded copy of a scene.Geometry
type gpuGeometry struct {
	vao, vbo, ebo uint32
	count         int32
}

// OpenGLRenderer draws scene meshes into an offscreen framebuffer and then
// runs the filter pass onto the window.
type OpenGLRenderer struct {
	width  int
	height int

	meshProgram uint32
	postProgram uint32

	fbo           uint32
	rbo           uint32
	screenTexture uint32
	quadVAO       uint32
	quadVBO       uint32

	geometries map[*scene.Geometry]*gpuGeometry

	// mesh uniforms
	modelLoc        int32
	viewLoc         int32
	projectionLoc   int32
	normalMatrixLoc int32
	baseColorLoc    int32
	emissiveLoc     int32
	lightCountLoc   int32
	lightDirLoc     int32
	lightColorLoc   int32
	fogColorLoc     int32
	fogDensityLoc   int32

	// post uniforms
	screenTextureLoc int32
	contrastLoc      int32
	hueMatrixLoc     int32
}

// NewOpenGLRenderer creates a renderer; the GL context must be current
func NewOpenGLRenderer(width, height int) (*OpenGLRenderer, error) {
	r := &OpenGLRenderer{
		width:      width,
		height:     height,
		geometries: make(map[*scene.Geometry]*gpuGeometry),
	}

	if err := r.initOpenGL(); err != nil {
		return nil, err
	}

	r.setupScreenQuad()

	if err := r.setupFramebuffer(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// initOpenGL compiles both programs and resolves uniforms
func (r *OpenGLRenderer) initOpenGL() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	var err error
	if r.meshProgram, err = createShaderProgram(meshVertexShader, meshFragmentShader); err != nil {
		return fmt.Errorf("mesh program: %w", err)
	}
	if r.postProgram, err = createShaderProgram(postProcessVertexShader, postProcessFragmentShader); err != nil {
		gl.DeleteProgram(r.meshProgram)
		return fmt.Errorf("post-process program: %w", err)
	}

	loc := func(program uint32, name string) int32 {
		return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}

	r.modelLoc = loc(r.meshProgram, "model")
	r.viewLoc = loc(r.meshProgram, "view")
	r.projectionLoc = loc(r.meshProgram, "projection")
	r.normalMatrixLoc = loc(r.meshProgram, "normalMatrix")
	r.baseColorLoc = loc(r.meshProgram, "baseColor")
	r.emissiveLoc = loc(r.meshProgram, "emissive")
	r.lightCountLoc = loc(r.meshProgram, "lightCount")
	r.lightDirLoc = loc(r.meshProgram, "lightDir[0]")
	r.lightColorLoc = loc(r.meshProgram, "lightColor[0]")
	r.fogColorLoc = loc(r.meshProgram, "fogColor")
	r.fogDensityLoc = loc(r.meshProgram, "fogDensity")

	r.screenTextureLoc = loc(r.postProgram, "screenTexture")
	r.contrastLoc = loc(r.postProgram, "contrast")
	r.hueMatrixLoc = loc(r.postProgram, "hueMatrix")

	return nil
}

// setupScreenQuad creates a full-screen quad for post-processing
func (r *OpenGLRenderer) setupScreenQuad() {
	vertices := []float32{
		// Positions     // Texture coords
		-1.0, -1.0, 0.0, 0.0, 0.0,
		1.0, -1.0, 0.0, 1.0, 0.0,
		1.0, 1.0, 0.0, 1.0, 1.0,
		-1.0, 1.0, 0.0, 0.0, 1.0,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// setupFramebuffer initializes the framebuffer for post-processing
func (r *OpenGLRenderer) setupFramebuffer() error {
	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)

	gl.GenTextures(1, &r.screenTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.screenTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(r.width), int32(r.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.screenTexture, 0)

	gl.GenRenderbuffers(1, &r.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(r.width), int32(r.height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, r.rbo)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("framebuffer not complete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// upload returns the GPU copy of g, creating it on first use
func (r *OpenGLRenderer) upload(g *scene.Geometry) *gpuGeometry {
	if gg, ok := r.geometries[g]; ok {
		return gg
	}

	gg := &gpuGeometry{count: int32(len(g.Indices))}
	data := g.Interleaved()

	gl.GenVertexArrays(1, &gg.vao)
	gl.BindVertexArray(gg.vao)

	gl.GenBuffers(1, &gg.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gg.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gg.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gg.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	// position, normal
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	r.geometries[g] = gg
	return gg
}

// Render draws every visible mesh, then the filter pass
func (r *OpenGLRenderer) Render(sc *scene.Scene, cam *scene.PerspectiveCamera) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Enable(gl.DEPTH_TEST)

	bg := sc.Background.RGB()
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.renderMeshes(sc, cam)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.renderPostProcess(sc.Filter)
}

func (r *OpenGLRenderer) renderMeshes(sc *scene.Scene, cam *scene.PerspectiveCamera) {
	gl.UseProgram(r.meshProgram)

	view := cam.View()
	projection := cam.Projection()
	gl.UniformMatrix4fv(r.viewLoc, 1, false, &view[0])
	gl.UniformMatrix4fv(r.projectionLoc, 1, false, &projection[0])

	var dirs, colors [maxLights]mgl32.Vec3
	count := 0
	for _, l := range sc.Lights {
		if count == maxLights {
			break
		}
		dirs[count] = l.Direction()
		colors[count] = l.Color.RGB().Mul(l.Intensity)
		count++
	}
	gl.Uniform1i(r.lightCountLoc, int32(count))
	if count > 0 {
		gl.Uniform3fv(r.lightDirLoc, int32(count), &dirs[0][0])
		gl.Uniform3fv(r.lightColorLoc, int32(count), &colors[0][0])
	}

	if sc.Fog != nil {
		fc := sc.Fog.Color.RGB()
		gl.Uniform3f(r.fogColorLoc, fc[0], fc[1], fc[2])
		gl.Uniform1f(r.fogDensityLoc, sc.Fog.Density)
	} else {
		gl.Uniform1f(r.fogDensityLoc, 0)
	}

	for _, m := range sc.Meshes {
		if !m.Visible || m.Geometry == nil || m.Material == nil {
			continue
		}

		model := m.Matrix()
		normal := model.Mat3().Inv().Transpose()
		gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0])
		gl.UniformMatrix3fv(r.normalMatrixLoc, 1, false, &normal[0])

		base := m.Material.Color.RGB()
		emissive := m.Material.Emissive.RGB()
		gl.Uniform3f(r.baseColorLoc, base[0], base[1], base[2])
		gl.Uniform3f(r.emissiveLoc, emissive[0], emissive[1], emissive[2])

		gg := r.upload(m.Geometry)
		gl.BindVertexArray(gg.vao)
		gl.DrawElements(gl.TRIANGLES, gg.count, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
}

func (r *OpenGLRenderer) renderPostProcess(filter scene.Filter) {
	gl.UseProgram(r.postProgram)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.screenTexture)
	gl.Uniform1i(r.screenTextureLoc, 0)

	hue := filter.HueMatrix()
	gl.Uniform1f(r.contrastLoc, filter.Contrast)
	gl.UniformMatrix3fv(r.hueMatrixLoc, 1, false, &hue[0])

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)
}

// UpdateResolution resizes the offscreen targets to the framebuffer size
func (r *OpenGLRenderer) UpdateResolution(width, height int) {
	if width <= 0 || height <= 0 || (r.width == width && r.height == height) {
		return
	}

	r.width = width
	r.height = height

	gl.BindTexture(gl.TEXTURE_2D, r.screenTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.BindRenderbuffer(gl.RENDERBUFFER, r.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
}

// Close releases all OpenGL resources
func (r *OpenGLRenderer) Close() {
	for g, gg := range r.geometries {
		gl.DeleteVertexArrays(1, &gg.vao)
		gl.DeleteBuffers(1, &gg.vbo)
		gl.DeleteBuffers(1, &gg.ebo)
		delete(r.geometries, g)
	}
	gl.DeleteVertexArrays(1, &r.quadVAO)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteTextures(1, &r.screenTexture)
	gl.DeleteRenderbuffers(1, &r.rbo)
	gl.DeleteFramebuffers(1, &r.fbo)
	gl.DeleteProgram(r.meshProgram)
	gl.DeleteProgram(r.postProgram)
}

// createShaderProgram compiles and links a shader program from source
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// Шейдеры больше не нужны после линковки
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}
