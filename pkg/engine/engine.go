package engine

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"umbra/internal/logger"
	"umbra/pkg/config"
	"umbra/pkg/scene"
)

const endTitle = "End Game"

// App is a scene driven by the engine frame loop
type App interface {
	Update(elapsed float64)
	Scene() *scene.Scene
	Camera() *scene.PerspectiveCamera
	Done() bool
}

// TouchReceiver is implemented by apps that take pointer input as touch
type TouchReceiver interface {
	TouchStart(x, y float64)
	TouchMove(x, y float64)
	TouchEnd()
}

// KeyReceiver is implemented by apps that take keyboard movement
type KeyReceiver interface {
	SetKeys(forward, backward, left, right bool)
}

// Engine represents the host window and frame loop
type Engine struct {
	window     *glfw.Window
	config     *config.Config
	logger     *logger.Logger
	renderer   Renderer
	input      *InputHandler
	app        App
	isRunning  bool
	ended      bool
	lastUpdate time.Time
	frameRate  int
}

// NewEngine creates the window, GL context and renderer for app
func NewEngine(cfg *config.Config, log *logger.Logger, app App) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Window.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Debugf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	// Retina displays report a framebuffer larger than the window
	fbWidth, fbHeight := window.GetFramebufferSize()
	renderer, err := NewOpenGLRenderer(fbWidth, fbHeight)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	app.Camera().SetAspect(fbWidth, fbHeight)

	e := &Engine{
		window:    window,
		config:    cfg,
		logger:    log,
		renderer:  renderer,
		app:       app,
		frameRate: cfg.Window.FrameRate,
	}
	e.input = NewInputHandler(window, app)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		e.resize(width, height)
	})

	return e, nil
}

// resize keeps the camera aspect and render targets in step with the window
func (e *Engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		// minimised
		return
	}
	e.app.Camera().SetAspect(width, height)
	e.renderer.UpdateResolution(width, height)
	e.logger.Debugf("Resized to %dx%d", width, height)
}

// Run starts the main loop and returns once the window closes
func (e *Engine) Run() {
	e.isRunning = true
	e.lastUpdate = time.Now()

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()
		deltaTime := currentTime.Sub(e.lastUpdate).Seconds()
		e.lastUpdate = currentTime

		e.processInput()

		e.app.Update(deltaTime)
		if e.app.Done() && !e.ended {
			e.endSession()
		}

		e.renderer.Render(e.app.Scene(), e.app.Camera())

		// Swap buffers and poll events
		e.window.SwapBuffers()
		glfw.PollEvents()

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput handles user input
func (e *Engine) processInput() {
	// Close the game when ESC is pressed
	if e.window.GetKey(glfw.KeyEscape) == glfw.Press {
		e.isRunning = false
	}

	e.input.Update()
}

// endSession notifies the player and asks the window to close
func (e *Engine) endSession() {
	e.ended = true
	e.logger.Warn(endTitle)
	e.window.SetTitle(endTitle)
	e.window.SetShouldClose(true)
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down engine...")
	e.renderer.Close()
	e.window.Destroy()
	glfw.Terminate()
}
