package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Клавиши движения; стрелки дублируют WASD
var (
	forwardKeys  = []glfw.Key{glfw.KeyW, glfw.KeyUp}
	backwardKeys = []glfw.Key{glfw.KeyS, glfw.KeyDown}
	leftKeys     = []glfw.Key{glfw.KeyA, glfw.KeyLeft}
	rightKeys    = []glfw.Key{glfw.KeyD, glfw.KeyRight}
)

// InputHandler polls the window and forwards the pointer as a single touch
// and the movement keys to the app
type InputHandler struct {
	window *glfw.Window
	touch  TouchReceiver
	keys   KeyReceiver

	currentMousePos  [2]float64
	previousMousePos [2]float64
	currentMouseBtn  bool
	previousMouseBtn bool
}

// NewInputHandler creates an input handler; app may implement neither receiver
func NewInputHandler(window *glfw.Window, app App) *InputHandler {
	handler := &InputHandler{window: window}
	handler.touch, _ = app.(TouchReceiver)
	handler.keys, _ = app.(KeyReceiver)
	return handler
}

// Update polls the devices once and emits touch and key events
func (ih *InputHandler) Update() {
	ih.previousMouseBtn = ih.currentMouseBtn
	ih.previousMousePos = ih.currentMousePos

	x, y := ih.window.GetCursorPos()
	ih.currentMousePos = [2]float64{x, y}
	ih.currentMouseBtn = ih.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press

	if ih.touch != nil {
		switch {
		case ih.currentMouseBtn && !ih.previousMouseBtn:
			ih.touch.TouchStart(x, y)
		case ih.currentMouseBtn && ih.currentMousePos != ih.previousMousePos:
			ih.touch.TouchMove(x, y)
		case !ih.currentMouseBtn && ih.previousMouseBtn:
			ih.touch.TouchEnd()
		}
	}

	if ih.keys != nil {
		ih.keys.SetKeys(
			ih.anyDown(forwardKeys),
			ih.anyDown(backwardKeys),
			ih.anyDown(leftKeys),
			ih.anyDown(rightKeys),
		)
	}
}

func (ih *InputHandler) anyDown(keys []glfw.Key) bool {
	for _, k := range keys {
		if ih.window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

