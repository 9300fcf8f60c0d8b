package game

// MoveFlags are the movement intents read by the frame loop
type MoveFlags struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Or merges two input sources
func (f MoveFlags) Or(o MoveFlags) MoveFlags {
	return MoveFlags{
		Forward:  f.Forward || o.Forward,
		Backward: f.Backward || o.Backward,
		Left:     f.Left || o.Left,
		Right:    f.Right || o.Right,
	}
}

// Joystick turns a single pointer drag into movement flags. Touching means
// forward; horizontal drag beyond Deadzone from the touch origin steers.
// It never sets Backward.
type Joystick struct {
	Deadzone float64

	startX float64
	flags  MoveFlags
}

// NewJoystick creates an idle joystick
func NewJoystick(deadzone float64) *Joystick {
	return &Joystick{Deadzone: deadzone}
}

// TouchStart records the origin and starts moving forward
func (j *Joystick) TouchStart(x float64) {
	j.startX = x
	j.flags.Forward = true
}

// TouchMove steers by the horizontal delta from the origin
func (j *Joystick) TouchMove(x float64) {
	delta := x - j.startX
	j.flags.Left = delta < -j.Deadzone
	j.flags.Right = delta > j.Deadzone
}

// TouchEnd stops all joystick movement
func (j *Joystick) TouchEnd() {
	j.flags.Forward = false
	j.flags.Left = false
	j.flags.Right = false
}

// Flags returns the current joystick flags
func (j *Joystick) Flags() MoveFlags {
	return j.flags
}
