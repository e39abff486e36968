package types

// ---- Raw input events (producer side) ----

// EncoderStep is one confirmed detent of a rotary encoder.
type EncoderStep struct {
	Knob uint8
	Dir  int8 // +1 or -1
}

type ButtonKind uint8

const (
	ButtonPressed ButtonKind = iota + 1
	ButtonReleased
	ButtonLongPressed
)

func (k ButtonKind) String() string {
	switch k {
	case ButtonPressed:
		return "pressed"
	case ButtonReleased:
		return "released"
	case ButtonLongPressed:
		return "long_pressed"
	default:
		return "unknown"
	}
}

// ButtonEvent is a settled button transition.
type ButtonEvent struct {
	ID   uint8
	Kind ButtonKind
}

type InputKind uint8

const (
	InputNone InputKind = iota
	InputStep
	InputButton
)

// InputEvent is the value carried by the input queue. It holds no pointers so
// producers running in interrupt context never allocate.
type InputEvent struct {
	Kind   InputKind
	Step   EncoderStep
	Button ButtonEvent
}

func StepEvent(knob uint8, dir int8) InputEvent {
	return InputEvent{Kind: InputStep, Step: EncoderStep{Knob: knob, Dir: dir}}
}

func ButtonEventOf(id uint8, kind ButtonKind) InputEvent {
	return InputEvent{Kind: InputButton, Button: ButtonEvent{ID: id, Kind: kind}}
}

// ---- Canonical navigation commands ----

type Command uint8

const (
	CmdNone Command = iota
	CmdNext
	CmdPrev
	CmdOk
	CmdBack
)

func (c Command) String() string {
	switch c {
	case CmdNext:
		return "next"
	case CmdPrev:
		return "prev"
	case CmdOk:
		return "ok"
	case CmdBack:
		return "back"
	default:
		return "none"
	}
}
