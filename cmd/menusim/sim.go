package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"menucode-go/bus"
	"menucode-go/services/device"
	"menucode-go/services/hal"
	"menucode-go/services/ui"
	"menucode-go/types"
)

// Sim drives one device built on host fakes. Commands toggle the fake
// pins exactly as the hardware would, so every event still travels
// through the decoder, the debouncer and the queue.
type Sim struct {
	cfg  types.DeviceConfig
	bus  *bus.Bus
	conn *bus.Connection
	pins *hal.HostFactory
	dev  *device.Device
	out  io.Writer
}

func NewSim(ctx context.Context, cfg types.DeviceConfig, out io.Writer) (*Sim, error) {
	b := bus.NewBus(8)
	f := hal.NewHostFactory()
	cfg = cfg.WithDefaults()

	// Idle levels: an inverted (pull-up) input rests high.
	for _, e := range cfg.Encoders {
		f.Pin(e.A).Set(e.Invert)
		f.Pin(e.B).Set(e.Invert)
	}
	for _, btn := range cfg.Buttons {
		f.Pin(btn.Pin).Set(btn.Invert)
	}

	dev := device.New(b, cfg, f, f)
	if err := dev.Start(ctx, b); err != nil {
		return nil, err
	}
	return &Sim{cfg: cfg, bus: b, conn: b.NewConnection("sim"), pins: f, dev: dev, out: out}, nil
}

func (s *Sim) Device() *device.Device { return s.dev }

// Exec runs one command line. quit reports whether the session should end.
func (s *Sim) Exec(line string) (quit bool, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]
	n := count(args)

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "quit", "exit", "q":
		return true, nil
	case "next", "n":
		return false, s.repeat(n, s.next)
	case "prev", "p":
		return false, s.repeat(n, s.prev)
	case "ok", "o":
		return false, s.ok()
	case "back", "b":
		return false, s.back()
	case "cw", "ccw":
		knob, err := s.knobArg(args)
		if err != nil {
			return false, err
		}
		dir := 1
		if cmd == "ccw" {
			dir = -1
		}
		return false, s.repeat(n, func() error { return s.turn(knob, dir) })
	case "press", "hold":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: %s <button id>", cmd)
		}
		id, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return false, fmt.Errorf("bad button id %q", args[0])
		}
		if cmd == "hold" {
			return false, s.hold(uint8(id))
		}
		return false, s.press(uint8(id))
	case "reset":
		s.conn.Publish(s.conn.NewMessage(ui.TopicReset, true, false))
	case "view", "v":
		s.printView()
	case "stats":
		s.printStats()
	case "pwm":
		s.printPWM()
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

func count(args []string) int {
	for _, a := range args {
		if n, err := strconv.Atoi(a); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// knobArg reads an optional "k<id>" argument.
func (s *Sim) knobArg(args []string) (uint8, error) {
	for _, a := range args {
		if strings.HasPrefix(a, "k") {
			id, err := strconv.ParseUint(a[1:], 10, 8)
			if err != nil {
				return 0, fmt.Errorf("bad knob %q", a)
			}
			return uint8(id), nil
		}
	}
	return s.knob(), nil
}

func (s *Sim) repeat(n int, f func() error) error {
	for i := 0; i < n; i++ {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sim) hasKnob() bool {
	return s.cfg.Topology.Kind == types.TopologyKnobPlusButton ||
		s.cfg.Topology.Kind == types.TopologyKnobPlusTwoButton ||
		s.cfg.Dimmer != nil
}

func (s *Sim) knob() uint8 {
	if s.cfg.Dimmer != nil {
		return s.cfg.Dimmer.Knob
	}
	return s.cfg.Topology.Knob
}

func (s *Sim) next() error {
	if s.hasKnob() {
		return s.turn(s.knob(), +1)
	}
	return s.press(s.cfg.Topology.Next)
}

func (s *Sim) prev() error {
	if !s.hasKnob() {
		return fmt.Errorf("topology %s has no previous", s.cfg.Topology.Kind)
	}
	return s.turn(s.knob(), -1)
}

func (s *Sim) ok() error {
	if s.cfg.Dimmer != nil && s.cfg.Dimmer.Button != nil {
		return s.press(*s.cfg.Dimmer.Button)
	}
	return s.press(s.cfg.Topology.Ok)
}

func (s *Sim) back() error {
	t := s.cfg.Topology
	switch {
	case t.Kind == types.TopologyKnobPlusTwoButton:
		return s.press(t.Back)
	case t.LongPressBack:
		return s.hold(t.Ok)
	}
	return fmt.Errorf("topology %s has no back", t.Kind)
}

func (s *Sim) encoder(knob uint8) (types.EncoderPins, bool) {
	for _, e := range s.cfg.Encoders {
		if e.ID == knob {
			return e, true
		}
	}
	return types.EncoderPins{}, false
}

// turn performs one full detent: 00 -> 01 -> 11 -> 10 -> 00 forward.
func (s *Sim) turn(knob uint8, dir int) error {
	e, ok := s.encoder(knob)
	if !ok {
		return fmt.Errorf("no encoder %d", knob)
	}
	first, second := s.pins.Pin(e.B), s.pins.Pin(e.A)
	if dir < 0 {
		first, second = second, first
	}
	active := !e.Invert
	first.Set(active)
	second.Set(active)
	first.Set(!active)
	second.Set(!active)
	s.settle()
	return nil
}

func (s *Sim) button(id uint8) (*hal.FakePin, bool, error) {
	for _, b := range s.cfg.Buttons {
		if b.ID == id {
			return s.pins.Pin(b.Pin), !b.Invert, nil
		}
	}
	return nil, false, fmt.Errorf("no button %d", id)
}

func (s *Sim) press(id uint8) error {
	return s.holdFor(id, s.debounce()*3)
}

func (s *Sim) hold(id uint8) error {
	return s.holdFor(id, time.Duration(s.cfg.Input.LongPressMs)*time.Millisecond+s.debounce()*3)
}

func (s *Sim) holdFor(id uint8, d time.Duration) error {
	pin, active, err := s.button(id)
	if err != nil {
		return err
	}
	pin.Set(active)
	time.Sleep(d)
	pin.Set(!active)
	time.Sleep(s.debounce() * 3)
	s.settle()
	return nil
}

func (s *Sim) debounce() time.Duration {
	return time.Duration(s.cfg.Input.DebounceMs+s.cfg.Input.SampleMs) * time.Millisecond
}

// settle gives the consumer a moment to drain the queue.
func (s *Sim) settle() {
	deadline := time.Now().Add(200 * time.Millisecond)
	for s.dev.Queue.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(5 * time.Millisecond)
}

func (s *Sim) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  next|n [count]       next item (knob cw or Next button)")
	fmt.Fprintln(s.out, "  prev|p [count]       previous item (knob topologies)")
	fmt.Fprintln(s.out, "  ok|o                 press Ok")
	fmt.Fprintln(s.out, "  back|b               Back button or long press Ok")
	fmt.Fprintln(s.out, "  cw|ccw [count] [kN]  turn encoder N one detent per count")
	fmt.Fprintln(s.out, "  press|hold <id>      short or long press of a button")
	fmt.Fprintln(s.out, "  reset                return to the root menu")
	fmt.Fprintln(s.out, "  view|v               print the current view")
	fmt.Fprintln(s.out, "  stats                queue and decoder counters")
	fmt.Fprintln(s.out, "  pwm                  PWM output levels")
	fmt.Fprintln(s.out, "  quit                 leave")
}

// View returns the last view the UI published.
func (s *Sim) View() (types.View, bool) {
	sub := s.conn.Subscribe(ui.TopicView)
	defer s.conn.Unsubscribe(sub)
	select {
	case m := <-sub.Channel():
		v, ok := m.Payload.(types.View)
		return v, ok
	default:
		return types.View{}, false
	}
}

func (s *Sim) printView() {
	v, ok := s.View()
	if !ok {
		s.printPWM()
		return
	}
	r := newTextRenderer(s.out, s.cfg.Display)
	if err := r.Render(v); err != nil {
		fmt.Fprintln(s.out, "render:", err)
	}
}

func (s *Sim) printStats() {
	q := s.dev.Queue
	fmt.Fprintf(s.out, "queue %d/%d pushed %d overflow %d invalid %d\n",
		q.Len(), q.Cap(), q.Pushed(), q.Overflow(), s.dev.HAL.InvalidTransitions())
}

func (s *Sim) printPWM() {
	for _, p := range s.cfg.PWM {
		out, ok := s.dev.HAL.PWM(p.Name)
		if !ok {
			continue
		}
		fmt.Fprintf(s.out, "%-10s level %4d/%d duty %3d%%\n", p.Name, out.Level(), out.Top(), out.Duty())
	}
}
