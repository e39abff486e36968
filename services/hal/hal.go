// services/hal/hal.go
package hal

import (
	"context"
	"strconv"
	"time"

	"menucode-go/bus"
	"menucode-go/errcode"
	"menucode-go/input/debounce"
	"menucode-go/input/evq"
	"menucode-go/input/quadrature"
	"menucode-go/services/hal/internal/consts"
	"menucode-go/services/hal/internal/halcore"
	"menucode-go/types"
	"menucode-go/x/timex"
)

// Service owns the input pins and PWM outputs of one device. Encoder
// phases are decoded in interrupt context (or on a poll tick when a pin
// cannot interrupt); buttons are sampled on a ticker and debounced. Both
// producers push into the same input queue.
type Service struct {
	conn *bus.Connection
	cfg  types.DeviceConfig
	pins PinFactory
	pwms PWMFactory
	q    *evq.Queue

	claimed  map[int]string
	encoders []*encoder
	polled   []*encoder
	buttons  sampler
	outputs  map[string]*PWMOutput
	cancels  []func()
}

func New(conn *bus.Connection, cfg types.DeviceConfig, pins PinFactory, pwms PWMFactory, q *evq.Queue) *Service {
	return &Service{
		conn:    conn,
		cfg:     cfg.WithDefaults(),
		pins:    pins,
		pwms:    pwms,
		q:       q,
		claimed: map[int]string{},
		outputs: map[string]*PWMOutput{},
	}
}

// Setup claims and configures every pin and output without arming
// interrupts or sampling. PWM outputs are usable afterwards. On error
// nothing is left armed and the error state is published.
func (s *Service) Setup() error {
	s.publishState("idle", "configuring")
	if err := s.setup(); err != nil {
		s.Abort(err)
		return err
	}
	return nil
}

// Run arms encoder interrupts and starts the sampling goroutine, which
// stops when ctx is cancelled. Call after a successful Setup.
func (s *Service) Run(ctx context.Context) {
	s.armEncoders()
	go s.run(ctx)
	s.publishState("ready", "configured")
	println("[hal] ready: encoders", len(s.encoders), "buttons", len(s.buttons.lines), "pwm", len(s.outputs))
}

// Start is Setup followed by Run.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Setup(); err != nil {
		return err
	}
	s.Run(ctx)
	return nil
}

// Abort disarms everything and publishes err as the service state. Used
// when a consumer of the HAL rejects the configuration after Setup.
func (s *Service) Abort(err error) {
	s.teardown()
	s.publishState("error", string(errcode.Of(err)))
}

func (s *Service) setup() error {
	in := s.cfg.Input
	for _, e := range s.cfg.Encoders {
		if err := s.addEncoder(e); err != nil {
			return err
		}
	}

	maxID := -1
	for _, b := range s.cfg.Buttons {
		if int(b.ID) >= consts.MaxButtonInputs {
			return &errcode.E{C: errcode.InvalidParams, Op: "button", Msg: "id " + strconv.Itoa(int(b.ID))}
		}
		pin, err := s.claimInput(b.Pin, b.Pull, "button")
		if err != nil {
			return err
		}
		s.buttons.lines = append(s.buttons.lines, buttonLine{id: b.ID, pin: pin, invert: b.Invert})
		maxID = max(maxID, int(b.ID))
	}
	s.buttons.deb = debounce.New(debounce.Config{
		Buttons:   maxID + 1,
		Window:    timex.Ms(in.DebounceMs),
		LongPress: timex.Ms(in.LongPressMs),
	})
	s.buttons.q = s.q
	s.buttons.seed(time.Now())

	for _, p := range s.cfg.PWM {
		if err := s.addPWM(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) claim(n int, who string) error {
	if owner, busy := s.claimed[n]; busy {
		return &errcode.E{C: errcode.PinInUse, Op: who, Msg: "pin " + strconv.Itoa(n) + " held by " + owner}
	}
	s.claimed[n] = who
	return nil
}

func (s *Service) claimInput(n int, pull, who string) (GPIOPin, error) {
	if err := s.claim(n, who); err != nil {
		return nil, err
	}
	pin, ok := s.pins.ByNumber(n)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: who, Msg: strconv.Itoa(n)}
	}
	p, ok := halcore.ParsePull(pull)
	if !ok {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: who, Msg: "pull " + pull}
	}
	if err := pin.ConfigureInput(p); err != nil {
		return nil, err
	}
	return pin, nil
}

func (s *Service) addEncoder(cfg types.EncoderPins) error {
	a, err := s.claimInput(cfg.A, cfg.Pull, "encoder")
	if err != nil {
		return err
	}
	b, err := s.claimInput(cfg.B, cfg.Pull, "encoder")
	if err != nil {
		return err
	}
	e := &encoder{
		a:      a,
		b:      b,
		invert: cfg.Invert,
		q:      s.q,
		dec: quadrature.New(quadrature.Config{
			Knob:               cfg.ID,
			TransitionsPerStep: s.cfg.Input.TransitionsPerStep,
		}),
	}
	e.dec.Reset(e.levels())
	s.encoders = append(s.encoders, e)
	return nil
}

// armEncoders installs edge interrupts, or schedules polling when polling
// is configured or a pin cannot interrupt.
func (s *Service) armEncoders() {
	for _, e := range s.encoders {
		if s.cfg.Input.PollEncoderUs == 0 {
			if cancel, ok := e.arm(); ok {
				s.cancels = append(s.cancels, cancel)
				continue
			}
			println("[hal] encoder", e.dec.Knob(), "pins cannot interrupt, polling")
		}
		s.polled = append(s.polled, e)
	}
}

func (s *Service) addPWM(cfg types.PWMConfig) error {
	if _, dup := s.outputs[cfg.Name]; dup || cfg.Name == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "pwm", Msg: "name " + strconv.Quote(cfg.Name)}
	}
	if err := s.claim(cfg.Pin, "pwm"); err != nil {
		return err
	}
	ch, ok := s.pwms.PWMByPin(cfg.Pin)
	if !ok {
		return &errcode.E{C: errcode.UnknownPin, Op: "pwm", Msg: strconv.Itoa(cfg.Pin)}
	}
	out := newPWMOutput(s.conn, cfg, ch)
	if err := out.init(); err != nil {
		return &errcode.E{C: errcode.Error, Op: "pwm", Msg: cfg.Name, Err: err}
	}
	s.outputs[cfg.Name] = out
	return nil
}

func (s *Service) teardown() {
	for _, c := range s.cancels {
		c()
	}
	s.cancels = nil
	s.polled = nil
}

func (s *Service) run(ctx context.Context) {
	sample := time.NewTicker(timex.Ms(max(s.cfg.Input.SampleMs, consts.MinSampleMs)))
	defer sample.Stop()

	var poll <-chan time.Time
	if len(s.polled) > 0 {
		us := s.cfg.Input.PollEncoderUs
		if us == 0 {
			us = consts.DefaultPollUs
		}
		t := time.NewTicker(time.Duration(us) * time.Microsecond)
		defer t.Stop()
		poll = t.C
	}

	for {
		select {
		case <-ctx.Done():
			s.teardown()
			s.publishState("stopped", "context_cancelled")
			return
		case now := <-sample.C:
			s.buttons.tick(now)
		case <-poll:
			s.pollEncoders()
		}
	}
}

func (s *Service) pollEncoders() {
	for _, e := range s.polled {
		e.sample()
	}
}

// PWM returns the named output.
func (s *Service) PWM(name string) (*PWMOutput, bool) {
	o, ok := s.outputs[name]
	return o, ok
}

// InvalidTransitions sums the rejected quadrature samples of all encoders.
func (s *Service) InvalidTransitions() uint32 {
	var n uint32
	for _, e := range s.encoders {
		n += e.dec.Invalid()
	}
	return n
}

func (s *Service) publishState(level, status string) {
	s.conn.Publish(s.conn.NewMessage(bus.T(consts.TokHAL, consts.TokState), types.ServiceState{
		Level:  level,
		Status: status,
		TSms:   timex.NowMs(),
	}, true))
}
