// Package device assembles one device from its configuration: the HAL,
// the input queue and either the menu UI or the standalone dimmer.
package device

import (
	"context"
	"strconv"
	"strings"

	"menucode-go/bus"
	"menucode-go/dispatch"
	"menucode-go/errcode"
	"menucode-go/input/evq"
	"menucode-go/input/mapper"
	"menucode-go/menu"
	"menucode-go/services/dimmer"
	"menucode-go/services/hal"
	"menucode-go/services/ui"
	"menucode-go/types"
)

type Device struct {
	Config types.DeviceConfig
	Queue  *evq.Queue
	HAL    *hal.Service
	UI     *ui.Service     // nil for a dimmer-only device
	Dimmer *dimmer.Service // nil unless cfg.Dimmer is set
}

func New(b *bus.Bus, cfg types.DeviceConfig, pins hal.PinFactory, pwms hal.PWMFactory) *Device {
	cfg = cfg.WithDefaults()
	d := &Device{Config: cfg, Queue: evq.New(cfg.Input.QueueLen)}
	d.HAL = hal.New(b.NewConnection("hal"), cfg, pins, pwms, d.Queue)
	return d
}

// Start validates the whole configuration and only then begins sampling
// input. Pins and outputs are configured first because handlers bind to
// the PWM outputs; if anything after that is rejected the HAL is aborted
// and never armed. Everything stops when ctx is cancelled.
func (d *Device) Start(ctx context.Context, b *bus.Bus) error {
	cfg := d.Config
	if cfg.Menu == nil && cfg.Dimmer == nil {
		return &errcode.E{C: errcode.MissingConfig, Op: "device", Msg: cfg.Name}
	}
	if err := checkInputs(cfg); err != nil {
		return err
	}

	if err := d.HAL.Setup(); err != nil {
		return err
	}
	var err error
	if cfg.Menu != nil {
		err = d.buildUI(b)
	} else {
		err = d.buildDimmer()
	}
	if err != nil {
		d.HAL.Abort(err)
		return err
	}

	d.HAL.Run(ctx)
	if d.UI != nil {
		go d.UI.Run(ctx)
	} else {
		go d.Dimmer.Run(ctx)
	}
	return nil
}

// checkInputs rejects a topology or dimmer that names an encoder or button
// with no configured pins.
func checkInputs(cfg types.DeviceConfig) error {
	knobs := map[uint8]bool{}
	for _, e := range cfg.Encoders {
		knobs[e.ID] = true
	}
	buttons := map[uint8]bool{}
	for _, btn := range cfg.Buttons {
		buttons[btn.ID] = true
	}

	var needK, needB []uint8
	if cfg.Menu != nil {
		needK, needB = mapper.Requires(cfg.Topology)
	} else {
		needK = []uint8{cfg.Dimmer.Knob}
		if cfg.Dimmer.Button != nil {
			needB = []uint8{*cfg.Dimmer.Button}
		}
	}
	var missing []string
	for _, k := range needK {
		if !knobs[k] {
			missing = append(missing, "encoder "+strconv.Itoa(int(k)))
		}
	}
	for _, id := range needB {
		if !buttons[id] {
			missing = append(missing, "button "+strconv.Itoa(int(id)))
		}
	}
	if len(missing) > 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "inputs", Msg: "not wired: " + strings.Join(missing, ", ")}
	}
	return nil
}

func (d *Device) buildUI(b *bus.Bus) error {
	cfg := d.Config
	topo, err := mapper.FromConfig(cfg.Topology)
	if err != nil {
		return err
	}

	conn := b.NewConnection("ui")
	reg := dispatch.New()
	names := make([]string, 0, len(cfg.PWM))
	for _, p := range cfg.PWM {
		names = append(names, p.Name)
	}
	lookup := func(name string) (dispatch.DutySetter, bool) {
		out, ok := d.HAL.PWM(name)
		return out, ok
	}
	if err := ui.RegisterHandlers(reg, conn, names, lookup); err != nil {
		return err
	}
	println("[ui] handlers:", strings.Join(reg.IDs(), ","))

	tree, err := menu.Build(cfg.Menu, reg)
	if err != nil {
		return err
	}
	nav := menu.NewNavigator(tree, reg, menu.Options{Wrap: cfg.Nav.WrapOrDefault()})
	d.UI = ui.New(conn, d.Queue, topo, nav, d.HAL)
	d.UI.Prime(reg)
	return nil
}

func (d *Device) buildDimmer() error {
	cfg := d.Config.Dimmer
	out, ok := d.HAL.PWM(cfg.PWM)
	if !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "dimmer", Msg: "no pwm output " + cfg.PWM}
	}
	dm, err := dimmer.New(*cfg, d.Queue, out)
	if err != nil {
		return err
	}
	d.Dimmer = dm
	return nil
}
