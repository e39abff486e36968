package config

import (
	"bytes"
	"context"

	"gopkg.in/yaml.v3"

	"menucode-go/bus"
	"menucode-go/errcode"
	"menucode-go/types"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Devices lists the embedded device names.
func Devices() []string {
	out := make([]string, 0, len(embeddedConfigs))
	for k := range embeddedConfigs {
		out = append(out, k)
	}
	return out
}

// Load resolves and decodes the description for device. Unknown fields are
// an error so that a typo in a description fails at boot, not silently.
func Load(device string) (types.DeviceConfig, error) {
	var cfg types.DeviceConfig
	if device == "" {
		return cfg, &errcode.E{C: errcode.MissingConfig, Op: "config", Msg: "no device id"}
	}
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return cfg, &errcode.E{C: errcode.MissingConfig, Op: "config", Msg: "no embedded config for device: " + device}
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, &errcode.E{C: errcode.InvalidPayload, Op: "config", Msg: device, Err: err}
	}
	if cfg.Menu == nil && cfg.Dimmer == nil {
		return cfg, &errcode.E{C: errcode.MissingConfig, Op: "config", Msg: device + ": neither menu nor dimmer"}
	}
	if cfg.Name == "" {
		cfg.Name = device
	}
	return cfg.WithDefaults(), nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// sections splits a config into the retained documents published under
// config/<section>.
func sections(cfg types.DeviceConfig) map[string]any {
	m := map[string]any{
		"device":    cfg.Name,
		"topology":  cfg.Topology,
		"input":     cfg.Input,
		"nav":       cfg.Nav,
		"encoders":  cfg.Encoders,
		"buttons":   cfg.Buttons,
		"pwm":       cfg.PWM,
		"display":   cfg.Display,
		"heartbeat": cfg.Heartbeat,
	}
	if cfg.Dimmer != nil {
		m["dimmer"] = *cfg.Dimmer
	}
	if cfg.Menu != nil {
		m["menu"] = cfg.Menu
	}
	return m
}

// Publish loads the config for the device named in ctx and publishes each
// section as a retained message. The decoded config is returned so the
// caller can wire services without a bus round trip.
func (s *ConfigService) Publish(ctx context.Context, conn *bus.Connection) (types.DeviceConfig, error) {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	cfg, err := Load(device)
	if err != nil {
		return cfg, err
	}
	for k, v := range sections(cfg) {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	return cfg, nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if _, err := s.Publish(ctx, conn); err != nil {
			println("[config] publish failed:", err.Error())
		}
	}()
}
