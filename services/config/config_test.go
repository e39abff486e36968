// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"menucode-go/bus"
	"menucode-go/errcode"
	"menucode-go/menu"
	"menucode-go/types"
)

type anyHandler struct{}

func (anyHandler) Has(string) bool { return true }

func TestEmbeddedConfigsLoadAndBuild(t *testing.T) {
	for _, dev := range Devices() {
		t.Run(dev, func(t *testing.T) {
			cfg, err := Load(dev)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Name != dev {
				t.Fatalf("name = %q", cfg.Name)
			}
			if cfg.Input.QueueLen == 0 || cfg.Input.DebounceMs == 0 {
				t.Fatal("defaults not applied")
			}
			if cfg.Menu != nil {
				if _, err := menu.Build(cfg.Menu, anyHandler{}); err != nil {
					t.Fatalf("menu: %v", err)
				}
			}
		})
	}
}

func TestPicoOLEDShape(t *testing.T) {
	cfg, err := Load("pico_oled")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Topology.Kind != types.TopologyKnobPlusTwoButton || cfg.Topology.Back != 1 {
		t.Fatalf("topology = %+v", cfg.Topology)
	}
	if cfg.Display.Addr != 0x3C || cfg.Display.Driver != "ssd1306" {
		t.Fatalf("display = %+v", cfg.Display)
	}
	if !cfg.Nav.WrapOrDefault() || len(cfg.Encoders) != 1 || !cfg.Encoders[0].Invert {
		t.Fatal("nav/encoder fields not decoded")
	}
}

func TestLoadErrors(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })
	docs := map[string]string{
		"typo":    "name: x\nmenuu: {}\n",
		"broken":  "name: [\n",
		"nothing": "name: x\n",
	}
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		d, ok := docs[device]
		return []byte(d), ok
	}

	cases := []struct {
		device string
		want   errcode.Code
	}{
		{"", errcode.MissingConfig},
		{"unknown-device", errcode.MissingConfig},
		{"typo", errcode.InvalidPayload},
		{"broken", errcode.InvalidPayload},
		{"nothing", errcode.MissingConfig},
	}
	for _, c := range cases {
		if _, err := Load(c.device); errcode.Of(err) != c.want {
			t.Fatalf("Load(%q) = %v, want %s", c.device, err, c.want)
		}
	}
}

func TestConfig_PublishEmbedded_RetainedPerSection(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "dimmer")
	svc.Start(ctx, conn)

	// Retained messages arrive whether the publisher ran before or after.
	sub := conn.Subscribe(bus.T(configPrefix, "#"))
	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 10 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			key, ok := m.Topic[1].(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic[1])
			}
			got[key] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 retained sections, got %d (%v)", len(got), got)
	}
	if _, ok := got["menu"]; ok {
		t.Fatal("dimmer device published a menu section")
	}
	d, ok := got["dimmer"].(types.DimmerConfig)
	if !ok || d.PWM != "lamp" || d.Initial != 30 || d.Button == nil || *d.Button != 0 {
		t.Fatalf("dimmer section = %#v", got["dimmer"])
	}
}

func TestConfig_Publish_MissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-device")
	svc := NewConfigService()

	if _, err := svc.Publish(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}
