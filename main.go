package main

import (
	"context"
	"time"

	"menucode-go/bus"
	"menucode-go/services/config"
	"menucode-go/services/device"
	"menucode-go/services/display"
	"menucode-go/services/hal"
	"menucode-go/services/heartbeat"
	"menucode-go/services/ui"
)

// deviceID selects the embedded description. Override at link time:
//
//	tinygo flash -target pico -ldflags "-X main.deviceID=pico_buttons"
var deviceID = "pico_oled"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(3 * time.Second)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)

	println("[main] bootstrapping bus …")
	b := bus.NewBus(4)
	mainConn := b.NewConnection("main")

	println("[main] subscribing to hal/# for diagnostics …")
	mon := mainConn.Subscribe(bus.T("hal", bus.Multi))
	go func() {
		for m := range mon.Channel() {
			println("[monitor] <-", m.Topic.String())
		}
	}()

	println("[main] publishing config for", deviceID, "…")
	cfg, err := config.NewConfigService().Publish(ctx, b.NewConnection("config"))
	if err != nil {
		halt("config", err)
	}

	println("[main] starting device …")
	dev := device.New(b, cfg, hal.DefaultPinFactory(), hal.DefaultPWMFactory())
	if err := dev.Start(ctx, b); err != nil {
		halt("device", err)
	}

	if dev.UI != nil {
		r, err := display.Open(dev.Config.Display)
		if err != nil {
			println("[main] display unavailable:", err.Error())
		} else if r != nil {
			go display.NewService(b.NewConnection("display"), ui.TopicView, r).Run(ctx)
		}
	}

	hb := heartbeat.New(time.Duration(cfg.Heartbeat.IntervalMs) * time.Millisecond)
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	for {
		time.Sleep(10 * time.Second)
		println("[main] queue", dev.Queue.Len(), "overflow", dev.Queue.Overflow(),
			"invalid", dev.HAL.InvalidTransitions())
	}
}

// halt reports a fatal boot error forever; there is nowhere to return to.
func halt(what string, err error) {
	for {
		println("[main]", what, "failed:", err.Error())
		time.Sleep(2 * time.Second)
	}
}
