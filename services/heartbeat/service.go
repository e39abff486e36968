// Package heartbeat periodically publishes runtime memory statistics so a
// monitor can tell the firmware is alive and not leaking.
package heartbeat

import (
	"context"
	"runtime"
	"time"

	"menucode-go/bus"
	"menucode-go/types"
	"menucode-go/x/timex"
)

var (
	TopicConfig = bus.T("config", "heartbeat")
	TopicBeat   = bus.T("sys", "heartbeat")
)

type Service struct {
	interval time.Duration
	start    time.Time
	seq      uint32
	Quiet    bool // no console output
}

func New(interval time.Duration) *Service {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Service{interval: interval, start: time.Now()}
}

func (s *Service) Interval() time.Duration { return s.interval }

// beat samples the runtime. Uses builtin println to avoid fmt overhead.
func (s *Service) beat(now time.Time) types.Heartbeat {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.seq++
	hb := types.Heartbeat{
		Seq:       s.seq,
		UptimeMs:  now.Sub(s.start).Milliseconds(),
		Alloc:     uint32(ms.Alloc),
		HeapInuse: uint32(ms.HeapInuse),
		Mallocs:   uint32(ms.Mallocs),
		Frees:     uint32(ms.Frees),
	}
	if !s.Quiet {
		println("[heartbeat]", hb.Seq,
			"alloc:", hb.Alloc,
			"heapInuse:", hb.HeapInuse,
			"mallocs:", hb.Mallocs,
			"frees:", hb.Frees)
	}
	return hb
}

// configure applies a config/heartbeat payload. Reports whether the
// interval changed.
func (s *Service) configure(payload any) bool {
	c, ok := payload.(types.HeartbeatConfig)
	if !ok || c.IntervalMs == 0 {
		return false
	}
	iv := timex.Ms(c.IntervalMs)
	if iv == s.interval {
		return false
	}
	s.interval = iv
	return true
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(TopicConfig)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case t := <-tick.C:
			conn.Publish(conn.NewMessage(TopicBeat, s.beat(t), true))
		case msg := <-cfgSub.Channel():
			if s.configure(msg.Payload) {
				tick.Reset(s.interval)
				println("[heartbeat] interval set to", int(s.interval.Milliseconds()), "ms")
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
