// Command menusim runs a device description on the host with simulated
// pins and prints the rendered view after every command.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"menucode-go/bus"
	"menucode-go/services/config"
	"menucode-go/services/display"
	"menucode-go/services/ui"
	"menucode-go/types"
)

func newTextRenderer(w io.Writer, cfg types.DisplayConfig) display.Renderer {
	return display.NewText(w, cfg.Rows, cfg.Columns)
}

func main() {
	deviceID := flag.String("device", "pico_oled", "embedded device description")
	list := flag.Bool("list", false, "list embedded devices and exit")
	flag.Parse()

	if *list {
		names := config.Devices()
		sort.Strings(names)
		fmt.Println(strings.Join(names, "\n"))
		return
	}

	cfg, err := config.Load(*deviceID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "menusim:", err)
		os.Exit(1)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Name + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "menusim: readline:", err)
		os.Exit(1)
	}
	defer rl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim, err := NewSim(ctx, cfg, rl.Stdout())
	if err != nil {
		fmt.Fprintln(os.Stderr, "menusim:", err)
		os.Exit(1)
	}
	watch(ctx, sim, rl.Stdout())
	sim.printHelp()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return
		}
		quit, err := sim.Exec(line)
		if err != nil {
			fmt.Fprintln(rl.Stdout(), "error:", err)
		}
		if quit {
			return
		}
	}
}

// watch renders every published view and reports action signals.
func watch(ctx context.Context, s *Sim, out io.Writer) {
	if s.dev.UI != nil {
		r := newTextRenderer(out, s.cfg.Display)
		go display.NewService(s.bus.NewConnection("display"), ui.TopicView, r).Run(ctx)
	}

	conn := s.bus.NewConnection("watch")
	sub := conn.Subscribe(bus.T("game", bus.Multi))
	pwm := conn.Subscribe(bus.T("hal", "cap", "io", "pwm", bus.Single, "value"))
	go func() {
		defer conn.Disconnect()
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-sub.Channel():
				if sig, ok := m.Payload.(types.ActionSignal); ok {
					fmt.Fprintf(out, "[%s] %s (%s)\n", m.Topic, sig.Label, sig.Handler)
				}
			case m := <-pwm.Channel():
				if v, ok := m.Payload.(types.PWMValue); ok {
					fmt.Fprintf(out, "[%s] level %d duty %d%%\n", m.Topic, v.Level, v.Duty)
				}
			}
		}
	}()
}
