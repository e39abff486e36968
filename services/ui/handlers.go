package ui

import (
	"menucode-go/bus"
	"menucode-go/dispatch"
	"menucode-go/menu"
)

// Handler ids referenced by the embedded menus.
const (
	HandlerStartGame   = "start_game"
	HandlerHome        = "home"
	HandlerToggleSound = "toggle_sound"
)

// PWMLookup finds a PWM output by configured name.
type PWMLookup func(name string) (dispatch.DutySetter, bool)

// RegisterHandlers installs the stock handlers plus one dimmer handler per
// PWM output, registered under the output's name.
func RegisterHandlers(reg *dispatch.Registry, conn *bus.Connection, pwmNames []string, lookup PWMLookup) error {
	stock := []struct {
		id string
		h  dispatch.Handler
	}{
		{HandlerStartGame, dispatch.Publish(conn, TopicGameStart, true)},
		{HandlerHome, func(menu.ActionContext) (menu.Outcome, error) {
			return menu.Outcome{ResetToRoot: true}, nil
		}},
		{HandlerToggleSound, dispatch.Chain(
			dispatch.Toggle("sound"),
			dispatch.Publish(conn, TopicSound, false),
		)},
	}
	for _, s := range stock {
		if err := reg.Register(s.id, s.h); err != nil {
			return err
		}
	}
	for _, name := range pwmNames {
		out, ok := lookup(name)
		if !ok {
			continue
		}
		if err := reg.Register(name, dispatch.PWMDimmer(out, "")); err != nil {
			return err
		}
	}
	return nil
}
