//go:build rp2040 || rp2350

package display

import (
	"machine"

	"menucode-go/errcode"
	"menucode-go/types"
)

// Open builds the renderer named by cfg.Driver.
func Open(cfg types.DisplayConfig) (Renderer, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "ssd1306":
		return NewOLED(cfg)
	case "link":
		w, err := openUART(cfg)
		if err != nil {
			return nil, err
		}
		return NewLink(w), nil
	case "text":
		return NewText(machine.Serial, cfg.Rows, cfg.Columns), nil
	}
	return nil, &errcode.E{C: errcode.Unsupported, Op: "display", Msg: cfg.Driver}
}
