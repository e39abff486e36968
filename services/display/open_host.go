//go:build !rp2040 && !rp2350

package display

import (
	"os"

	"menucode-go/errcode"
	"menucode-go/types"
)

// Open builds the renderer named by cfg.Driver. Host builds only offer the
// text console; hardware drivers fall back to it.
func Open(cfg types.DisplayConfig) (Renderer, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "text", "ssd1306", "link":
		return NewText(os.Stdout, cfg.Rows, cfg.Columns), nil
	}
	return nil, &errcode.E{C: errcode.Unsupported, Op: "display", Msg: cfg.Driver}
}
