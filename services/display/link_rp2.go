//go:build rp2040 || rp2350

package display

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"menucode-go/errcode"
	"menucode-go/types"
)

// openUART configures the hardware UART named in cfg for the display link.
func openUART(cfg types.DisplayConfig) (io.Writer, error) {
	var hw *uartx.UART
	switch cfg.UART {
	case "uart0", "":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "display", Msg: "uart " + cfg.UART}
	}
	baud := cfg.Baud
	if baud == 0 {
		baud = 115200
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(cfg.TX),
		RX:       machine.Pin(cfg.RX),
	}); err != nil {
		return nil, err
	}
	return hw, nil
}
