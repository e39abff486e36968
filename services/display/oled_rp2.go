//go:build rp2040 || rp2350

package display

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"menucode-go/errcode"
	"menucode-go/types"
)

var (
	font  = &proggy.TinySZ8pt7b
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const lineHeight = 10

// OLED draws views on an SSD1306 over I2C.
type OLED struct {
	dev        *ssd1306.Device
	rows, cols int
}

func NewOLED(cfg types.DisplayConfig) (*OLED, error) {
	bus := machine.I2C0
	if (cfg.SDA/2)%2 == 1 {
		bus = machine.I2C1
	}
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.Pin(cfg.SDA),
		SCL:       machine.Pin(cfg.SCL),
	}); err != nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "display", Msg: "i2c", Err: err}
	}

	d := ssd1306.NewI2C(bus)
	d.Configure(ssd1306.Config{
		Address: cfg.Addr,
		Width:   cfg.Width,
		Height:  cfg.Height,
	})
	d.ClearDisplay()

	rows := cfg.Rows
	if fit := int(cfg.Height) / lineHeight; rows == 0 || rows > fit {
		rows = fit
	}
	return &OLED{dev: &d, rows: rows, cols: cfg.Columns}, nil
}

func (o *OLED) Render(v types.View) error {
	o.dev.ClearBuffer()
	for i, line := range Lines(v, o.rows, o.cols) {
		tinyfont.WriteLine(o.dev, font, 0, int16(i*lineHeight+lineHeight-2), line, white)
	}
	return o.dev.Display()
}
