package types

// ---- Public device configuration ----

// Topology kinds.
const (
	TopologyTwoButton         = "two_button"
	TopologyKnobPlusButton    = "knob_button"
	TopologyKnobPlusTwoButton = "knob_two_button"
)

type TopologyConfig struct {
	Kind          string `yaml:"kind"`
	Knob          uint8  `yaml:"knob"`
	Next          uint8  `yaml:"next"`
	Ok            uint8  `yaml:"ok"`
	Back          uint8  `yaml:"back"`
	LongPressBack bool   `yaml:"long_press_back"`
}

type InputConfig struct {
	DebounceMs         uint16 `yaml:"debounce_ms"`
	LongPressMs        uint16 `yaml:"long_press_ms"`
	SampleMs           uint16 `yaml:"sample_ms"`
	QueueLen           int    `yaml:"queue_len"`
	TransitionsPerStep uint8  `yaml:"transitions_per_step"`
	PollEncoderUs      uint32 `yaml:"poll_encoder_us"` // 0 = edge interrupts
}

type EncoderPins struct {
	ID     uint8  `yaml:"id"`
	A      int    `yaml:"a"`
	B      int    `yaml:"b"`
	Pull   string `yaml:"pull"`   // "none","up","down"
	Invert bool   `yaml:"invert"` // true if a closed contact reads low
}

type ButtonPin struct {
	ID     uint8  `yaml:"id"`
	Pin    int    `yaml:"pin"`
	Pull   string `yaml:"pull"`
	Invert bool   `yaml:"invert"` // true if pressed == low
}

type PWMConfig struct {
	Name      string `yaml:"name"`
	Pin       int    `yaml:"pin"`
	FreqHz    uint64 `yaml:"freq_hz"`
	Top       uint16 `yaml:"top"`
	ActiveLow bool   `yaml:"active_low"`
}

type DisplayConfig struct {
	Driver  string `yaml:"driver"` // "ssd1306", "link", "text"
	Addr    uint16 `yaml:"addr"`
	Width   int16  `yaml:"width"`
	Height  int16  `yaml:"height"`
	SDA     int    `yaml:"sda"`
	SCL     int    `yaml:"scl"`
	UART    string `yaml:"uart"`
	Baud    uint32 `yaml:"baud"`
	TX      int    `yaml:"tx"`
	RX      int    `yaml:"rx"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
}

type HeartbeatConfig struct {
	IntervalMs uint32 `yaml:"interval_ms"`
}

type NavConfig struct {
	Wrap *bool `yaml:"wrap"`
}

// DeviceConfig is the full static description of one device build.
type DeviceConfig struct {
	Name      string          `yaml:"name"`
	Topology  TopologyConfig  `yaml:"topology"`
	Input     InputConfig     `yaml:"input"`
	Nav       NavConfig       `yaml:"nav"`
	Encoders  []EncoderPins   `yaml:"encoders"`
	Buttons   []ButtonPin     `yaml:"buttons"`
	PWM       []PWMConfig     `yaml:"pwm"`
	Display   DisplayConfig   `yaml:"display"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Dimmer    *DimmerConfig   `yaml:"dimmer,omitempty"`
	Menu      *MenuNode       `yaml:"menu,omitempty"`
}

// DimmerConfig describes the standalone encoder-to-PWM path.
type DimmerConfig struct {
	Knob    uint8  `yaml:"knob"`
	PWM     string `yaml:"pwm"`
	Min     int    `yaml:"min"`
	Max     int    `yaml:"max"`
	Step    int    `yaml:"step"`
	Initial int    `yaml:"initial"`
	Button  *uint8 `yaml:"button,omitempty"` // optional on/off toggle
}

// Wrap reports whether Next/Prev wrap at the ends of a submenu.
func (n NavConfig) WrapOrDefault() bool {
	if n.Wrap == nil {
		return true
	}
	return *n.Wrap
}

// WithDefaults fills zero timing and sizing fields.
func (c DeviceConfig) WithDefaults() DeviceConfig {
	if c.Input.DebounceMs == 0 {
		c.Input.DebounceMs = 5
	}
	if c.Input.LongPressMs == 0 {
		c.Input.LongPressMs = 600
	}
	if c.Input.SampleMs == 0 {
		c.Input.SampleMs = 1
	}
	if c.Input.QueueLen <= 0 {
		c.Input.QueueLen = 16
	}
	if c.Input.TransitionsPerStep == 0 {
		c.Input.TransitionsPerStep = 4
	}
	if c.Display.Rows == 0 {
		c.Display.Rows = 6
	}
	if c.Display.Columns == 0 {
		c.Display.Columns = 21
	}
	if c.Heartbeat.IntervalMs == 0 {
		c.Heartbeat.IntervalMs = 5000
	}
	for i := range c.PWM {
		if c.PWM[i].FreqHz == 0 {
			c.PWM[i].FreqHz = 1000
		}
		if c.PWM[i].Top == 0 {
			c.PWM[i].Top = 1000
		}
	}
	return c
}
