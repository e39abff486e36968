package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw YAML for that device
// -----------------------------------------------------------------------------

// Rotary knob with push switch plus a separate back button, SSD1306 on I2C0.
const cfgPicoOLED = `
name: pico_oled
topology:
  kind: knob_two_button
  knob: 0
  ok: 0
  back: 1
input:
  debounce_ms: 5
  long_press_ms: 600
  sample_ms: 1
  queue_len: 16
  transitions_per_step: 4
nav:
  wrap: true
encoders:
  - {id: 0, a: 2, b: 3, pull: up, invert: true}
buttons:
  - {id: 0, pin: 4, pull: up, invert: true}
  - {id: 1, pin: 5, pull: up, invert: true}
pwm:
  - {name: backlight, pin: 15, freq_hz: 1000, top: 1000}
display:
  driver: ssd1306
  addr: 0x3C
  width: 128
  height: 64
  sda: 0
  scl: 1
  rows: 6
  columns: 21
menu:
  label: Main
  kind: submenu
  children:
    - {label: Start Game, kind: action, handler: start_game}
    - label: Settings
      kind: submenu
      children:
        - {label: Brightness, kind: value, key: brightness, handler: backlight, min: 0, max: 100, step: 5, value: 50, unit: "%"}
        - {label: Sound, kind: value, key: sound, min: 0, max: 1, step: 1, value: 1}
        - {label: Toggle Sound, kind: action, handler: toggle_sound}
    - label: About
      kind: submenu
      children:
        - {label: Back to Start, kind: action, handler: home}
`

// Two buttons only (Next, Ok; long Ok = Back). The view is streamed to an
// external renderer over UART0.
const cfgPicoButtons = `
name: pico_buttons
topology:
  kind: two_button
  next: 0
  ok: 1
  long_press_back: true
nav:
  wrap: true
buttons:
  - {id: 0, pin: 6, pull: up, invert: true}
  - {id: 1, pin: 7, pull: up, invert: true}
pwm:
  - {name: backlight, pin: 15}
display:
  driver: link
  uart: uart0
  baud: 115200
  tx: 0
  rx: 1
menu:
  label: Main
  kind: submenu
  children:
    - {label: Start Game, kind: action, handler: start_game}
    - label: Settings
      kind: submenu
      children:
        - {label: Brightness, kind: value, key: brightness, handler: backlight, min: 0, max: 100, step: 10, value: 50, unit: "%"}
        - {label: Back to Start, kind: action, handler: home}
`

// Standalone encoder-to-PWM dimmer; the knob switch toggles the lamp.
const cfgDimmer = `
name: dimmer
input:
  transitions_per_step: 4
encoders:
  - {id: 0, a: 2, b: 3, pull: up, invert: true}
buttons:
  - {id: 0, pin: 4, pull: up, invert: true}
pwm:
  - {name: lamp, pin: 16, freq_hz: 1000, top: 1000}
heartbeat:
  interval_ms: 2000
dimmer:
  knob: 0
  pwm: lamp
  min: 0
  max: 100
  step: 5
  initial: 30
  button: 0
`

var embeddedConfigs = map[string][]byte{
	"pico_oled":    []byte(cfgPicoOLED),
	"pico_buttons": []byte(cfgPicoButtons),
	"dimmer":       []byte(cfgDimmer),
}
