package types

// ---- Common service state (retained) ----

type ServiceState struct {
	Level  string `yaml:"level"`  // e.g. "idle", "ready", "stopped"
	Status string `yaml:"status"` // freeform short code
	TSms   int64  `yaml:"ts_ms"`
}

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

type CapabilityStatus struct {
	Link  Link   `yaml:"link"`
	TSms  int64  `yaml:"ts_ms"`
	Error string `yaml:"error,omitempty"`
}

// ---- Capability kinds & info ----

type Kind string

const (
	KindPWM     Kind = "pwm"
	KindButton  Kind = "button"
	KindEncoder Kind = "encoder"
	KindDisplay Kind = "display"
)

// Info envelope each capability exposes (retained).
type Info struct {
	SchemaVersion int    `yaml:"schema_version"`
	Driver        string `yaml:"driver"`
	Detail        any    `yaml:"detail,omitempty"`
}

// PWMInfo is published under hal/cap/.../info as Info.Detail.
type PWMInfo struct {
	Pin       int
	FreqHz    uint64
	Top       uint16
	ActiveLow bool
}

// PWMValue is published under hal/cap/.../value (retained).
type PWMValue struct {
	Level uint16 // 0..Top
	Duty  uint8  // 0..100
}

// ---- UI statistics (retained) ----

type InputStats struct {
	Overflow           uint32 // events dropped by the input queue
	InvalidTransitions uint32 // quadrature samples rejected as noise
}

// ActionSignal is the payload published by bus-backed menu actions.
type ActionSignal struct {
	Handler string
	Label   string
	TSms    int64
}

// ---- Heartbeat (retained) ----

// Heartbeat is published periodically under sys/heartbeat.
type Heartbeat struct {
	Seq       uint32
	UptimeMs  int64
	Alloc     uint32
	HeapInuse uint32
	Mallocs   uint32
	Frees     uint32
}
