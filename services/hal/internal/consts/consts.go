// services/hal/internal/consts/consts.go
package consts

// Topic tokens
const (
	TokHAL   = "hal"
	TokCap   = "cap"
	TokIO    = "io"
	TokInfo  = "info"
	TokState = "state"
	TokValue = "value"
)

// Sampling limits
const (
	MinSampleMs     = 1
	DefaultPollUs   = 500
	MaxButtonInputs = 32
)
