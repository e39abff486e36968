// services/hal/types.go
package hal

import "menucode-go/services/hal/internal/halcore"

// Re-exported so callers outside the HAL can supply pins and PWM channels.
type (
	Pull       = halcore.Pull
	GPIOPin    = halcore.GPIOPin
	IRQPin     = halcore.IRQPin
	Edge       = halcore.Edge
	PinFactory = halcore.PinFactory
	PWM        = halcore.PWM
	PWMFactory = halcore.PWMFactory
)

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown

	EdgeNone    = halcore.EdgeNone
	EdgeRising  = halcore.EdgeRising
	EdgeFalling = halcore.EdgeFalling
	EdgeBoth    = halcore.EdgeBoth
)
