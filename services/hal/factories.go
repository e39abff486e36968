package hal

import "menucode-go/services/hal/internal/platform"

// DefaultPinFactory returns the GPIO factory for the build target.
func DefaultPinFactory() PinFactory { return platform.DefaultPinFactory() }

// DefaultPWMFactory returns the PWM factory for the build target.
func DefaultPWMFactory() PWMFactory { return platform.DefaultPWMFactory() }
