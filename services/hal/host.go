//go:build !rp2040 && !rp2350

package hal

import "menucode-go/services/hal/internal/platform"

// Host-only fakes, exposed so the simulator can drive pin levels.
type (
	HostFactory = platform.HostFactory
	FakePin     = platform.FakePin
	FakePWM     = platform.FakePWM
)

func NewHostFactory() *HostFactory { return platform.NewHostFactory() }

// Host returns the factory behind DefaultPinFactory on host builds.
func Host() *HostFactory { return platform.Host() }
