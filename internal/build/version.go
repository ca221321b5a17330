package build

// Set at link time with -ldflags "-X github.com/bornholm/scheduler/internal/build.ShortVersion=..."
var (
	ShortVersion = "unknown"
	LongVersion  = "unknown"
)
