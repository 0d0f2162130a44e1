package platform

// ScreenInhibitor keeps the display awake while a guided session runs.
type ScreenInhibitor interface {
	// Inhibit returns a release func that is safe to call more than once.
	Inhibit(reason string) (func(), error)
}

// NewScreenInhibitor returns the platform implementation. Platforms without
// one get an inhibitor that does nothing.
func NewScreenInhibitor(appName string) ScreenInhibitor {
	return newScreenInhibitor(appName)
}

type noopInhibitor struct{}

func (noopInhibitor) Inhibit(string) (func(), error) {
	return func() {}, nil
}
