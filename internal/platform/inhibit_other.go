//go:build !linux

package platform

func newScreenInhibitor(string) ScreenInhibitor {
	return noopInhibitor{}
}
