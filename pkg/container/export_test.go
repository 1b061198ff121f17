package container

// SetLookPath replaces the PATH lookup for the duration of a test.
func SetLookPath(f func(string) (string, error)) (restore func()) {
	old := lookPath
	lookPath = f
	return func() { lookPath = old }
}
