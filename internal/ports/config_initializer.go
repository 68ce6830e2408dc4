package ports

// ConfigInitializer writes a starter crosspost.yaml into a directory.
type ConfigInitializer interface {
	Init(dir string, force bool) (path string, created bool, err error)
}
