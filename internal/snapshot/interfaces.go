package snapshot

//go:generate mockgen -source=interfaces.go -destination=../mock/snapshot_mock.go -package=mock

import "github.com/MKhiriev/go-server-config/internal/config"

// Loader produces a fresh configuration snapshot.
type Loader interface {
	// Load builds a new *config.ServerConfig from the current sources.
	Load() (*config.ServerConfig, error)
}

// Subscriber is notified after a reload publishes a changed snapshot.
type Subscriber interface {
	// OnReload receives the snapshot that just became current. It must not
	// modify cfg.
	OnReload(cfg *config.ServerConfig)
}

// LoaderFunc adapts a function to [Loader].
type LoaderFunc func() (*config.ServerConfig, error)

// Load calls f.
func (f LoaderFunc) Load() (*config.ServerConfig, error) {
	return f()
}
