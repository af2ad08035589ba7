// Package component provides loading and parsing of toolkit.yaml manifest
// files. A manifest declares a toolkit's identity, its default permissions,
// and the catalog and presence settings used to advertise it.
package component

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veltari/agentkit"
)

// Manifest represents a toolkit.yaml manifest file.
type Manifest struct {
	// Identity
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	// Categorization
	Tags []string `yaml:"tags,omitempty"`

	// Permissions is the default permission set applied to tools that do
	// not declare their own.
	Permissions []string `yaml:"permissions,omitempty"`

	// Endpoint is the network address the toolkit serves on.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Catalog configures descriptor publication.
	Catalog *CatalogConfig `yaml:"catalog,omitempty"`

	// Presence configures etcd presence announcements.
	Presence *PresenceConfig `yaml:"presence,omitempty"`

	// Additional metadata
	Author     string `yaml:"author,omitempty"`
	License    string `yaml:"license,omitempty"`
	Repository string `yaml:"repository,omitempty"`
}

// CatalogConfig configures publication of tool descriptors to the shared
// catalog.
type CatalogConfig struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string `yaml:"url"`

	// HeartbeatInterval is the interval between catalog heartbeats.
	// Format: Go duration string (e.g. "10s"). Default: 10s.
	HeartbeatInterval string `yaml:"heartbeat_interval,omitempty"`
}

// GetHeartbeatInterval parses the heartbeat interval string.
// Returns the default value if not set or invalid.
func (c *CatalogConfig) GetHeartbeatInterval() time.Duration {
	if c == nil || c.HeartbeatInterval == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(c.HeartbeatInterval)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// PresenceConfig configures etcd presence announcements.
type PresenceConfig struct {
	// Endpoints is the list of etcd endpoints ("host:port").
	Endpoints []string `yaml:"endpoints"`

	// Namespace is the etcd key prefix. Default: "agentkit".
	Namespace string `yaml:"namespace,omitempty"`

	// TTL is the lease time-to-live in seconds. Default: 30.
	TTL int `yaml:"ttl,omitempty"`
}

// Validate checks that the manifest has the fields a toolkit needs to
// register and advertise itself.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return agentkit.NewConfigurationError("manifest.validate",
			fmt.Errorf("name is required: %w", agentkit.ErrInvalidConfig))
	}
	if m.Version == "" {
		return agentkit.NewConfigurationError("manifest.validate",
			fmt.Errorf("version is required: %w", agentkit.ErrInvalidConfig))
	}
	if m.Presence != nil && len(m.Presence.Endpoints) == 0 {
		return agentkit.NewConfigurationError("manifest.validate",
			fmt.Errorf("presence endpoints cannot be empty: %w", agentkit.ErrInvalidConfig))
	}
	if m.Catalog != nil && m.Catalog.URL == "" {
		return agentkit.NewConfigurationError("manifest.validate",
			fmt.Errorf("catalog url is required: %w", agentkit.ErrInvalidConfig))
	}
	return nil
}

// Load reads and parses a toolkit.yaml file from the given path.
// If the path is a directory, it looks for toolkit.yaml or toolkit.yml in
// that directory.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var manifestPath string
	if info.IsDir() {
		yamlPath := filepath.Join(path, "toolkit.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			manifestPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "toolkit.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				manifestPath = ymlPath
			} else {
				return nil, fmt.Errorf("no toolkit.yaml or toolkit.yml found in %s", path)
			}
		}
	} else {
		manifestPath = path
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadFromDir searches for toolkit.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Manifest, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		m, err := Load(absDir)
		if err == nil {
			return m, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			// Reached root
			return nil, fmt.Errorf("no toolkit.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// LoadFromCurrentDir loads toolkit.yaml from the current working directory.
func LoadFromCurrentDir() (*Manifest, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromDir(cwd)
}
