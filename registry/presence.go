package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/veltari/agentkit"
)

// Instance describes an announced toolkit instance.
//
// Each running process that serves tools announces one Instance entry with a
// unique InstanceID, so multiple replicas of the same toolkit can run
// concurrently and be discovered independently.
type Instance struct {
	// Name is the toolkit name (e.g. "kb-tools").
	Name string `json:"name"`

	// Version is the semantic version of the toolkit.
	Version string `json:"version"`

	// InstanceID uniquely identifies this process. NewInstance fills it
	// with a random UUID.
	InstanceID string `json:"instance_id"`

	// Endpoint is the network address where the toolkit can be reached.
	Endpoint string `json:"endpoint"`

	// Tools lists the names of the tools this instance serves.
	Tools []string `json:"tools"`

	// Metadata carries custom key-value attributes.
	Metadata map[string]string `json:"metadata,omitempty"`

	// StartedAt is when this instance started.
	StartedAt time.Time `json:"started_at"`
}

// NewInstance creates an Instance with a fresh InstanceID and StartedAt.
func NewInstance(name, version, endpoint string, tools []string) Instance {
	return Instance{
		Name:       name,
		Version:    version,
		InstanceID: uuid.New().String(),
		Endpoint:   endpoint,
		Tools:      tools,
		StartedAt:  time.Now(),
	}
}

// PresenceConfig holds etcd connection configuration for presence
// announcements.
type PresenceConfig struct {
	// Endpoints is the list of etcd endpoints ("host:port").
	Endpoints []string `json:"endpoints" yaml:"endpoints"`

	// Namespace is the etcd key prefix for all toolkit entries.
	// Entries are stored under /{namespace}/toolkits/{name}/{instance-id}.
	// Default: "agentkit".
	Namespace string `json:"namespace" yaml:"namespace"`

	// TTL is the lease time-to-live in seconds. An instance that stops
	// renewing its lease disappears from discovery within TTL seconds.
	// Default: 30.
	TTL int `json:"ttl" yaml:"ttl"`

	// TLS holds optional TLS configuration. Nil disables TLS.
	TLS *TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// Presence maintains toolkit instance entries in etcd.
//
// Announced instances are kept alive by a background goroutine that renews
// the etcd lease every TTL/3 seconds, so crashed processes disappear from
// discovery automatically when their lease expires.
//
// Thread-safety: all methods are safe for concurrent use.
type Presence struct {
	client    *clientv3.Client
	namespace string
	ttl       int

	mu         sync.Mutex
	leases     map[string]clientv3.LeaseID
	cancelFns  map[string]context.CancelFunc
	wg         sync.WaitGroup
	closed     bool
	closedChan chan struct{}
}

// NewPresence connects to etcd and verifies connectivity.
//
// The returned Presence must be closed with Close to stop background
// keepalive goroutines.
func NewPresence(cfg PresenceConfig) (*Presence, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, agentkit.NewConfigurationError("presence.new",
			fmt.Errorf("endpoints cannot be empty: %w", agentkit.ErrInvalidConfig))
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "agentkit"
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30
	}

	clientCfg := clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: 5 * time.Second,
	}

	if cfg.TLS != nil && cfg.TLS.Enabled {
		tlsConfig, err := cfg.TLS.clientConfig()
		if err != nil {
			return nil, agentkit.NewConfigurationError("presence.new", err)
		}
		clientCfg.TLS = tlsConfig
	}

	cli, err := clientv3.New(clientCfg)
	if err != nil {
		return nil, agentkit.NewNetworkError("presence.new",
			fmt.Errorf("failed to create etcd client: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, agentkit.NewNetworkError("presence.new",
			fmt.Errorf("etcd health check failed: %w", err))
	}

	return &Presence{
		client:     cli,
		namespace:  namespace,
		ttl:        ttl,
		leases:     make(map[string]clientv3.LeaseID),
		cancelFns:  make(map[string]context.CancelFunc),
		closedChan: make(chan struct{}),
	}, nil
}

// NewPresenceFromEnv creates a Presence from the AGENTKIT_ETCD_ENDPOINTS
// environment variable (comma-separated endpoints).
//
// If the variable is not set this returns (nil, nil): the process runs but
// is not discoverable. That is not an error.
func NewPresenceFromEnv() (*Presence, error) {
	endpoints := os.Getenv("AGENTKIT_ETCD_ENDPOINTS")
	if endpoints == "" {
		return nil, nil
	}

	endpointList := strings.Split(endpoints, ",")
	for i, ep := range endpointList {
		endpointList[i] = strings.TrimSpace(ep)
	}

	return NewPresence(PresenceConfig{Endpoints: endpointList})
}

// Announce publishes this instance and starts lease keepalive.
//
// Announcing an already-announced InstanceID replaces the existing entry
// and restarts its keepalive.
func (p *Presence) Announce(ctx context.Context, inst Instance) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return agentkit.NewInternalError("presence.announce", agentkit.ErrRegistryClosed)
	}

	if cancelFn, exists := p.cancelFns[inst.InstanceID]; exists {
		cancelFn()
		delete(p.cancelFns, inst.InstanceID)
	}

	leaseResp, err := p.client.Grant(ctx, int64(p.ttl))
	if err != nil {
		return agentkit.NewNetworkError("presence.announce",
			fmt.Errorf("failed to create lease: %w", err))
	}

	data, err := json.Marshal(inst)
	if err != nil {
		return agentkit.NewInternalError("presence.announce",
			fmt.Errorf("failed to marshal instance: %w", err))
	}

	key := p.buildKey(inst.Name, inst.InstanceID)
	if _, err := p.client.Put(ctx, key, string(data), clientv3.WithLease(leaseResp.ID)); err != nil {
		return agentkit.NewNetworkError("presence.announce",
			fmt.Errorf("failed to announce instance: %w", err))
	}

	p.leases[inst.InstanceID] = leaseResp.ID

	keepaliveCtx, cancel := context.WithCancel(context.Background())
	p.cancelFns[inst.InstanceID] = cancel

	p.wg.Add(1)
	go p.keepalive(keepaliveCtx, leaseResp.ID, inst.InstanceID)

	return nil
}

// Withdraw removes this instance from discovery by revoking its lease.
// Withdrawing an unknown InstanceID is a no-op.
func (p *Presence) Withdraw(ctx context.Context, inst Instance) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return agentkit.NewInternalError("presence.withdraw", agentkit.ErrRegistryClosed)
	}

	if cancelFn, exists := p.cancelFns[inst.InstanceID]; exists {
		cancelFn()
		delete(p.cancelFns, inst.InstanceID)
	}

	leaseID, exists := p.leases[inst.InstanceID]
	if !exists {
		return nil
	}

	if _, err := p.client.Revoke(ctx, leaseID); err != nil {
		return agentkit.NewNetworkError("presence.withdraw",
			fmt.Errorf("failed to revoke lease: %w", err))
	}

	delete(p.leases, inst.InstanceID)
	return nil
}

// Discover returns all announced instances of a toolkit, in arbitrary
// order. The slice may be empty.
func (p *Presence) Discover(ctx context.Context, name string) ([]Instance, error) {
	prefix := fmt.Sprintf("/%s/toolkits/%s/", p.namespace, name)
	return p.query(ctx, prefix)
}

// DiscoverAll returns every announced instance regardless of toolkit name.
func (p *Presence) DiscoverAll(ctx context.Context) ([]Instance, error) {
	prefix := fmt.Sprintf("/%s/toolkits/", p.namespace)
	return p.query(ctx, prefix)
}

func (p *Presence) query(ctx context.Context, prefix string) ([]Instance, error) {
	resp, err := p.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, agentkit.NewNetworkError("presence.discover",
			fmt.Errorf("failed to query instances: %w", err))
	}

	instances := make([]Instance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var inst Instance
		if err := json.Unmarshal(kv.Value, &inst); err != nil {
			// Skip invalid entries
			continue
		}
		instances = append(instances, inst)
	}

	return instances, nil
}

// Watch returns a channel that receives the current instance list for a
// toolkit whenever an instance announces, withdraws, or its lease expires.
// The initial state is sent immediately. The channel closes when ctx is
// canceled or Close is called.
func (p *Presence) Watch(ctx context.Context, name string) (<-chan []Instance, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, agentkit.NewInternalError("presence.watch", agentkit.ErrRegistryClosed)
	}
	p.mu.Unlock()

	ch := make(chan []Instance, 1)

	instances, err := p.Discover(ctx, name)
	if err != nil {
		return nil, err
	}
	ch <- instances

	prefix := fmt.Sprintf("/%s/toolkits/%s/", p.namespace, name)
	watchChan := p.client.Watch(ctx, prefix, clientv3.WithPrefix())

	// Re-check closed while holding the lock: Close waits on the group
	// after setting closed, so the Add must not race past it.
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, agentkit.NewInternalError("presence.watch", agentkit.ErrRegistryClosed)
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.closedChan:
				return
			case watchResp, ok := <-watchChan:
				if !ok || watchResp.Err() != nil {
					return
				}

				instances, err := p.Discover(context.Background(), name)
				if err != nil {
					// Skip this update if the query failed
					continue
				}

				select {
				case ch <- instances:
				case <-ctx.Done():
					return
				case <-p.closedChan:
					return
				}
			}
		}
	}()

	return ch, nil
}

// Close stops all keepalive goroutines and closes the etcd connection.
func (p *Presence) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true

	for _, cancel := range p.cancelFns {
		cancel()
	}
	p.cancelFns = make(map[string]context.CancelFunc)

	close(p.closedChan)
	p.mu.Unlock()

	p.wg.Wait()
	return p.client.Close()
}

// keepalive renews the lease every TTL/3 seconds until canceled or the
// lease becomes invalid.
func (p *Presence) keepalive(ctx context.Context, leaseID clientv3.LeaseID, instanceID string) {
	defer p.wg.Done()

	interval := time.Duration(p.ttl) * time.Second / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.closedChan:
			return
		case <-ticker.C:
			if _, err := p.client.KeepAliveOnce(context.Background(), leaseID); err != nil {
				p.mu.Lock()
				delete(p.leases, instanceID)
				delete(p.cancelFns, instanceID)
				p.mu.Unlock()
				return
			}
		}
	}
}

func (p *Presence) buildKey(name, instanceID string) string {
	return fmt.Sprintf("/%s/toolkits/%s/%s", p.namespace, name, instanceID)
}
