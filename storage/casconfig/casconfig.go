// Package casconfig opens an asset content store from a JSON description.
package casconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"xdao.co/zerowallet/storage"
	"xdao.co/zerowallet/storage/grpccas"
	"xdao.co/zerowallet/storage/localfs"
	"xdao.co/zerowallet/storage/memcas"
)

// Backend types.
const (
	TypeMemory  = "memory"
	TypeLocalFS = "localfs"
	TypeGRPC    = "grpc"
)

// Config describes one or more content stores.
//
// WritePolicy values:
// - "first" (default): write only to the first backend; reads fall back in order
// - "all": write to all backends and require CID equality
//
// Example:
//
//	{
//	  "write_policy": "all",
//	  "backends": [
//	    {"type":"localfs", "dir":"/var/lib/zerowallet/content"},
//	    {"type":"grpc", "id":"remote", "target":"content.internal:7777", "call_timeout":"5s"}
//	  ]
//	}
type Config struct {
	WritePolicy string          `json:"write_policy,omitempty"`
	Backends    []BackendConfig `json:"backends"`
}

type BackendConfig struct {
	Type string `json:"type"`
	// ID names the backend in Mirror results. Defaults to Type.
	ID string `json:"id,omitempty"`

	// MaxObjectBytes applies to memory and localfs backends.
	MaxObjectBytes int `json:"max_object_bytes,omitempty"`

	// Dir is the localfs root.
	Dir string `json:"dir,omitempty"`

	// Target, DialTimeout, CallTimeout and MaxMsgBytes configure grpc backends.
	Target      string `json:"target,omitempty"`
	DialTimeout string `json:"dial_timeout,omitempty"`
	CallTimeout string `json:"call_timeout,omitempty"`
	MaxMsgBytes int    `json:"max_msg_bytes,omitempty"`
}

func (b BackendConfig) id() string {
	if b.ID != "" {
		return b.ID
	}
	return b.Type
}

func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, errors.New("casconfig: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return Parse(b)
}

// Parse decodes and validates a JSON config.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("casconfig: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if len(c.Backends) == 0 {
		return errors.New("casconfig: at least one backend is required")
	}
	seen := make(map[string]struct{}, len(c.Backends))
	for _, b := range c.Backends {
		switch b.Type {
		case TypeMemory:
		case TypeLocalFS:
			if b.Dir == "" {
				return fmt.Errorf("casconfig: backend %q: dir is required", b.id())
			}
		case TypeGRPC:
			if b.Target == "" {
				return fmt.Errorf("casconfig: backend %q: target is required", b.id())
			}
			for _, d := range []string{b.DialTimeout, b.CallTimeout} {
				if _, err := parseDuration(d); err != nil {
					return fmt.Errorf("casconfig: backend %q: %w", b.id(), err)
				}
			}
		case "":
			return errors.New("casconfig: backend type is required")
		default:
			return fmt.Errorf("casconfig: unknown backend type %q", b.Type)
		}
		if _, ok := seen[b.id()]; ok {
			return fmt.Errorf("casconfig: duplicate backend id %q", b.id())
		}
		seen[b.id()] = struct{}{}
	}
	switch c.WritePolicy {
	case "", "first", "all":
		return nil
	default:
		return fmt.Errorf("casconfig: invalid write_policy %q", c.WritePolicy)
	}
}

// Open opens every backend and returns them as one store. A single backend is
// returned as is; several are combined into a storage.Mirror. The close
// function releases grpc connections.
func (c Config) Open() (storage.CAS, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	named := make([]storage.NamedCAS, 0, len(c.Backends))
	var closers []func() error
	closeAll := func() error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	for _, b := range c.Backends {
		cas, closeFn, err := open(b)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("casconfig: backend %q: %w", b.id(), err)
		}
		named = append(named, storage.NamedCAS{Name: b.id(), CAS: cas})
		if closeFn != nil {
			closers = append(closers, closeFn)
		}
	}

	if len(named) == 1 {
		return named[0].CAS, closeAll, nil
	}
	return storage.Mirror{Backends: named, FirstOnly: c.WritePolicy != "all"}, closeAll, nil
}

func open(b BackendConfig) (storage.CAS, func() error, error) {
	switch b.Type {
	case TypeMemory:
		cas := memcas.New()
		cas.MaxObjectBytes = b.MaxObjectBytes
		return cas, nil, nil
	case TypeLocalFS:
		cas, err := localfs.New(b.Dir)
		if err != nil {
			return nil, nil, err
		}
		cas.MaxObjectBytes = b.MaxObjectBytes
		return cas, nil, nil
	case TypeGRPC:
		dialTimeout, _ := parseDuration(b.DialTimeout)
		callTimeout, _ := parseDuration(b.CallTimeout)
		client, err := grpccas.Dial(b.Target, grpccas.DialOptions{
			Timeout:     dialTimeout,
			CallTimeout: callTimeout,
			MaxMsgBytes: b.MaxMsgBytes,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend type %q", b.Type)
	}
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
