// Copyright 2026 The kwconf Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package examplecfg registers a small load-balancer-flavored keyword
// grammar against the kwconf engine: a global_defs block and one or more
// virtual_server blocks, each with a delay_loop and nested real_server
// entries. It exercises keyword registration, nested sub-levels and the
// string, integer, timer and boolean extractors end-to-end with a
// realistic, if minimal, domain grammar; it installs no close handlers and
// does not use SkipBlock or ReadValueBlock. The keyword shapes themselves
// are not a complete load-balancer config language.
package examplecfg

import (
	"fmt"
	"time"

	"github.com/kwconf/kwconf"
	"github.com/kwconf/kwconf/internal/collections"
)

// RealServer is one real_server entry of a virtual_server block.
type RealServer struct {
	Address string
	Port    uint64
	Weight  uint64
}

// VirtualServer is one virtual_server block.
type VirtualServer struct {
	Address     string
	Port        uint64
	DelayLoop   time.Duration
	RealServers []RealServer
}

// Config accumulates every block a Builder registered with Register parses.
type Config struct {
	RouterID   string
	EnableHTTP bool
	Servers    []VirtualServer
}

// Register installs the example grammar onto b, accumulating matches into
// the returned Config as the parse proceeds.
func Register(b *kwconf.Builder) *Config {
	cfg := &Config{}

	b.InstallRoot("global_defs", nil, true)
	b.Sublevel()
	b.Install("router_id", func(ctx *kwconf.ParseContext, tokens []string) error {
		id, err := kwconf.StringAt(ctx, tokens, 1)
		if err != nil {
			return err
		}
		cfg.RouterID = id
		return nil
	})
	b.Install("enable", func(ctx *kwconf.ParseContext, tokens []string) error {
		v, err := kwconf.BoolAt(ctx, tokens, 1)
		if err != nil {
			ctx.Log.Warnf("global_defs enable: %v", err)
			return nil
		}
		cfg.EnableHTTP = v
		return nil
	})
	b.SublevelEnd()

	var current *VirtualServer
	b.InstallRoot("virtual_server", func(ctx *kwconf.ParseContext, tokens []string) error {
		addr, err := kwconf.StringAt(ctx, tokens, 1)
		if err != nil {
			return err
		}
		port, err := kwconf.UintAt(ctx, tokens, 2)
		if err != nil {
			return err
		}
		cfg.Servers = append(cfg.Servers, VirtualServer{Address: addr, Port: port})
		current = &cfg.Servers[len(cfg.Servers)-1]
		return nil
	}, true)
	b.Sublevel()
	b.Install("delay_loop", func(ctx *kwconf.ParseContext, tokens []string) error {
		d, err := kwconf.TimerAt(ctx, tokens, 1)
		if err != nil {
			return err
		}
		current.DelayLoop = d
		return nil
	})
	b.Install("real_server", func(ctx *kwconf.ParseContext, tokens []string) error {
		addr, err := kwconf.StringAt(ctx, tokens, 1)
		if err != nil {
			return err
		}
		port, err := kwconf.UintAt(ctx, tokens, 2)
		if err != nil {
			return err
		}
		current.RealServers = append(current.RealServers, RealServer{Address: addr, Port: port})
		return nil
	})
	b.SublevelEnd()

	return cfg
}

// ActiveServers returns the virtual servers that have at least one
// real_server behind them.
func (c *Config) ActiveServers() []VirtualServer {
	return collections.FilterSlice(c.Servers, func(vs VirtualServer) bool {
		return len(vs.RealServers) > 0
	})
}

// String renders cfg for the CLI's summary output.
func (c *Config) String() string {
	s := fmt.Sprintf("router_id=%q enable=%v servers=%d", c.RouterID, c.EnableHTTP, len(c.Servers))
	for _, vs := range c.Servers {
		s += fmt.Sprintf("\n  %s:%d delay_loop=%s real_servers=%d", vs.Address, vs.Port, vs.DelayLoop, len(vs.RealServers))
	}
	return s
}
