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

package examplecfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kwconf/kwconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
global_defs {
    router_id lb01
    enable yes
}

virtual_server 192.168.1.1 80 {
    delay_loop 6
    real_server 192.168.1.10 80
    real_server 192.168.1.11 80
}
`

func TestRegisterParsesSampleConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lb.conf")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	b := kwconf.NewBuilder()
	cfg := Register(b)
	tree := b.Build()

	require.NoError(t, kwconf.Load(tree, path, kwconf.Options{Log: kwconf.DefaultLogger()}))

	assert.Equal(t, "lb01", cfg.RouterID)
	assert.True(t, cfg.EnableHTTP)
	require.Len(t, cfg.Servers, 1)

	vs := cfg.Servers[0]
	assert.Equal(t, "192.168.1.1", vs.Address)
	assert.Equal(t, uint64(80), vs.Port)
	assert.Equal(t, 6*time.Second, vs.DelayLoop)
	require.Len(t, vs.RealServers, 2)
	assert.Equal(t, "192.168.1.10", vs.RealServers[0].Address)
	assert.Equal(t, "192.168.1.11", vs.RealServers[1].Address)

	assert.Len(t, cfg.ActiveServers(), 1)
}
