package cmd

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cacaolab/biotherm/InputParameters"
	"github.com/cacaolab/biotherm/results"
	"github.com/cacaolab/biotherm/thermal"
)

func TestRunSimEndToEnd(t *testing.T) {
	dir := t.TempDir()
	m := &RunModel{OutDir: dir, Prefix: "test_box", VTKEvery: 5}

	sp := InputParameters.Defaults()
	sp.FinalTime = 600
	sp.Dt = 60

	history, err := RunSim(m, sp)
	require.NoError(t, err)
	require.Len(t, history, 11)

	sf, err := results.ReadStats(filepath.Join(dir, "test_box_stats.json"))
	require.NoError(t, err)
	assert.Equal(t, "Box", sf.Vessel)
	assert.Len(t, sf.Snapshots, 11)

	// A fermenting box starting at 25 in 21 degC air stays in range.
	last := sf.Snapshots[len(sf.Snapshots)-1]
	assert.Greater(t, last.Mean, 20.0)
	assert.Less(t, last.Mean, 30.0)
}

func TestProcessInputInitialFlag(t *testing.T) {
	// An explicit --initial 0 overrides the default.
	m := &RunModel{Initial: 0, InitialSet: true}
	sp := processInput(m, "box")
	assert.Equal(t, 0.0, sp.InitialTemperature)

	// Without the flag the default survives.
	m = &RunModel{}
	sp = processInput(m, "box")
	assert.Equal(t, 25.0, sp.InitialTemperature)
}

func TestRunSimShutsDownStatsServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	m := &RunModel{OutDir: t.TempDir(), Prefix: "served", ServeAddr: addr}
	sp := InputParameters.Defaults()
	sp.FinalTime = 120
	sp.Dt = 60
	_, err = RunSim(m, sp)
	require.NoError(t, err)

	// The listener is released once the run returns.
	conn, err := net.Dial("tcp", addr)
	if err == nil {
		conn.Close()
	}
	assert.Error(t, err)
}

func TestRunSimRejectsBadMaterial(t *testing.T) {
	m := &RunModel{OutDir: t.TempDir()}
	sp := InputParameters.Defaults()
	sp.WallMaterial = "adobe"
	_, err := RunSim(m, sp)
	assert.Error(t, err)
}

func TestSettleTime(t *testing.T) {
	history := []thermal.Step{
		{Time: 0, Stats: thermal.Snapshot{Mean: 45}},
		{Time: 60, Stats: thermal.Snapshot{Mean: 30}},
		{Time: 120, Stats: thermal.Snapshot{Mean: 21.5}},
	}
	assert.Equal(t, 120.0, settleTime(history, 21, 1))
	assert.Equal(t, -1.0, settleTime(history, 0, 1))
}
