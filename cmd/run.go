/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cacaolab/biotherm/InputParameters"
	"github.com/cacaolab/biotherm/results"
	"github.com/cacaolab/biotherm/server"
	"github.com/cacaolab/biotherm/thermal"
)

// RunModel collects the flags shared by the box and drum commands.
// InitialSet records whether --initial was given, since 0 degC is a valid
// initial temperature.
type RunModel struct {
	ParamsFile string
	Material   string
	FinalTime  float64
	Dt         float64
	Initial    float64
	InitialSet bool
	OutDir     string
	Prefix     string
	VTKEvery   int
	ServeAddr  string
	Profile    bool
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("inputParametersFile", "I", "", "YAML file with simulation parameters")
	cmd.Flags().StringP("material", "m", "", "wall material: wood, plastic or steel")
	cmd.Flags().Float64P("finalTime", "t", 0, "simulated duration in seconds")
	cmd.Flags().Float64("dt", 0, "time step in seconds")
	cmd.Flags().Float64("initial", 0, "initial temperature in degC")
	cmd.Flags().StringP("outDir", "o", "results", "output directory")
	cmd.Flags().String("prefix", "", "output file prefix (default <vessel>_<material>)")
	cmd.Flags().Int("vtkEvery", 0, "write a VTK field every N steps, 0 disables")
	cmd.Flags().String("serve", "", "stream live statistics on this address, e.g. :8080")
	cmd.Flags().Bool("cpuprofile", false, "write a CPU profile to the working directory")
}

func getRunModel(cmd *cobra.Command) *RunModel {
	m := &RunModel{}
	m.ParamsFile, _ = cmd.Flags().GetString("inputParametersFile")
	m.Material, _ = cmd.Flags().GetString("material")
	m.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
	m.Dt, _ = cmd.Flags().GetFloat64("dt")
	m.Initial, _ = cmd.Flags().GetFloat64("initial")
	m.InitialSet = cmd.Flags().Changed("initial")
	m.OutDir, _ = cmd.Flags().GetString("outDir")
	m.Prefix, _ = cmd.Flags().GetString("prefix")
	m.VTKEvery, _ = cmd.Flags().GetInt("vtkEvery")
	m.ServeAddr, _ = cmd.Flags().GetString("serve")
	m.Profile, _ = cmd.Flags().GetBool("cpuprofile")
	return m
}

// processInput loads parameters from defaults, overlays the YAML file when
// supplied, then applies command line overrides.
func processInput(m *RunModel, vessel string) *InputParameters.SimParameters {
	sp := InputParameters.Defaults()
	sp.Vessel = vessel
	if len(m.ParamsFile) != 0 {
		data, err := os.ReadFile(m.ParamsFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = sp.Parse(data); err != nil {
			fmt.Printf("error parsing %s: %s\n", m.ParamsFile, err.Error())
			os.Exit(1)
		}
		sp.Vessel = vessel
	}
	if m.Material != "" {
		sp.WallMaterial = m.Material
	}
	if m.FinalTime > 0 {
		sp.FinalTime = m.FinalTime
	}
	if m.Dt > 0 {
		sp.Dt = m.Dt
	}
	if m.InitialSet {
		sp.InitialTemperature = m.Initial
	}
	sp.Print()
	return sp
}

// RunSim executes one simulation end to end, writes its artifacts and
// returns the accepted time levels.
func RunSim(m *RunModel, sp *InputParameters.SimParameters) ([]thermal.Step, error) {
	if m.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	dom, err := sp.Domain()
	if err != nil {
		return nil, err
	}
	mats, err := sp.Materials()
	if err != nil {
		return nil, err
	}
	src, err := sp.Profile()
	if err != nil {
		return nil, err
	}
	cfg := sp.Config()

	var srv *server.Server
	if m.ServeAddr != "" {
		srv = server.New(m.ServeAddr)
		go func() {
			if err := srv.Start(); err != nil {
				log.WithError(err).Error("stats server")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.WithError(err).Warn("stats server shutdown")
			}
		}()
		cfg.OnStep = srv.OnStep
	}

	sol, err := thermal.NewSolver(dom, mats, sp.Flux(), src, sp.Clock(), cfg)
	if err != nil {
		return nil, err
	}
	history, runErr := sol.Run()
	if srv != nil {
		srv.Done()
	}

	var convErr *thermal.ConvergenceError
	if errors.As(runErr, &convErr) {
		// Keep the partial history: the dump is the point of the error.
		log.WithError(runErr).Error("run aborted, writing partial results")
	} else if runErr != nil {
		return nil, runErr
	}

	prefix := m.Prefix
	if prefix == "" {
		prefix = fmt.Sprintf("%s_%s", sp.Vessel, sp.WallMaterial)
	}
	w, err := results.NewWriter(m.OutDir, prefix)
	if err != nil {
		return nil, err
	}
	if p, err := w.WriteStats(dom, sp.WallMaterial, sp.Dt, history); err == nil {
		log.WithField("file", p).Info("wrote statistics")
	} else {
		return nil, err
	}
	if p, err := w.WriteSummary(dom, sp.WallMaterial, history, sol.Warnings()); err == nil {
		log.WithField("file", p).Info("wrote summary")
	} else {
		return nil, err
	}
	if m.VTKEvery > 0 {
		for i := 0; i < len(history); i += m.VTKEvery {
			if _, err := w.WriteVTK(dom, history[i], i); err != nil {
				return nil, err
			}
		}
		log.Info("wrote VTK field series")
	}
	return history, runErr
}
