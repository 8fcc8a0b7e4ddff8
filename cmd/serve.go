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
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cacaolab/biotherm/results"
	"github.com/cacaolab/biotherm/server"
	"github.com/cacaolab/biotherm/thermal"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Replay a statistics file to websocket clients",
	Long: `
Serves a recorded statistics file over websockets at the requested pace, so
a dashboard can be developed against a finished run,

biotherm serve -f results/box_wood_stats.json --addr :8080`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("serve called")
		file, _ := cmd.Flags().GetString("statsFile")
		addr, _ := cmd.Flags().GetString("addr")
		interval, _ := cmd.Flags().GetDuration("interval")
		if file == "" {
			fmt.Println("error: must supply a statistics file (-f, --statsFile)")
			os.Exit(1)
		}
		sf, err := results.ReadStats(file)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if len(sf.Snapshots) == 0 {
			fmt.Printf("error: %s contains no snapshots\n", file)
			os.Exit(1)
		}
		log.WithFields(log.Fields{
			"file":      file,
			"snapshots": len(sf.Snapshots),
			"addr":      addr,
		}).Info("replaying statistics")

		srv := server.New(addr)
		go func() {
			if err := srv.Start(); err != nil {
				log.WithError(err).Fatal("stats server")
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-ticker.C:
				srv.OnStep(thermal.Step{Time: sf.Snapshots[i].Time, Stats: sf.Snapshots[i]})
				i++
				if i == len(sf.Snapshots) {
					srv.Done()
					i = 0
				}
			case <-sig:
				fmt.Println("interrupted")
				return
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("statsFile", "f", "", "statistics JSON file written by a run")
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Duration("interval", 100*time.Millisecond, "replay interval per snapshot")
}
