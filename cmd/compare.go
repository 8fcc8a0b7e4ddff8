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
	"math"

	"github.com/spf13/cobra"

	"github.com/cacaolab/biotherm/thermal"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the same case across wall materials and compare cooling",
	Long: `
Runs one vessel with each requested wall material under identical conditions
and tabulates peak cacao temperature and the time for the mean to settle
within 1 degC of ambient,

biotherm compare --vessel box --materials wood,steel`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("compare called")
		m := getRunModel(cmd)
		vessel, _ := cmd.Flags().GetString("vessel")
		mats, _ := cmd.Flags().GetStringSlice("materials")

		fmt.Printf("%-10s %10s %14s %18s\n", "material", "peak [C]", "final mean [C]", "settle time [h]")
		for _, material := range mats {
			m.Material = material
			m.Prefix = fmt.Sprintf("%s_%s", vessel, material)
			sp := processInput(m, vessel)
			history, err := RunSim(m, sp)
			if err != nil {
				fmt.Printf("error (%s): %s\n", material, err.Error())
				continue
			}
			var peak float64
			for _, step := range history {
				if step.Stats.CacaoMax > peak {
					peak = step.Stats.CacaoMax
				}
			}
			final := history[len(history)-1].Stats.Mean
			settle := settleTime(history, sp.AmbientTemperature, 1.0)
			settleStr := "never"
			if settle >= 0 {
				settleStr = fmt.Sprintf("%.2f", settle/3600)
			}
			fmt.Printf("%-10s %10.2f %14.2f %18s\n", material, peak, final, settleStr)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addRunFlags(compareCmd)
	compareCmd.Flags().String("vessel", "box", "vessel to compare: box or drum")
	compareCmd.Flags().StringSlice("materials", []string{"wood", "plastic", "steel"}, "wall materials to run")
}

// settleTime returns the first time [s] the mean is within band of ambient,
// or -1 when it never settles.
func settleTime(history []thermal.Step, ambient, band float64) float64 {
	for _, step := range history {
		if math.Abs(step.Stats.Mean-ambient) < band {
			return step.Time
		}
	}
	return -1
}
