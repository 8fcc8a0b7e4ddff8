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

	"github.com/spf13/cobra"
)

// boxCmd represents the box command
var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Simulate the ventilated rectangular fermentation box",
	Long: `
Simulates the 400 kg community fermentation box: a rectangular vessel with
perforations over half the floor and the lower quarter of each side wall,

biotherm box --material wood --finalTime 86400`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("box called")
		m := getRunModel(cmd)
		sp := processInput(m, "box")
		if _, err := RunSim(m, sp); err != nil {
			fmt.Printf("error: %s\n", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(boxCmd)
	addRunFlags(boxCmd)
}
