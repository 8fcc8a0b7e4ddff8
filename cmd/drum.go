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

// drumCmd represents the drum command
var drumCmd = &cobra.Command{
	Use:   "drum",
	Short: "Simulate the hexagonal rotating drum fermenter",
	Long: `
Simulates the 300 kg hexagonal drum: a prism lying on its axis with
perforations along the top face,

biotherm drum --material steel`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("drum called")
		m := getRunModel(cmd)
		sp := processInput(m, "drum")
		if _, err := RunSim(m, sp); err != nil {
			fmt.Printf("error: %s\n", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(drumCmd)
	addRunFlags(drumCmd)
}
