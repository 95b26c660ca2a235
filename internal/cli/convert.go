/*
Copyright 2016 Alex Baden

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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	plyfile "github.com/cobaltgray/go-plyfile"
)

var convertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Re-encode a PLY file in another format",
	Long: `convert streams IN into OUT, re-encoding the data section. The output
format defaults to default_format from the config file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cfg.Format()
		if convertFormat != "" {
			format, err = plyfile.ParseFormat(convertFormat)
		}
		if err != nil {
			return err
		}
		opts, err := options()
		if err != nil {
			return err
		}
		logger.Info("converting", zap.String("in", args[0]), zap.String("out", args[1]), zap.Stringer("format", format))
		if err := plyfile.TranscodeFile(args[1], format, args[0], opts...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[1], format)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "output format: ascii, binary_little_endian, binary_big_endian")
	rootCmd.AddCommand(convertCmd)
}
