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
	"math"
	"strconv"

	"github.com/spf13/cobra"

	plyfile "github.com/cobaltgray/go-plyfile"
)

// propertyStats accumulates one property over every instance of an element.
type propertyStats struct {
	min, max float64
	entries  int // list properties only
}

func collectStats(f *plyfile.File) map[string][]propertyStats {
	stats := map[string][]propertyStats{}
	for _, e := range f.Definitions() {
		ps := make([]propertyStats, len(e.Properties))
		for i := range ps {
			ps[i] = propertyStats{min: math.Inf(1), max: math.Inf(-1)}
		}
		stats[e.Name] = ps
		f.SetElementReadCallback(e.Name, func(buf *plyfile.ElementBuffer) error {
			for i := range ps {
				if buf.IsList(i) {
					l := buf.List(i)
					ps[i].entries += l.Len()
					for j := 0; j < l.Len(); j++ {
						ps[i].add(l.At(j).Float64())
					}
					continue
				}
				ps[i].add(buf.Value(i).Float64())
			}
			return nil
		})
	}
	return stats
}

func (s *propertyStats) add(v float64) {
	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
}

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Stream a PLY file and summarize every property",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}
		f, err := plyfile.Open(args[0], opts...)
		if err != nil {
			return err
		}
		stats := collectStats(f)
		if err := f.Read(); err != nil {
			return err
		}
		rows := [][]string{{"ELEMENT", "PROPERTY", "MIN", "MAX", "ENTRIES"}}
		for _, e := range f.Definitions() {
			for i, p := range e.Properties {
				s := stats[e.Name][i]
				lo, hi, entries := "-", "-", "-"
				if !math.IsInf(s.min, 1) {
					lo, hi = strconv.FormatFloat(s.min, 'g', -1, 64), strconv.FormatFloat(s.max, 'g', -1, 64)
				}
				if p.IsList {
					entries = strconv.Itoa(s.entries)
				}
				rows = append(rows, []string{e.Name, p.Name, lo, hi, entries})
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), renderTable(rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
