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
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	plyfile "github.com/cobaltgray/go-plyfile"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			PaddingRight(2)

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Show the header of a PLY file",
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
		fmt.Fprint(cmd.OutOrStdout(), renderHeader(args[0], f.Header()))
		return nil
	},
}

func renderHeader(name string, h *plyfile.Header) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(name) + "\n")
	b.WriteString(labelStyle.Render("format") + h.Format.String() + " " + h.Version + "\n")
	for _, c := range h.Comments {
		b.WriteString(labelStyle.Render("comment") + c + "\n")
	}
	for _, o := range h.ObjInfo {
		b.WriteString(labelStyle.Render("obj_info") + o + "\n")
	}
	b.WriteString("\n")

	rows := [][]string{{"ELEMENT", "COUNT", "PROPERTY", "TYPE"}}
	for _, e := range h.Elements {
		for i, p := range e.Properties {
			elem, count := "", ""
			if i == 0 {
				elem, count = e.Name, strconv.Itoa(e.Size)
			}
			typ := p.Type.String()
			if p.IsList {
				typ = fmt.Sprintf("list %s %s", p.CountType, p.Type)
			}
			rows = append(rows, []string{elem, count, p.Name, typ})
		}
	}
	b.WriteString(renderTable(rows))
	return b.String()
}

// renderTable lays rows out in columns; the first row is the header.
func renderTable(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	var b strings.Builder
	for r, row := range rows {
		style := cellStyle
		if r == 0 {
			style = headerCellStyle
		}
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = style.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ") + "\n")
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
