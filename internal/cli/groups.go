package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/beyondbezier/scribbler/pkg/document"
)

// newGroupsCmd creates the groups command, which lists the scribble group
// table of every glyph in a document.
func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups <document>",
		Short: "List the scribble group tables of a glyph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}

			names := make([]string, 0, len(doc.Glyphs))
			for name := range doc.Glyphs {
				names = append(names, name)
			}
			sort.Strings(names)

			total := 0
			for _, name := range names {
				glyph := doc.Glyphs[name]
				fmt.Println(StyleTitle.Render(name) + StyleDim.Render(fmt.Sprintf("  (%d contours)", len(glyph.Contours))))
				if len(glyph.Groups) == 0 {
					printDetail("no groups")
					continue
				}
				for i, e := range glyph.Groups {
					settings, err := e.Settings()
					if err != nil {
						printWarning("group %d: %v", i, err)
						continue
					}
					printKeyValue(fmt.Sprintf("group %d", i),
						fmt.Sprintf("contours %d↔%d  thickness %.4g  distance %.4g  offset %d  random %.4g  side %s",
							e.ContourA, e.ContourB,
							settings.Thickness, settings.Distance,
							settings.OffsetCount, settings.RandomAmount,
							settings.StartSide))
					total++
				}
			}
			printDetail("%d groups in %d glyphs", total, len(names))
			return nil
		},
	}
}
