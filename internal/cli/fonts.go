package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercake/pkg/fonts"
)

// fontsCommand creates the fonts command listing the available font families.
func (c *CLI) fontsCommand() *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "List registered font families",
		Long: `Fonts lists the font families available to text layers: the embedded
Go fonts plus anything registered at runtime.

With --find, the system font directories are searched for a family
instead; the matching font file path is printed when found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if system != "" {
				return runFontsFind(system)
			}
			return runFontsList()
		},
	}

	cmd.Flags().StringVar(&system, "find", "", "search system fonts for a family")

	return cmd
}

func runFontsList() error {
	reg := fonts.Default()
	families := reg.Families()

	printInfo("%d font families registered", len(families))
	for _, family := range families {
		variants := reg.Variants(family)
		descs := make([]string, 0, len(variants))
		for _, v := range variants {
			desc := fmt.Sprintf("%d", v.Weight)
			if v.Italic {
				desc += " italic"
			}
			descs = append(descs, desc)
		}
		printKeyValue(family, strings.Join(descs, ", "))
	}
	return nil
}

func runFontsFind(family string) error {
	path, err := fonts.FindSystem(family)
	if err != nil {
		return err
	}
	printSuccess("Found %s", family)
	printFile(path)
	return nil
}
