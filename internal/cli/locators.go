package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/pages"
)

// LocatorsCommand returns the locators command
func LocatorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "locators",
		Usage: "Print every page-object locator and its fallback chain",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "table", Usage: "table or yaml"},
			&cli.StringFlag{Name: "catalog", EnvVars: []string{"LOCATOR_CATALOG"}, Usage: "apply YAML locator overrides first"},
			&cli.StringFlag{Name: "prefix", Usage: "only locators whose name starts with prefix, e.g. header."},
		},
		Action: func(c *cli.Context) error {
			var catalog *locator.Catalog
			if path := c.String("catalog"); path != "" {
				var err error
				if catalog, err = locator.LoadCatalogFile(path); err != nil {
					return err
				}
			}

			specs := ResolvedLocators(catalog, c.String("prefix"))
			w := c.App.Writer
			if w == nil {
				w = os.Stdout
			}

			switch c.String("format") {
			case "table":
				return WriteLocatorTable(w, specs)
			case "yaml":
				out, err := locator.MarshalCatalog(specs)
				if err != nil {
					return err
				}
				_, err = w.Write(out)
				return err
			default:
				return fmt.Errorf("unknown format %q, use table or yaml", c.String("format"))
			}
		},
	}
}

// ResolvedLocators returns the page-object locators with catalog overrides
// applied, sorted by name
func ResolvedLocators(catalog *locator.Catalog, prefix string) []locator.Spec {
	var out []locator.Spec
	for _, s := range pages.Locators() {
		if !strings.HasPrefix(s.Name(), prefix) {
			continue
		}
		out = append(out, catalog.Resolve(s))
	}
	return out
}

// WriteLocatorTable writes one row per candidate, in fallback order
func WriteLocatorTable(w io.Writer, specs []locator.Spec) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\t#\tKIND\tCANDIDATE")
	for _, s := range specs {
		for i, cand := range s.Candidates() {
			name := s.Name()
			if i > 0 {
				name = ""
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", name, i+1, cand.Kind, cand)
		}
	}
	return tw.Flush()
}
