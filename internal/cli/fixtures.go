package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// FixturesCommand returns the fixtures command
func FixturesCommand() *cli.Command {
	return &cli.Command{
		Name:  "fixtures",
		Usage: "Validate fixture files, falling back to the built-in set for missing ones",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", EnvVars: []string{"FIXTURE_DIR"}, Usage: "directory of fixture JSON files"},
		},
		Action: func(c *cli.Context) error {
			w := c.App.Writer
			if w == nil {
				w = os.Stdout
			}

			set, err := loadFixtures(c.String("dir"))
			if err != nil {
				// Validate joins one error per problem
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					for _, e := range joined.Unwrap() {
						fmt.Fprintln(w, e)
					}
					return cli.Exit(fmt.Sprintf("%d fixture problems", len(joined.Unwrap())), 1)
				}
				return err
			}

			fmt.Fprintf(w, "users: %d valid, %d invalid, %d edge cases\n",
				len(set.Users.ValidUsers), len(set.Users.InvalidUsers), len(set.Users.EdgeCases))
			fmt.Fprintf(w, "searches: %d valid, %d invalid\n",
				len(set.Searches.ValidSearches), len(set.Searches.InvalidSearches))
			fmt.Fprintf(w, "registrations: %d valid, %d invalid\n",
				len(set.Registrations.ValidRegistrations), len(set.Registrations.InvalidRegistrations))
			fmt.Fprintln(w, "fixtures OK")
			return nil
		},
	}
}
