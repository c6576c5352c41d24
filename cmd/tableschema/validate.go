package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	ts "github.com/reoring/tableschema"
)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate DATA",
		Short: "Check a data file against the schema constraints",
		Long: `Casts every row and checks required, unique, length, range, pattern and
enum constraints plus primary key uniqueness. Issues are printed one per line
as "path<TAB>code<TAB>message" and the command exits non-zero when any is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			p, err := a.openData(args[0])
			if err != nil {
				return err
			}
			err = ts.ValidateTable(cmd.Context(), ts.NewTable(p, s))
			if perr := p.Err(); perr != nil {
				return fmt.Errorf("%s: %w", args[0], perr)
			}
			var iss ts.Issues
			if errors.As(err, &iss) {
				writeIssues(cmd.OutOrStdout(), iss)
				a.log.Warn().Int("issues", len(iss)).Interface("codes", iss.ByCode()).Msg("validation failed")
				return fmt.Errorf("%s: %d issue(s)", args[0], len(iss))
			}
			if err != nil {
				return err
			}
			a.log.Info().Msg("validation passed")
			return nil
		},
	}
	a.dataFlags(cmd)
	return cmd
}
