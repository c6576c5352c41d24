package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/tableschema/descriptor"
)

func newDescribeCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the normalized schema descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := descriptor.Encoding(format)
			if enc != descriptor.JSON && enc != descriptor.YAML {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			out, err := descriptor.Marshal(s, enc)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(out); err != nil {
				return err
			}
			if enc == descriptor.JSON {
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return cmd
}
