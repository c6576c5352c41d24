package main

import (
	"fmt"
	"net/url"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	ts "github.com/reoring/tableschema"
)

func newCastCmd(a *app) *cobra.Command {
	var (
		limit   int
		noMatch bool
	)
	cmd := &cobra.Command{
		Use:   "cast DATA",
		Short: "Cast a data file and print one JSON array per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			p, err := a.openData(args[0])
			if err != nil {
				return err
			}
			t := ts.NewTable(p, s)

			opts := []ts.IterOption{}
			if limit >= 0 {
				opts = append(opts, ts.WithLimit(limit))
			}
			ordering := t.OrderedFields()
			if noMatch {
				opts = append(opts, ts.WithoutKeyedMatching())
				ordering = nil
			}
			if ordering == nil {
				ordering = s.Fields
			}

			enc := gojson.NewEncoder(cmd.OutOrStdout())
			n := 0
			for row := range t.All(opts...) {
				if err := enc.Encode(jsonRow(row, ordering)); err != nil {
					return err
				}
				n++
			}
			if err := p.Err(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.log.Info().Int("rows", n).Msg("rows emitted")
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", -1, "stop after this many rows")
	cmd.Flags().BoolVar(&noMatch, "no-header-match", false, "pair columns with schema fields by position")
	a.dataFlags(cmd)
	return cmd
}

// jsonRow converts logical values into JSON friendly ones.
func jsonRow(row []any, fields ts.Fields) []any {
	out := make([]any, len(row))
	for i, v := range row {
		var f *ts.Field
		if i < len(fields) {
			f = fields[i]
		}
		out[i] = jsonValue(v, f)
	}
	return out
}

func jsonValue(v any, f *ts.Field) any {
	switch x := v.(type) {
	case *url.URL:
		return x.String()
	case ts.Duration:
		return x.String()
	case ts.YearMonth:
		return x.String()
	case time.Time:
		if f != nil {
			switch f.Type {
			case ts.TypeDate:
				return x.Format(time.DateOnly)
			case ts.TypeTime:
				return x.Format("15:04:05.999999999")
			}
		}
		return x.Format(time.RFC3339Nano)
	}
	return v
}
