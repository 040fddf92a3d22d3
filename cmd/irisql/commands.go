package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/irisql/irisql"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// renderOutput is the JSON form of a rendered statement.
type renderOutput struct {
	SQL            string                `json:"sql"`
	Params         []string              `json:"params,omitempty"`
	Derived        []irisql.DerivedParam `json:"derived,omitempty"`
	Skip           *int                  `json:"skip,omitempty"`
	SkipParam      string                `json:"skip_param,omitempty"`
	IdentitySelect string                `json:"identity_select,omitempty"`
}

func newRenderOutput(result *irisql.QueryResult) renderOutput {
	out := renderOutput{
		SQL:            result.SQL,
		Params:         result.RequiredParams,
		Derived:        result.Derived,
		IdentitySelect: result.IdentitySelect,
	}
	if result.Skip != nil {
		out.Skip = result.Skip.Static
		if result.Skip.Param != nil {
			out.SkipParam = result.Skip.Param.Name
		}
	}
	return out
}

func newRenderCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a query document",
		Long: `Render a YAML or JSON query document as SQL.

Text output prints the statement followed by comment lines naming the
required parameters, derived parameters, rows to skip and the identity
statement when present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			schema, err := irisql.ParseQuerySchema(data)
			if err != nil {
				return err
			}
			r, err := a.renderer()
			if err != nil {
				return err
			}
			result, err := schema.Render(r)
			if err != nil {
				return err
			}
			a.log.Debug("rendered query",
				zap.String("dialect", r.Dialect().Name()),
				zap.String("file", file),
				zap.Int("params", len(result.RequiredParams)))
			return a.writeResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "query document (- for stdin)")

	return cmd
}

func newDDLCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Render a CREATE TABLE statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			schema, err := irisql.ParseTableSchema(data)
			if err != nil {
				return err
			}
			def, err := irisql.BuildTableFromSchema(schema)
			if err != nil {
				return err
			}
			r, err := a.renderer()
			if err != nil {
				return err
			}
			result, err := r.RenderCreateTable(def)
			if err != nil {
				return err
			}
			a.log.Debug("rendered table", zap.String("table", def.Name), zap.Int("columns", len(def.Columns)))
			return a.writeResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "table document (- for stdin)")

	return cmd
}

func newIdentityCommand(a *app) *cobra.Command {
	var table, column string

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Print the statement that reads a generated key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer()
			if err != nil {
				return err
			}
			d := r.Dialect()
			policy := d.Identity()
			if !policy.SupportsIdentityColumns() {
				return irisql.UnsupportedFeatureError{Dialect: d.Name(), Feature: "identity columns"}
			}
			stmt := policy.IdentitySelectString(table, column, "")
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), renderOutput{SQL: stmt})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), stmt)
			return err
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table the key was generated for")
	cmd.Flags().StringVar(&column, "column", "", "identity column")

	return cmd
}

func newCapabilitiesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Print the feature set of a dialect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer()
			if err != nil {
				return err
			}
			caps := r.Capabilities()
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), caps)
			}

			rows := []struct {
				name string
				ok   bool
			}{
				{"row value constructor", caps.RowValueConstructor},
				{"row value in list", caps.RowValueInList},
				{"row value quantified", caps.RowValueQuantified},
				{"distinct from", caps.DistinctFromOperator},
				{"intersect", caps.Intersect},
				{"offset fetch", caps.OffsetFetch},
				{"top", caps.TopClause},
				{"returning", caps.Returning},
				{"identity columns", caps.IdentityColumns},
				{"row locking", caps.RowLocking != 0},
			}
			w := cmd.OutOrStdout()
			for _, row := range rows {
				if _, err := fmt.Fprintf(w, "%-22s %t\n", row.name, row.ok); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) writeResult(w io.Writer, result *irisql.QueryResult) error {
	if a.jsonOutput() {
		return writeJSON(w, newRenderOutput(result))
	}

	var b strings.Builder
	b.WriteString(result.SQL)
	b.WriteString("\n")
	if len(result.RequiredParams) > 0 {
		b.WriteString("-- params: " + strings.Join(result.RequiredParams, ", ") + "\n")
	}
	for _, d := range result.Derived {
		terms := append([]string(nil), d.Params...)
		if d.Constant != 0 || len(terms) == 0 {
			terms = append(terms, strconv.Itoa(d.Constant))
		}
		b.WriteString("-- derived: " + d.Name + " = " + strings.Join(terms, " + ") + "\n")
	}
	if result.Skip != nil {
		switch {
		case result.Skip.Static != nil:
			b.WriteString("-- skip: " + strconv.Itoa(*result.Skip.Static) + "\n")
		case result.Skip.Param != nil:
			b.WriteString("-- skip: :" + result.Skip.Param.Name + "\n")
		}
	}
	if result.IdentitySelect != "" {
		b.WriteString("-- identity: " + result.IdentitySelect + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
