package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dumpcsv/internal/cli/output"
	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the available SQL dialects",
		Long: `List the grammars accepted by --dialect, with their aliases and
identifier quoting. Unknown dialect names use the default grammar.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listDialects(NewCommandContext(cmd).Renderer)
		},
	}
}

func dialectInfos() []output.DialectInfo {
	def := dialect.Default()
	all := dialect.All()
	infos := make([]output.DialectInfo, 0, len(all))
	for _, d := range all {
		infos = append(infos, output.DialectInfo{
			Name:        d.Name,
			Aliases:     d.Aliases,
			Description: d.Description,
			Quotes:      quoteList(d.Identifiers),
			Default:     d == def,
		})
	}
	return infos
}

func quoteList(ids core.IdentifierConfig) []string {
	quotes := make([]string, 0, len(ids.Quotes))
	for _, q := range ids.Quotes {
		quotes = append(quotes, string(q.Open)+string(q.Close))
	}
	return quotes
}

func listDialects(r *output.Renderer) error {
	infos := dialectInfos()
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name
		if info.Default {
			name += " (default)"
		}
		rows = append(rows, []string{name, strings.Join(info.Aliases, ", "), strings.Join(info.Quotes, " "), info.Description})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Dialects"))
		r.Println("")
	} else {
		r.Header(1, "Dialects")
	}
	r.Table([]string{"Name", "Aliases", "Quotes", "Description"}, rows)
	return nil
}
