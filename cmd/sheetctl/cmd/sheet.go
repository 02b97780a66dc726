package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/jacentio/sheetstore/internal/app"
	"github.com/jacentio/sheetstore/internal/config"
	"github.com/jacentio/sheetstore/persist/dynamo"
	"github.com/jacentio/sheetstore/sheet"
)

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Prepare the configured storage backend",
		Long: `Prepare the configured storage backend. For dynamo this creates the
snapshot table and waits until it is active; sqlite creates its schema on open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storage := c.cfg.Storage
			if storage.Backend == config.BackendDynamo {
				awsCfg, err := app.AWSConfig(cmd.Context(), storage)
				if err != nil {
					return err
				}
				if err := dynamo.CreateTable(cmd.Context(), dynamodb.NewFromConfig(awsCfg), storage.DynamoTable); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s backend ready (%d topics)\n", storage.Backend, len(c.store.Tree()))
			return nil
		},
	}
}

func (c *cli) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [url]",
		Short: "Fetch the sheet API payload and replace the sheet",
		Long:  `Fetch the sheet from url (default source.url) and replace the whole sheet with it.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if len(args) == 1 {
				url = args[0]
			}
			if err := c.store.Load(cmd.Context(), url); err != nil {
				return err
			}
			return c.printSummary(cmd.OutOrStdout())
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the sheet from a saved API payload (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}
			if err := c.store.LoadPayload(cmd.Context(), raw); err != nil {
				return err
			}
			return c.printSummary(cmd.OutOrStdout())
		},
	}
}

func (c *cli) printSummary(w io.Writer) error {
	tree := c.store.Tree()
	if c.output == "json" {
		return printJSON(w, map[string]int{
			"topics":    len(tree),
			"questions": tree.QuestionCount(),
		})
	}
	fmt.Fprintf(w, "loaded %d topics, %d questions\n", len(tree), tree.QuestionCount())
	return nil
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := c.store.Tree()
			w := cmd.OutOrStdout()
			if c.output == "json" {
				return printJSON(w, tree)
			}
			writeTree(w, tree)
			return nil
		},
	}
}

func writeTree(w io.Writer, tree sheet.Tree) {
	if len(tree) == 0 {
		fmt.Fprintln(w, "(empty sheet)")
		return
	}
	for i, topic := range tree {
		p := topic.Progress()
		fmt.Fprintf(w, "%d. %s [%s] %d/%d\n", i, topic.Title, topic.ID, p.Solved, p.Total)
		for j, st := range topic.SubTopics {
			p := st.Progress()
			fmt.Fprintf(w, "  %d. %s [%s] %d/%d\n", j, st.Title, st.ID, p.Solved, p.Total)
			for k, q := range st.Questions {
				mark := " "
				if q.Solved {
					mark = "x"
				}
				fmt.Fprintf(w, "    %d. [%s] %s (%s, %s) [%s]\n", k, mark, q.Title, q.Difficulty, q.Platform, q.ID)
			}
		}
	}
}

func (c *cli) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Print solved counts per topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := c.store.Tree()
			w := cmd.OutOrStdout()
			if c.output == "json" {
				type row struct {
					ID    string `json:"id"`
					Title string `json:"title"`
					sheet.Progress
				}
				rows := make([]row, 0, len(tree))
				for _, topic := range tree {
					rows = append(rows, row{ID: topic.ID, Title: topic.Title, Progress: topic.Progress()})
				}
				return printJSON(w, map[string]any{
					"total":  tree.Progress(),
					"topics": rows,
				})
			}
			for _, topic := range tree {
				p := topic.Progress()
				fmt.Fprintf(w, "%-30s %3d/%-3d %5.1f%%\n", topic.Title, p.Solved, p.Total, p.Percent())
			}
			p := tree.Progress()
			fmt.Fprintf(w, "%-30s %3d/%-3d %5.1f%%\n", "Total", p.Solved, p.Total, p.Percent())
			return nil
		},
	}
}
