package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v3"

	"interestsearch/internal/domain"
	"interestsearch/internal/search"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// QueryCommand creates the headless query command
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Run a search without the UI and print the results",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "pages",
				Usage: "Maximum number of pages to load",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
		},
		Action: withEnv(runQuery),
	}
}

type queryOutput struct {
	Query     string            `json:"query"`
	Count     int               `json:"count"`
	PagesLeft int               `json:"pages_left"`
	Error     string            `json:"error,omitempty"`
	Interests []domain.Interest `json:"interests"`
}

func runQuery(ctx context.Context, c *cli.Command, e *env) error {
	p, err := e.newProvider()
	if err != nil {
		return err
	}

	query := c.Args().First()
	pages := int(c.Int("pages"))
	if pages < 1 {
		pages = 1
	}

	ctl := e.newController()
	items, searchErr := search.NewRunner(ctl, p).Search(ctx, query, pages)

	out := queryOutput{
		Query:     query,
		Count:     len(items),
		PagesLeft: ctl.Progress().PagesLeft,
		Interests: items,
	}
	if searchErr != nil {
		out.Error = searchErr.Error()
	}

	w := c.Root().Writer
	if c.Bool("json") {
		if err := writeJSON(w, out); err != nil {
			return err
		}
	} else {
		writeTable(w, out)
	}

	if searchErr != nil {
		return fmt.Errorf("searching %q: %w", query, searchErr)
	}
	return nil
}

func writeJSON(w io.Writer, out queryOutput) error {
	if out.Interests == nil {
		out.Interests = []domain.Interest{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, out queryOutput) {
	if out.Count == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tMATCH\tAVATAR")
	for _, item := range out.Interests {
		avatar := ""
		if item.HasAvatar() {
			avatar = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", item.ID, item.Name, item.Type, item.Match, avatar)
	}
	_ = tw.Flush()

	left := "unknown"
	if out.PagesLeft != search.PagesUnknown {
		left = fmt.Sprintf("%d", out.PagesLeft)
	}
	fmt.Fprintf(w, "\nTotal: %d results, %s pages left\n", out.Count, left)
}
