package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"showcase/internal/dataset"
	"showcase/internal/gallery"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listPages int
	listJSON  bool
)

// listCmd prints the gallery without the interactive UI
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the shuffled, filtered gallery",
	Long: `Prints the gallery the same way the interactive view builds it:
projects are shuffled, filtered by --query, and revealed one page at a time.
Pages load immediately; there is no simulated delay.

Examples:
  showcase list --query todo
  showcase list --pages 0 --json   # every matching project`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listPages, "pages", "p", 1, "Number of pages to print (0 = all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print projects as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	groups, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return err
	}

	s := gallery.Ingest(groups, shuffleSource(), cfg.Gallery.PageSize)
	if query != "" {
		s = gallery.ApplyQuery(s, query)
	}
	for page := 1; listPages <= 0 || page < listPages; page++ {
		next, ticket, ok := gallery.BeginLoad(s)
		if !ok {
			break
		}
		s = gallery.CompleteLoad(next, ticket)
	}
	logger.Debug("Listing projects",
		zap.String("query", query),
		zap.Int("visible", len(s.Visible())),
		zap.Int("matched", len(s.Filtered())))

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Visible())
	}
	printProjects(out, s, cfg.Links.LegacyLiveDemo)
	return nil
}

func printProjects(w io.Writer, s gallery.State, legacyLiveDemo bool) {
	for i, p := range s.Visible() {
		title := p.Title
		if strings.TrimSpace(title) == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%3d. %s  @%s\n", i+1, title, p.Username)
		if d := strings.TrimSpace(p.Description); d != "" {
			fmt.Fprintf(w, "     %s\n", d)
		}
		if len(p.Tech) > 0 {
			fmt.Fprintf(w, "     [%s]\n", strings.Join(p.Tech, ", "))
		}
		if p.GithubURL != "" {
			fmt.Fprintf(w, "     github: %s\n", p.GithubURL)
		}
		if url := p.LiveDemoURL(legacyLiveDemo); url != "" {
			fmt.Fprintf(w, "     live:   %s\n", url)
		}
	}

	if s.AtEnd() {
		fmt.Fprintln(w, "🎉 You've reached the end!")
		return
	}
	fmt.Fprintf(w, "Showing %d of %d projects (use --pages for more)\n", len(s.Visible()), len(s.Filtered()))
}
