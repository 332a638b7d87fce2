package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/fetch"
	"github.com/pders01/hnstories/internal/hn"
	"github.com/pders01/hnstories/internal/query"
	"github.com/pders01/hnstories/internal/sorting"
	"github.com/pders01/hnstories/internal/storage"
	"github.com/pders01/hnstories/internal/stories"
)

var (
	errSearchFailed = errors.New("search failed")
	errEmptyTerm    = errors.New("search term cannot be empty")
)

type searchOptions struct {
	term    string
	page    int
	sort    sorting.Key
	reverse bool
	save    bool
}

func newSearchCmd() *cobra.Command {
	var (
		page    int
		sortBy  string
		reverse bool
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Print one page of matching stories and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return errEmptyTerm
			}
			key, err := sorting.ParseKey(sortBy)
			if err != nil {
				return err
			}
			if page < 0 {
				return fmt.Errorf("page must not be negative, got %d", page)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := searchOptions{term: args[0], page: page, sort: key, reverse: reverse, save: save}
			if save {
				store, err := storage.NewStore(cfg.Database.Path, cfg.Database.Timeout)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.Set(cfg.Search.StorageKey, opts.term); err != nil {
					return err
				}
			}

			return runSearch(cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 0, "Result page, starting at 0")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "none", "Sort by title, author, comments or points")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Reverse the sort order")
	cmd.Flags().BoolVar(&save, "save", false, "Remember the term for the next interactive session")

	return cmd
}

// runSearch performs one request through the same fetch pipeline the TUI
// uses and prints the sorted page to out.
func runSearch(out io.Writer, cfg *config.Config, opts searchOptions) error {
	builder := query.NewBuilder(cfg)
	orch := fetch.NewOrchestrator(hn.NewClient(cfg), builder.ExtractTerm, cfg.API.HTTPTimeout)

	rawURL := builder.BuildURL(opts.term)
	if opts.page > 0 {
		rawURL = builder.BuildPageURL(opts.term, opts.page)
	}

	state := stories.Initial()
	dispatch := func(a stories.Action) { state = stories.Reduce(state, a) }

	cmd := orch.Observe(rawURL, dispatch)
	if cmd == nil {
		return errEmptyTerm
	}
	if msg, ok := cmd().(fetch.CompletedMsg); ok {
		orch.Complete(msg, dispatch)
	}

	if state.IsError || state.IsLoading {
		return fmt.Errorf("%w for %q", errSearchFailed, opts.term)
	}

	visible := sorting.Apply(state.Items, sorting.State{Key: opts.sort, Reverse: opts.reverse})
	fmt.Fprintln(out, renderTable(visible))
	fmt.Fprintf(out, "%q • page %d • %d stories • %d comments\n",
		opts.term, state.Page+1, len(visible), stories.SumComments(visible))
	return nil
}

func renderTable(items []hn.Story) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TITLE", "AUTHOR", "COMMENTS", "POINTS", "URL")

	for _, s := range items {
		t.Row(s.Title, s.Author, strconv.Itoa(s.CommentCount), strconv.Itoa(s.Points), s.URL)
	}
	return t.Render()
}
