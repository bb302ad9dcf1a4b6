package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/zams/internal/repository"
	"github.com/jask/zams/internal/tableview"
)

var (
	dsSearch   string
	dsTypes    []string
	dsStatuses []string
	dsSort     string
	dsDesc     bool
	dsPage     int
	dsPageSize int
)

var datasourcesCmd = &cobra.Command{
	Use:     "datasources",
	Aliases: []string{"ds"},
	Short:   "List datasources",
	Long:    "Print one page of datasources after applying search, filters and sort the way the console does.",
	Args:    cobra.NoArgs,
	RunE:    runDatasources,
}

func init() {
	f := datasourcesCmd.Flags()
	f.StringVarP(&dsSearch, "search", "q", "", "case-insensitive substring match on name, type or created by")
	f.StringSliceVarP(&dsTypes, "type", "t", nil, "keep only these types (repeatable)")
	f.StringSliceVarP(&dsStatuses, "status", "s", nil, "keep only these statuses (repeatable)")
	f.StringVar(&dsSort, "sort", "", "sort column: createdAt or createdBy")
	f.BoolVar(&dsDesc, "desc", false, "sort descending")
	f.IntVarP(&dsPage, "page", "p", 1, "page number")
	f.IntVar(&dsPageSize, "page-size", 0, "rows per page (default from config)")
}

var sortFields = []string{string(tableview.FieldCreatedAt), string(tableview.FieldCreatedBy)}

// buildQuery validates flag values against the option sets and returns the
// engine query.
func buildQuery(opts repository.Options, search string, types, statuses []string, sortField string, desc bool, page, pageSize int) (tableview.Query, error) {
	q := tableview.Query{Search: search, Page: page, PageSize: pageSize}

	canonTypes := make([]string, 0, len(types))
	for _, t := range types {
		v, err := repository.MatchOption("type", t, opts.Types)
		if err != nil {
			return q, err
		}
		canonTypes = append(canonTypes, v)
	}
	canonStatuses := make([]string, 0, len(statuses))
	for _, s := range statuses {
		v, err := repository.MatchOption("status", s, opts.Statuses)
		if err != nil {
			return q, err
		}
		canonStatuses = append(canonStatuses, v)
	}
	q.Filters = tableview.NewFilters(canonTypes, canonStatuses)

	if sortField != "" {
		field, err := repository.MatchOption("sort field", sortField, sortFields)
		if err != nil {
			return q, err
		}
		dir := tableview.DirAsc
		if desc {
			dir = tableview.DirDesc
		}
		q.Sort = tableview.SortSpec{Field: tableview.Field(field), Direction: dir}
	}
	return q, nil
}

func runDatasources(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	pageSize := dsPageSize
	if pageSize <= 0 {
		pageSize = e.cfg.UI.PageSize
	}
	q, err := buildQuery(e.opts, dsSearch, dsTypes, dsStatuses, dsSort, dsDesc, dsPage, pageSize)
	if err != nil {
		return err
	}
	rows, err := e.repos.Datasources.List(cmd.Context())
	if err != nil {
		return err
	}
	view := tableview.DeriveView(rows, q)
	e.log.Debug("datasources listed", "search", q.Search, "filters", q.Filters.Count(), "total", view.TotalCount)
	return printDatasources(cmd.OutOrStdout(), view)
}

func printDatasources(w io.Writer, view tableview.View[repository.Datasource]) error {
	if view.TotalCount == 0 {
		_, err := fmt.Fprintln(w, "No datasources found")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Type", "Status", "Created At", "Created By")
	for _, d := range view.Items {
		t.Row(fmt.Sprint(d.ID), d.Name, d.Type, d.Status, d.CreatedAt, d.CreatedBy)
	}
	if len(view.Items) > 0 {
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Showing %d to %d of %d entries (page %d of %d)\n",
			view.Start, view.End, view.TotalCount, view.Page, view.TotalPages)
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d is past the last page (%d)\n", view.Page, view.TotalPages)
	return err
}
