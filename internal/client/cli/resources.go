package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/examprep-admin/internal/client/models"
)

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

var errInvalidJSON = errors.New("payload is not valid JSON")

// parseListArgs understands
//
//	list <resource> [page] [sort=<col>] [desc] [<filter>=<value>...] [search words...]
func parseListArgs(args []string, pageSize int) (string, models.ListQuery, string, bool, error) {
	if len(args) == 0 {
		return "", models.ListQuery{}, "", false, usageError("list <resource> [page] [sort=<column>] [desc] [key=value...] [search...]")
	}

	q := models.ListQuery{Page: 1, Limit: pageSize}
	var (
		search   []string
		sortKey  string
		desc     bool
		seenPage bool
	)
	for _, arg := range args[1:] {
		if n, err := strconv.Atoi(arg); err == nil && !seenPage {
			q.Page, seenPage = n, true
			continue
		}
		if arg == "desc" {
			desc = true
			continue
		}
		if k, v, ok := strings.Cut(arg, "="); ok && k != "" {
			if k == "sort" {
				sortKey = v
				continue
			}
			if q.Filters == nil {
				q.Filters = map[string]string{}
			}
			q.Filters[k] = v
			continue
		}
		search = append(search, arg)
	}
	q.Search = strings.Join(search, " ")
	return args[0], q, sortKey, desc, nil
}

// List fetches one server page and prints it, sorted locally when asked.
func (a *App) List(ctx context.Context, args []string) error {
	name, q, sortKey, desc, err := parseListArgs(args, a.config.PageSize)
	if err != nil {
		return err
	}
	col, err := a.catalog.Lookup(name)
	if err != nil {
		return err
	}

	items, pg, err := col.ListAny(ctx, q)
	if err != nil {
		return err
	}
	rows, err := toRows(items)
	if err != nil {
		return err
	}
	return renderRows(a.out, listColumns(name), rows, sortKey, desc, pg)
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("show <resource> <id>")
	}
	col, err := a.catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	item, err := col.GetAny(ctx, args[1])
	if err != nil {
		return err
	}
	return a.printJSON(item)
}

func (a *App) readPayload() (json.RawMessage, error) {
	text, err := GetMultiline(a.reader, "Enter JSON payload", a.out)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(text)) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(text), nil
}

func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("create <resource>")
	}
	col, err := a.catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	payload, err := a.readPayload()
	if err != nil {
		return err
	}
	item, err := col.CreateAny(ctx, payload)
	if err != nil {
		return err
	}
	printlnFn("Created")
	return a.printJSON(item)
}

func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("update <resource> <id>")
	}
	col, err := a.catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	payload, err := a.readPayload()
	if err != nil {
		return err
	}
	item, err := col.UpdateAny(ctx, args[1], payload)
	if err != nil {
		return err
	}
	printlnFn("Updated")
	return a.printJSON(item)
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("delete <resource> <id>")
	}
	col, err := a.catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	if err := col.Delete(ctx, args[1]); err != nil {
		return err
	}
	printlnFn("Deleted", args[1])
	return nil
}

func (a *App) Stats(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("stats <resource>")
	}
	col, err := a.catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	stats, err := col.Stats(ctx)
	if err != nil {
		return err
	}
	a.printStats(args[0], stats)
	return nil
}

func (a *App) printStats(name string, stats models.Stats) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(a.out, "%s:\n", name)
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %-20s %s\n", k, cell(stats[k]))
	}
}

func (a *App) Publish(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return usageError("publish <testId> on|off")
	}
	mt, err := a.catalog.Tests.Publish(ctx, args[0], args[1] == "on")
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s published=%t\n", mt.Title, mt.IsPublished)
	return nil
}

func (a *App) SetActive(ctx context.Context, args []string, active bool) error {
	if len(args) != 1 {
		if active {
			return usageError("activate <userId>")
		}
		return usageError("deactivate <userId>")
	}
	u, err := a.catalog.Users.SetActive(ctx, args[0], active)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s active=%t\n", u.Email, u.IsActive)
	return nil
}

func (a *App) Report(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return usageError("report <kind> [from] [to]")
	}
	var from, to string
	if len(args) > 1 {
		from = args[1]
	}
	if len(args) > 2 {
		to = args[2]
	}

	rep, err := a.catalog.Reports.Get(ctx, args[0], from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Report %s", rep.Kind)
	if rep.From != "" || rep.To != "" {
		fmt.Fprintf(a.out, " (%s .. %s)", rep.From, rep.To)
	}
	fmt.Fprintln(a.out)

	pg := models.Pagination{Total: len(rep.Rows), TotalPages: 1, Page: 1, Limit: len(rep.Rows)}
	return renderRows(a.out, rep.Columns, rep.Rows, "", false, pg)
}

func (a *App) Dashboard(ctx context.Context) error {
	ov, err := a.catalog.Dashboard.Overview(ctx)
	if err != nil {
		return err
	}

	an := ov.Analytics
	fmt.Fprintf(a.out, "Users: %d  Active subscriptions: %d  Revenue: %.2f  Tests attempted: %d\n",
		an.TotalUsers, an.ActiveSubscriptions, an.TotalRevenue, an.TestsAttempted)

	if len(an.RevenueByMonth) > 0 {
		rows := make([]map[string]any, len(an.RevenueByMonth))
		for i, mv := range an.RevenueByMonth {
			rows[i] = map[string]any{"month": mv.Month, "revenue": mv.Value}
		}
		pg := models.Pagination{Total: len(rows), TotalPages: 1, Page: 1}
		if err := renderRows(a.out, []string{"month", "revenue"}, rows, "", false, pg); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(ov.Stats))
	for n := range ov.Stats {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		a.printStats(n, ov.Stats[n])
	}
	return nil
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}
