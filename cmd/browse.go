package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/api"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

var browseCmd = &cobra.Command{
	Use:   "browse <products|categories|movements>",
	Short: "Browse a collection interactively",
	Long: `
Page through a collection from the terminal. Commands at the prompt:

  n / p        next / previous page
  g N          go to page N
  /text        filter by name (an empty "/" clears it)
  s key [dir]  sort by key, asc or desc
  z N          page size
  d ID         delete a record
  r            reload
  q            quit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch types.Entity(strings.ToLower(args[0])) {
		case types.EntityProducts:
			return runBrowse(cmd, types.EntityProducts, productColumns)
		case types.EntityCategories:
			return runBrowse(cmd, types.EntityCategories, categoryColumns)
		case types.EntityMovements:
			return runBrowse(cmd, types.EntityMovements, movementColumns)
		}
		return fmt.Errorf("unknown collection %q (use products, categories or movements)", args[0])
	},
}

type browser[T any] struct {
	cmd    *cobra.Command
	entity types.Entity
	cols   []column[T]
	env    *runtimeEnv
	ctl    *listview.Controller[T]
	filter *listview.Debouncer
	token  *listview.ReloadToken
	in     *bufio.Scanner
	wake   chan struct{}
}

func runBrowse[T any](cmd *cobra.Command, entity types.Entity, cols []column[T]) error {
	env, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	ctl := listview.NewController[T](
		listview.ForEntity[T](env.client, entity),
		listview.NewPageQuery(env.cfg.List.PageSize),
		listview.WithLogger(env.log),
	)
	defer ctl.Close()

	b := &browser[T]{
		cmd:    cmd,
		entity: entity,
		cols:   cols,
		env:    env,
		ctl:    ctl,
		filter: ctl.DebounceFilter(env.cfg.List.Debounce),
		token:  listview.NewReloadToken(),
		in:     bufio.NewScanner(os.Stdin),
		wake:   make(chan struct{}, 1),
	}
	b.watch()
	ctl.Bind(b.token)
	ctl.Refresh()

	for {
		st, err := b.await(ctx, func(st listview.State[T]) bool { return !st.Loading })
		if err != nil {
			return nil
		}
		b.render(st)

		fmt.Print(color.CyanString("%s> ", entity))
		if !b.in.Scan() {
			return b.in.Err()
		}
		if quit := b.handle(ctx, strings.TrimSpace(b.in.Text())); quit {
			return nil
		}
	}
}

func (b *browser[T]) render(st listview.State[T]) {
	fmt.Println()
	q := st.Query
	if q.FilterText != "" || q.SortKey != "" {
		color.New(color.FgHiBlack).Printf("filtro: %q  ordem: %s\n", q.FilterText, q.Sort())
	}
	if st.Err != nil {
		color.Red("❌ %s", api.UserMessage(st.Err, "Erro ao carregar "+entityLabels[b.entity]))
	}
	if !st.HasPage {
		return
	}
	printTable(os.Stdout, b.cols, st.Page.Items)
	fmt.Println()
	color.New(color.FgHiBlack).Println(pagerFooter(st.Page.PageInfo))
	if hint := navHint(st.Page.PageInfo); hint != "" {
		color.New(color.FgHiBlack).Println(hint)
	}
}

// navHint lists the paging commands that lead somewhere from info.
func navHint(info listview.PageInfo) string {
	var hints []string
	if info.HasPrev() {
		hints = append(hints, "p anterior")
	}
	if info.HasNext() {
		hints = append(hints, "n próxima")
	}
	return strings.Join(hints, " · ")
}

// handle runs one prompt command and reports whether to quit.
func (b *browser[T]) handle(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, "/") {
		b.applyFilter(ctx, strings.TrimSpace(line[1:]))
		return false
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "q", "quit", "exit":
		return true
	case "n":
		b.ctl.NextPage()
	case "p":
		b.ctl.PrevPage()
	case "r":
		b.ctl.Refresh()
	case "g":
		if n, ok := intArg(fields); ok {
			b.ctl.SetPage(n - 1)
		}
	case "z":
		if n, ok := intArg(fields); ok {
			b.ctl.SetPageSize(n)
		}
	case "s":
		if len(fields) < 2 {
			color.Yellow("uso: s key [asc|desc]")
			return false
		}
		dir := ""
		if len(fields) > 2 {
			dir = fields[2]
		}
		b.ctl.SetSort(fields[1], listview.ParseSortDirection(dir))
	case "d":
		b.delete(ctx, fields)
	case "?", "h", "help":
		fmt.Println(strings.TrimSpace(b.cmd.Long))
	default:
		color.Yellow("comando desconhecido %q (? para ajuda)", fields[0])
	}
	return false
}

// watch makes every state change wake a pending await.
func (b *browser[T]) watch() {
	b.ctl.OnChange(func(listview.State[T]) {
		select {
		case b.wake <- struct{}{}:
		default:
		}
	})
}

// await blocks until done accepts the controller's state. The OnChange
// listener only signals; every check reads a fresh snapshot.
func (b *browser[T]) await(ctx context.Context, done func(listview.State[T]) bool) (listview.State[T], error) {
	for {
		st := b.ctl.Snapshot()
		if done(st) {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-b.wake:
		}
	}
}

// applyFilter feeds the debouncer and waits for the filtered page, so the
// prompt never redraws a page for an older filter.
func (b *browser[T]) applyFilter(ctx context.Context, text string) {
	b.filter.Submit(text)
	_, _ = b.await(ctx, func(st listview.State[T]) bool {
		return st.Query.FilterText == text && !st.Loading
	})
}

// delete removes a record after confirmation and bumps the reload token so
// the current page is refetched in place.
func (b *browser[T]) delete(ctx context.Context, fields []string) {
	if len(fields) < 2 {
		color.Yellow("uso: d ID")
		return
	}
	id, err := parseIDArg(fields[1])
	if err != nil {
		color.Yellow("%v", err)
		return
	}

	if b.entity == types.EntityMovements {
		color.Yellow("⚠️  %s", movementDeleteWarning)
	}
	if force, _ := b.cmd.Flags().GetBool("force"); !force {
		fmt.Printf("Excluir #%d? (yes/no): ", id)
		if !b.in.Scan() || !isYes(b.in.Text()) {
			fmt.Println("❌ Exclusão cancelada")
			return
		}
	}

	if err := b.env.client.DeleteEntity(ctx, b.entity, id); err != nil {
		_ = reportFailure(err, "Erro ao deletar")
		return
	}
	color.Green("✅ Registro #%d deletado", id)
	b.token.Bump()
}

func intArg(fields []string) (int, bool) {
	if len(fields) < 2 {
		color.Yellow("uso: %s N", fields[0])
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		color.Yellow("número inválido %q", fields[1])
		return 0, false
	}
	return n, true
}
