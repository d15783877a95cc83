package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/api"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/config"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/forms"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/listview"
)

// runtimeEnv is what most commands need: validated config, the diagnostic
// logger and an API client.
type runtimeEnv struct {
	cfg    *config.Config
	log    *logrus.Logger
	client *api.Client
}

func loadRuntime() (*runtimeEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log := cfg.NewLogger()
	client, err := api.NewFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	return &runtimeEnv{cfg: cfg, log: log, client: client}, nil
}

// commandContext is cancelled on Ctrl-C.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	force, _ := cmd.Flags().GetBool("force")
	if force {
		return true, nil
	}

	fmt.Printf("%s (yes/no): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return isYes(response), nil
}

func isYes(response string) bool {
	switch strings.TrimSpace(strings.ToLower(response)) {
	case "yes", "y", "sim", "s":
		return true
	}
	return false
}

// reportFailure prints the user-facing text for err and returns it so RunE
// exits non-zero. Validation errors list every field.
func reportFailure(err error, fallback string) error {
	if forms.IsValidation(err) {
		fields := forms.Fields(err)
		color.Red("❌ Verifique os campos:")
		for _, k := range sortedKeys(fields) {
			fmt.Printf("   • %s: %s\n", color.CyanString(k), fields[k])
		}
		return fmt.Errorf("validation failed")
	}
	color.Red("❌ %s", api.UserMessage(err, fallback))
	return err
}

type column[T any] struct {
	header string
	value  func(T) string
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

func printTable[T any](w io.Writer, cols []column[T], items []T) {
	tw := newTable(w)
	headers := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
		rules[i] = strings.Repeat("-", len([]rune(c.header)))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	for _, item := range items {
		values := make([]string, len(cols))
		for i, c := range cols {
			values[i] = c.value(item)
		}
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	tw.Flush()

	if len(items) == 0 {
		color.New(color.FgHiBlack).Fprintln(w, "  (nenhum registro)")
	}
}

// pagerFooter renders "página X de Y" with first/last markers.
func pagerFooter(info listview.PageInfo) string {
	current := info.PageIndex + 1
	if info.TotalPages == 0 {
		current = 0
	}
	var marks []string
	if !info.HasPrev() {
		marks = append(marks, "primeira")
	}
	if !info.HasNext() {
		marks = append(marks, "última")
	}
	footer := fmt.Sprintf("página %d de %d · %d registro(s)", current, info.TotalPages, info.TotalItems)
	if len(marks) > 0 {
		footer += " [" + strings.Join(marks, ", ") + "]"
	}
	return footer
}

// formatBRL renders a money value as R$ 1.234,56.
func formatBRL(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
