package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/SscSPs/finai_backend/internal/core/projection"
	"github.com/SscSPs/finai_backend/internal/utils"
	"github.com/SscSPs/finai_backend/internal/utils/accounting"
	"github.com/SscSPs/finai_backend/internal/utils/export"
)

var stdout io.Writer = os.Stdout

type projectCmd struct {
	File       string `required:"" short:"f" help:"JSON file holding an array of transactions."`
	Month      string `required:"" short:"m" help:"Month to show (YYYY-MM)."`
	Search     string `help:"Case-insensitive substring of merchant or category."`
	Category   string `default:"all" help:"Exact category, or all."`
	Type       string `default:"all" help:"income, expense or all."`
	YearlyMode string `name:"yearly-mode" default:"anniversary" help:"How yearly subscriptions are projected."`
	FromOrigin bool   `name:"from-origin" help:"Do not project a recurrence into months before its own date."`
	CSV        bool   `name:"csv" help:"Write the view as CSV instead of a table."`
}

func (c *projectCmd) Run(g *globals) error {
	today, err := g.now()
	if err != nil {
		return err
	}
	month, err := domain.ParseMonth(c.Month)
	if err != nil {
		return err
	}
	switch c.Type {
	case domain.FilterAll, string(domain.Income), string(domain.Expense):
	default:
		return fmt.Errorf("unknown type %q, want income, expense or all", c.Type)
	}
	mode, err := projection.ParseYearlyMode(c.YearlyMode)
	if err != nil {
		return err
	}
	ledger, err := readLedger(c.File)
	if err != nil {
		return err
	}

	entries := projection.Projector{YearlyMode: mode, StartAtOrigin: c.FromOrigin}.ProjectMonth(ledger, month, today)
	entries = projection.FilterEntries(entries, domain.TransactionFilter{
		Month:    c.Month,
		Search:   c.Search,
		Category: c.Category,
		Type:     c.Type,
	})

	if c.CSV {
		return export.WriteCSV(stdout, entries)
	}
	return printMonthView(stdout, month, entries, projection.IsFutureMonth(month, today))
}

type monthsCmd struct {
	Count int `default:"12" help:"Number of months, starting at the current one."`
}

func (c *monthsCmd) Run(g *globals) error {
	today, err := g.now()
	if err != nil {
		return err
	}
	for _, opt := range projection.MonthOptions(c.Count, today) {
		marker := ""
		if opt.IsFuture {
			marker = " (projeção)"
		}
		if _, err := fmt.Fprintf(stdout, "%s\t%s%s\n", opt.Value, opt.Label, marker); err != nil {
			return err
		}
	}
	return nil
}

func (g *globals) now() (time.Time, error) {
	if g.Today == "" {
		return time.Now(), nil
	}
	d, err := domain.ParseDate(g.Today)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time(), nil
}

func readLedger(path string) ([]domain.Transaction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	var txns []domain.Transaction
	if err := json.Unmarshal(raw, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode ledger %s: %w", path, err)
	}
	for i, t := range txns {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("ledger entry %d (%s): %w", i, t.TransactionID, err)
		}
	}
	return txns, nil
}

func printMonthView(w io.Writer, month domain.Month, entries []domain.Entry, future bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	title := projection.MonthLabel(month)
	if future {
		title += " (projeção)"
	}
	fmt.Fprintln(tw, title)
	fmt.Fprintln(tw, "Data\tEstabelecimento\tCategoria\tValor\tStatus\t")
	for _, e := range entries {
		t := e.Txn()
		amount := utils.FormatBRL(t.Amount)
		if t.Type == domain.Expense {
			amount = utils.FormatBRL(t.Amount.Neg())
		}
		status := string(t.Status)
		if e.Projected() {
			status += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", t.Date, t.Merchant, t.Category, amount, status)
	}
	totals := accounting.Summarize(entries)
	fmt.Fprintf(tw, "\nReceitas\t%s\t\n", utils.FormatBRL(totals.Income))
	fmt.Fprintf(tw, "Despesas\t%s\t\n", utils.FormatBRL(totals.Expense))
	fmt.Fprintf(tw, "Saldo\t%s\t\n", utils.FormatBRL(totals.Balance))
	fmt.Fprintf(tw, "Pendente\t%s\t\n", utils.FormatBRL(totals.Pending))
	return tw.Flush()
}
