// Package export renders month views as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/finai_backend/internal/core/domain"
)

var csvHeader = []string{"Data", "Estabelecimento", "Categoria", "Tipo", "Valor", "Status"}

// CSVFileName is the download name of the export of month.
func CSVFileName(month domain.Month) string {
	return fmt.Sprintf("extrato-finai-%s.csv", month)
}

// WriteCSV writes one row per entry, in order, with Brazilian formatting: comma as decimal
// separator, Receita/Despesa and Pago/Pendente. Fields containing commas or quotes are
// quoted.
func WriteCSV(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(csvRow(e.Txn())); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(t domain.Transaction) []string {
	kind := "Despesa"
	if t.Type == domain.Income {
		kind = "Receita"
	}
	status := "Pendente"
	if t.Status == domain.StatusCompleted {
		status = "Pago"
	}
	return []string{
		t.Date.String(),
		t.Merchant,
		t.Category,
		kind,
		strings.Replace(t.Amount.StringFixed(2), ".", ",", 1),
		status,
	}
}
