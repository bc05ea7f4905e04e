// Package advisor builds the plain-text context sent to the language model when a user
// asks for financial advice, and parses what the model returns for scanned receipts.
package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryLine renders one transaction as the model sees it, e.g.
//
//	2024-03-04: Loja X (Compras) - R$120.5 [Despesa] (Parcela 3/10)
func SummaryLine(t domain.Transaction) string {
	kind := "Despesa"
	if t.Type == domain.Income {
		kind = "Receita"
	}
	line := fmt.Sprintf("%s: %s (%s) - R$%s [%s]", t.Date, t.Merchant, t.Category, t.Amount.String(), kind)

	switch t.RecurrenceKind() {
	case domain.RecurrenceInstallment:
		line += fmt.Sprintf(" (Parcela %d/%d)", t.Recurrence.CurrentInstallment, t.Recurrence.TotalInstallments)
	case domain.RecurrenceMonthly:
		line += " (Assinatura Mensal)"
	case domain.RecurrenceYearly:
		line += " (Assinatura Anual)"
	}
	return line
}

// BuildSummary renders one line per transaction, in order.
func BuildSummary(txns []domain.Transaction) string {
	lines := make([]string, len(txns))
	for i, t := range txns {
		lines[i] = SummaryLine(t)
	}
	return strings.Join(lines, "\n")
}

// SystemInstruction is the persona given to the model.
const SystemInstruction = "Você é o FinAI, um assistente financeiro inteligente e prestativo que fala Português."

// FallbackAnswer is returned to the user when the model fails.
const FallbackAnswer = "Desculpe, estou com problemas para analisar suas finanças agora."

// EmptyAnswer is returned when the model answers with no text.
const EmptyAnswer = "Não consegui gerar um conselho neste momento."

// BuildPrompt embeds the transaction summary and the user's question.
func BuildPrompt(txns []domain.Transaction, question string) string {
	var b strings.Builder
	b.WriteString("Você é um consultor financeiro especialista pessoal (FinAI). Aqui está o histórico recente do usuário:\n")
	b.WriteString(BuildSummary(txns))
	b.WriteString("\n\nPergunta do Usuário: ")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n\nForneça uma resposta concisa, útil e amigável em PORTUGUÊS (Brasil).\n")
	b.WriteString("Use formatação markdown (negrito, listas).\n")
	b.WriteString("Se o usuário perguntar sobre assinaturas ou parcelamentos, analise os dados fornecidos.\n")
	return b.String()
}

// ReceiptPrompt asks the model to extract the fields of a receipt image.
const ReceiptPrompt = "Analise esta imagem de recibo. Extraia o nome do estabelecimento (merchant), " +
	"a data (formato YYYY-MM-DD), o valor total (amount) e sugira uma categoria (category) em Português " +
	"(ex: Alimentação, Transporte, Compras). Se a data não estiver clara, deixe o campo date vazio. " +
	"Responda apenas com um objeto JSON com as chaves merchant, date, amount e category."

// Receipt is what the model extracted from a receipt image.
type Receipt struct {
	Merchant string          `json:"merchant"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

// ParseReceipt decodes the model's answer. Markdown fences around the JSON are tolerated.
// A missing or malformed date is replaced by today. The amount is kept as a positive
// value rounded to cents.
func ParseReceipt(raw string, today domain.Date) (Receipt, error) {
	clean := cleanModelJSON(raw)
	var r Receipt
	if err := json.Unmarshal([]byte(clean), &r); err != nil {
		return Receipt{}, fmt.Errorf("%w: receipt response is not JSON: %v", apperrors.ErrUnavailable, err)
	}
	if strings.TrimSpace(r.Merchant) == "" || strings.TrimSpace(r.Category) == "" {
		return Receipt{}, fmt.Errorf("%w: receipt response misses merchant or category", apperrors.ErrUnavailable)
	}
	r.Amount = r.Amount.Abs().Round(2)
	if _, err := domain.ParseDate(r.Date); err != nil {
		r.Date = today.String()
	}
	return r, nil
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
