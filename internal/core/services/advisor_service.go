package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/advisor"
	"github.com/SscSPs/finai_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/finai_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
)

// advisorContextSize bounds how many recent transactions are sent to the model.
const advisorContextSize = 200

type advisorService struct {
	BaseService
	txnRepo   portsrepo.TransactionReader
	generator portssvc.TextGenerator
	now       func() time.Time
}

// NewAdvisorService creates the advisor. A nil generator yields a service whose methods
// return apperrors.ErrUnavailable.
func NewAdvisorService(txnRepo portsrepo.TransactionReader, generator portssvc.TextGenerator) portssvc.AdvisorSvcFacade {
	return &advisorService{
		txnRepo:   txnRepo,
		generator: generator,
		now:       time.Now,
	}
}

func (s *advisorService) Ask(ctx context.Context, userID, question string) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("%w: advisor is not configured", apperrors.ErrUnavailable)
	}
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is empty", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(txns) > advisorContextSize {
		txns = txns[:advisorContextSize]
	}

	answer, err := s.generator.GenerateText(ctx, portssvc.GenerationRequest{
		SystemInstruction: advisor.SystemInstruction,
		Prompt:            advisor.BuildPrompt(txns, question),
	})
	if err != nil {
		// The user gets an apology instead of an error page.
		s.LogError(ctx, err, "Advisor model call failed", slog.String("user_id", userID))
		return advisor.FallbackAnswer, nil
	}
	if strings.TrimSpace(answer) == "" {
		return advisor.EmptyAnswer, nil
	}
	return answer, nil
}

func (s *advisorService) ScanReceipt(ctx context.Context, image []byte, mimeType string) (*advisor.Receipt, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("%w: advisor is not configured", apperrors.ErrUnavailable)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is empty", apperrors.ErrValidation)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %q is not an image type", apperrors.ErrValidation, mimeType)
	}

	raw, err := s.generator.GenerateText(ctx, portssvc.GenerationRequest{
		Prompt:        advisor.ReceiptPrompt,
		Image:         image,
		ImageMIMEType: mimeType,
		JSONResponse:  true,
	})
	if err != nil {
		s.LogError(ctx, err, "Receipt scan failed")
		return nil, fmt.Errorf("%w: receipt scan failed: %v", apperrors.ErrUnavailable, err)
	}

	receipt, err := advisor.ParseReceipt(raw, domain.DateOf(s.now()))
	if err != nil {
		s.LogError(ctx, err, "Receipt response could not be parsed")
		return nil, err
	}
	return &receipt, nil
}
