package services

import (
	"context"

	"github.com/SscSPs/finai_backend/internal/core/advisor"
)

// AdvisorSvcFacade answers questions about the user's finances with a language model.
// Both methods return apperrors.ErrUnavailable when no model is configured.
type AdvisorSvcFacade interface {
	Ask(ctx context.Context, userID, question string) (string, error)
	ScanReceipt(ctx context.Context, image []byte, mimeType string) (*advisor.Receipt, error)
}

// GenerationRequest is a single-turn request to a language model.
type GenerationRequest struct {
	SystemInstruction string
	Prompt            string
	// Image is optional inline media sent after the prompt.
	Image         []byte
	ImageMIMEType string
	// JSONResponse asks the model to answer with raw JSON.
	JSONResponse bool
}

// TextGenerator is the outbound port to a hosted language model.
type TextGenerator interface {
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
}
