package usecase

import (
	"context"
	"fmt"
	"time"

	"project_billing/internal/usecase/interfaces"
)

const (
	invoiceNumberPrefix   = "INV"
	blueprintNumberPrefix = "BOV"
)

// DocumentNumbers formats document numbers as PREFIX + yymm + 4-digit sequence,
// e.g. BOV25030007. The sequence restarts every month per prefix.
type DocumentNumbers struct {
	seq interfaces.ISequenceRepository
	now func() time.Time
}

func NewDocumentNumbers(seq interfaces.ISequenceRepository) *DocumentNumbers {
	return &DocumentNumbers{seq: seq, now: time.Now}
}

func (n *DocumentNumbers) Next(ctx context.Context, prefix string) (string, error) {
	period := n.now().UTC().Format("0601")
	v, err := n.seq.Next(ctx, prefix+period)
	if err != nil {
		return "", persistenceError("next "+prefix+" number", err)
	}
	return fmt.Sprintf("%s%s%04d", prefix, period, v), nil
}
