package documents

import (
	"context"

	"github.com/google/uuid"
)

// ProvisionInput describes a new consent document. Birthday arrives in
// the same DD/MM/YYYY form patients type; PIN is the 4-digit doctor PIN.
type ProvisionInput struct {
	Name     string
	Birthday string
	PIN      string
	Data     []byte
}

// System defines document operations over the database and blob storage.
type System interface {
	Provision(ctx context.Context, input ProvisionInput) (*Document, error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	LoadOriginal(ctx context.Context, id uuid.UUID) (*Document, []byte, error)
	StoreSigned(ctx context.Context, id uuid.UUID, data []byte) (string, error)
}
