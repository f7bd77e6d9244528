package tenant

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithCompany attaches the resolved company ID to ctx.
func WithCompany(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// CompanyFromContext reads the company ID from ctx.
func CompanyFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(ctxKey{})
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
