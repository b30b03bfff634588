package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	// Update applies the blank-keeps-current partial update. The caller is
	// responsible for checking the patient exists.
	Update(ctx context.Context, id int64, u *Update) error
	// Delete removes the patient row; bills and payments go with it via the
	// schema's cascades. Returns sql.ErrNoRows when no row matched.
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, criterion, term string) ([]*Summary, error)
	List(ctx context.Context, term string) ([]*Patient, error)
}
