package post

import "context"

type Repo interface {
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	Create(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
}
