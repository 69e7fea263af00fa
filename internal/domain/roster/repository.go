package roster

import "context"

type Repository interface {
	ListProfiles(ctx context.Context) ([]Profile, error)
}
