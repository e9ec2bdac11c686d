package export

import (
	"context"

	"github.com/matillion/pachca-export/internal/pachca"
)

// Source defines the upstream reads an export needs
//
//go:generate go tool mockgen -source=$GOFILE -destination=source_mocks.go -package=export
type Source interface {
	FetchAllUsers(ctx context.Context) (*pachca.Directory, error)
	FetchMessages(ctx context.Context, chatID string) ([]pachca.Message, error)
}
