// Package postgres реализует хранение новостей и комментариев в Postgres.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"newsnotes/internal/news/ports/repositories"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// RepositoryFactory создает репозитории новостного сайта.
type RepositoryFactory struct {
	newsRepo    repositories.NewsRepository
	commentRepo repositories.CommentRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		newsRepo:    NewNewsRepository(pool),
		commentRepo: NewCommentRepository(pool),
	}
}

// NewsRepository возвращает репозиторий новостей.
func (f *RepositoryFactory) NewsRepository() repositories.NewsRepository {
	return f.newsRepo
}

// CommentRepository возвращает репозиторий комментариев.
func (f *RepositoryFactory) CommentRepository() repositories.CommentRepository {
	return f.commentRepo
}
