package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/blog/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo     repositories.UserRepository
	postRepo     repositories.PostRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:     NewUserRepository(pool),
		postRepo:     NewPostRepository(pool),
		categoryRepo: NewCategoryRepository(pool),
		tagRepo:      NewTagRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// PostRepository возвращает репозиторий постов.
func (f *RepositoryFactory) PostRepository() repositories.PostRepository {
	return f.postRepo
}

// CategoryRepository возвращает репозиторий категорий.
func (f *RepositoryFactory) CategoryRepository() repositories.CategoryRepository {
	return f.categoryRepo
}

// TagRepository возвращает репозиторий тегов.
func (f *RepositoryFactory) TagRepository() repositories.TagRepository {
	return f.tagRepo
}
