package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo     UserRepository
	categoryRepo CategoryRepository
	locationRepo LocationRepository
	postRepo     PostRepository
	commentRepo  CommentRepository
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		categoryRepo: NewCategoryRepo(db),
		locationRepo: NewLocationRepo(db),
		postRepo:     NewPostRepo(db),
		commentRepo:  NewCommentRepo(db),
	}
}

// Compose builds a Database from arbitrary repository implementations.
func Compose(users UserRepository, categories CategoryRepository, locations LocationRepository, posts PostRepository, comments CommentRepository) Database {
	return Database{
		userRepo:     users,
		categoryRepo: categories,
		locationRepo: locations,
		postRepo:     posts,
		commentRepo:  comments,
	}
}

// Accessor methods for each repository

func (d Database) Users() UserRepository {
	return d.userRepo
}

func (d Database) Categories() CategoryRepository {
	return d.categoryRepo
}

func (d Database) Locations() LocationRepository {
	return d.locationRepo
}

func (d Database) Posts() PostRepository {
	return d.postRepo
}

func (d Database) Comments() CommentRepository {
	return d.commentRepo
}
