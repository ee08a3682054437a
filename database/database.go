package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db                *gorm.DB
	userRepo          *UserRepo
	socialNetworkRepo *SocialNetworkRepo
	categoryRepo      *CategoryRepo
	tagRepo           *TagRepo
	projectRepo       *ProjectRepo
	achievementRepo   *AchievementRepo
	experienceRepo    *ExperienceRepo
	commentRepo       *CommentRepo
	likeRepo          *LikeRepo
	aboutRepo         *AboutRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		userRepo:          NewUserRepo(db),
		socialNetworkRepo: NewSocialNetworkRepo(db),
		categoryRepo:      NewCategoryRepo(db),
		tagRepo:           NewTagRepo(db),
		projectRepo:       NewProjectRepo(db),
		achievementRepo:   NewAchievementRepo(db),
		experienceRepo:    NewExperienceRepo(db),
		commentRepo:       NewCommentRepo(db),
		likeRepo:          NewLikeRepo(db),
		aboutRepo:         NewAboutRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SocialNetworkRepo() *SocialNetworkRepo {
	return d.socialNetworkRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) AchievementRepo() *AchievementRepo {
	return d.achievementRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) AboutRepo() *AboutRepo {
	return d.aboutRepo
}

// Ping checks that the primary answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
