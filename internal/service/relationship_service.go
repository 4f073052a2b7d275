package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/pulse/internal/repository"
)

// RelationshipService maintains the follow graph. Both mutations are
// idempotent; racing duplicates resolve on the unique pair index.
type RelationshipService interface {
	Follow(ctx context.Context, actorID, authorID string) error
	Unfollow(ctx context.Context, actorID, authorID string) error
	IsFollowing(ctx context.Context, actorID, authorID string) (bool, error)

	// Username variants back the profile routes, which address authors by
	// username rather than ID.
	FollowByUsername(ctx context.Context, actorID, username string) error
	UnfollowByUsername(ctx context.Context, actorID, username string) error
}

type relationshipService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewRelationshipService(follows repository.FollowRepository, users repository.UserRepository) RelationshipService {
	return &relationshipService{follows: follows, users: users}
}

func (s *relationshipService) Follow(ctx context.Context, actorID, authorID string) error {
	if actorID == authorID {
		return ErrFollowSelf
	}
	return s.follows.Create(ctx, actorID, authorID)
}

func (s *relationshipService) Unfollow(ctx context.Context, actorID, authorID string) error {
	return s.follows.Delete(ctx, actorID, authorID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, actorID, authorID string) (bool, error) {
	return s.follows.Exists(ctx, actorID, authorID)
}

func (s *relationshipService) FollowByUsername(ctx context.Context, actorID, username string) error {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.Follow(ctx, actorID, author.ID)
}

func (s *relationshipService) UnfollowByUsername(ctx context.Context, actorID, username string) error {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.Unfollow(ctx, actorID, author.ID)
}
