package service

import (
	"context"

	"github.com/dbertella/bbs/internal/models"
	"github.com/dbertella/bbs/internal/repository"
)

// FamilyResolver maps a user email to family display info through two
// point lookups: email -> profile -> family. A miss at any hop is a
// normal outcome and yields the sentinel, never an error.
type FamilyResolver struct {
	users    repository.UserRepository
	families repository.FamilyRepository
}

// NewFamilyResolver creates a family resolver
func NewFamilyResolver(users repository.UserRepository, families repository.FamilyRepository) *FamilyResolver {
	return &FamilyResolver{
		users:    users,
		families: families,
	}
}

// Resolve returns the family info for the given email.
func (r *FamilyResolver) Resolve(ctx context.Context, email string) models.FamilyInfo {
	if email == "" {
		return models.MissingFamily()
	}

	profile, err := r.users.GetByEmail(ctx, email)
	if err != nil || profile.FamilyID == nil {
		return models.MissingFamily()
	}

	family, err := r.families.GetByID(ctx, *profile.FamilyID)
	if err != nil {
		return models.MissingFamily()
	}

	return models.FamilyInfo{Name: family.Name, Color: family.Color}
}
