package service

import (
	"context"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// AudienceResolver maps an announcement's declared audience to the concrete
// user ids to notify. Resolution is a pure read over current membership:
// nothing is written, and the result is computed once at event time.
type AudienceResolver struct {
	userRepo    repository.UserRepository
	studentRepo repository.StudentRepository
}

func NewAudienceResolver(userRepo repository.UserRepository, studentRepo repository.StudentRepository) *AudienceResolver {
	return &AudienceResolver{
		userRepo:    userRepo,
		studentRepo: studentRepo,
	}
}

// Resolve returns the recipient ids for the audience. Inactive users are
// never included. A class audience yields the parents of the class's active
// students, duplicates preserved; downstream dispatch per recipient carries
// the same reference id either way. An unknown audience, or a class or
// individual audience missing its required id, resolves to no recipients
// rather than an error; audience validity is the API boundary's concern.
func (r *AudienceResolver) Resolve(ctx context.Context, audience string, classID, targetUserID *int64, excludeUserID int64) ([]int64, error) {
	switch audience {
	case model.AudienceAll:
		return r.userRepo.ListActiveIDs(ctx, excludeUserID)

	case model.AudienceTeachers:
		return r.userRepo.ListActiveIDsByRole(ctx, model.RoleTeacher)

	case model.AudienceParents:
		return r.userRepo.ListActiveIDsByRole(ctx, model.RoleParent)

	case model.AudienceClass:
		if classID == nil {
			return nil, nil
		}
		return r.studentRepo.ListActiveParentIDsByClass(ctx, *classID)

	case model.AudienceIndividual:
		if targetUserID == nil {
			return nil, nil
		}
		return []int64{*targetUserID}, nil

	default:
		return nil, nil
	}
}
