package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"schoolcomm/internal/model"
	"schoolcomm/internal/repository"
)

// AdminService covers account and roster administration.
type AdminService struct {
	userRepo    repository.UserRepository
	classRepo   repository.ClassRepository
	studentRepo repository.StudentRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	classRepo repository.ClassRepository,
	studentRepo repository.StudentRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		classRepo:   classRepo,
		studentRepo: studentRepo,
	}
}

// CreateUser provisions an account on a user's behalf.
func (s *AdminService) CreateUser(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every account.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// SetUserActive toggles an account. Deactivated users drop out of every
// audience resolution and can no longer log in.
func (s *AdminService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	return s.userRepo.SetActive(ctx, userID, active)
}

// CreateClass creates a class.
func (s *AdminService) CreateClass(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	class := &model.Class{
		Name:      req.Name,
		Section:   req.Section,
		TeacherID: req.TeacherID,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// ListClasses returns every class.
func (s *AdminService) ListClasses(ctx context.Context) ([]model.Class, error) {
	return s.classRepo.List(ctx)
}

// CreateStudent enrolls a student under a parent account.
func (s *AdminService) CreateStudent(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		FullName:    req.FullName,
		StudentCode: req.StudentCode,
		ClassID:     req.ClassID,
		ParentID:    req.ParentID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ListStudents returns every student with class and parent names joined.
func (s *AdminService) ListStudents(ctx context.Context) ([]model.Student, error) {
	return s.studentRepo.List(ctx)
}
