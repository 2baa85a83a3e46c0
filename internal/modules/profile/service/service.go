package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"time"

	"anoa.com/freshwash/internal/entity"
	memberRepo "anoa.com/freshwash/internal/modules/member/repository"
	"anoa.com/freshwash/internal/modules/profile/dto"
	"anoa.com/freshwash/internal/modules/profile/repository"
	"anoa.com/freshwash/pkg/apperror"
	"anoa.com/freshwash/pkg/dateutil"
	commonDto "anoa.com/freshwash/pkg/dto"
	"anoa.com/freshwash/pkg/sanitize"
	"anoa.com/freshwash/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

const imageFolder = "profiles"

type ProfileService interface {
	GetProfile(ctx context.Context, memberID uuid.UUID, role string) (*dto.ProfileResponse, error)
	UpdateAddress(ctx context.Context, memberID uuid.UUID, role string, input dto.UpdateAddressInput) (*dto.ProfileResponse, error)
	UpdatePhone(ctx context.Context, memberID uuid.UUID, role string, input dto.UpdatePhoneInput) (*dto.ProfileResponse, error)
	UpdateImage(ctx context.Context, memberID uuid.UUID, role string, input dto.UpdateImageInput, image *commonDto.ImageFile) (*dto.ProfileResponse, error)
}

type profileService struct {
	repo         repository.ProfileRepository
	members      memberRepo.MemberRepository
	imageStorage storage.ImageStorage
	now          func() time.Time
}

func NewProfileService(repo repository.ProfileRepository, members memberRepo.MemberRepository, imageStorage storage.ImageStorage, now func() time.Time) ProfileService {
	return &profileService{
		repo:         repo,
		members:      members,
		imageStorage: imageStorage,
		now:          now,
	}
}

// GetProfile returns the caller's role profile, or the shared member fields
// when the profile row was never created.
func (s *profileService) GetProfile(ctx context.Context, memberID uuid.UUID, role string) (*dto.ProfileResponse, error) {
	kind := entity.ProfileKindForRole(role)

	res, err := s.load(ctx, kind, memberID, role)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return &dto.ProfileResponse{
		MemberID: member.ID,
		Kind:     kind.String(),
		Role:     role,
		Name:     member.Username,
		Email:    member.Email,
	}, nil
}

func (s *profileService) UpdateAddress(ctx context.Context, memberID uuid.UUID, role string, input dto.UpdateAddressInput) (*dto.ProfileResponse, error) {
	if entity.ProfileKindForRole(role) != entity.KindCustomer {
		return nil, apperror.New(http.StatusForbidden, "admin users do not have address information", apperror.ErrForbidden)
	}

	address := sanitize.Text(input.Address)
	if address == "" {
		return nil, apperror.New(http.StatusBadRequest, "address required", apperror.ErrInvalidInput)
	}

	err := s.updateOrCreate(ctx, entity.KindCustomer, memberID,
		func(repo repository.ProfileRepository) (int64, error) {
			return repo.UpdateAddress(ctx, memberID, address)
		},
		func(customer *entity.Customer, _ *entity.Staff) {
			customer.Address = &address
		})
	if err != nil {
		return nil, err
	}

	return s.load(ctx, entity.KindCustomer, memberID, role)
}

func (s *profileService) UpdatePhone(ctx context.Context, memberID uuid.UUID, role string, input dto.UpdatePhoneInput) (*dto.ProfileResponse, error) {
	if !phonePattern.MatchString(input.Phone) {
		return nil, apperror.New(http.StatusBadRequest, "invalid phone format", apperror.ErrInvalidInput)
	}

	kind := entity.ProfileKindForRole(role)
	phone := input.Phone

	err := s.updateOrCreate(ctx, kind, memberID,
		func(repo repository.ProfileRepository) (int64, error) {
			return repo.UpdatePhone(ctx, kind, memberID, phone)
		},
		func(customer *entity.Customer, staff *entity.Staff) {
			if customer != nil {
				customer.Phone = &phone
			} else {
				staff.Phone = &phone
			}
		})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusConflict,
				fmt.Sprintf("phone number already in use by another %s", kind), apperror.ErrConflict)
		}
		return nil, err
	}

	return s.load(ctx, kind, memberID, role)
}

// UpdateImage stores an uploaded picture, or records a caller-supplied image
// path, in the member's image history and on the role profile.
func (s *profileService) UpdateImage(ctx context.Context, memberID uuid.UUID, role string, input dto.UpdateImageInput, image *commonDto.ImageFile) (*dto.ProfileResponse, error) {
	imagePath := input.ImagePath

	if image != nil {
		if s.imageStorage == nil {
			return nil, apperror.New(http.StatusServiceUnavailable, "image uploads are not configured", storage.ErrNotConfigured)
		}
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, path.Join(imageFolder, memberID.String()), image.FileName)
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedFormat) {
				return nil, apperror.New(http.StatusBadRequest, err.Error(), apperror.ErrInvalidInput)
			}
			return nil, err
		}
		imagePath = url
	}

	if imagePath == "" {
		return nil, apperror.New(http.StatusBadRequest, "missing imagePath", apperror.ErrInvalidInput)
	}

	kind := entity.ProfileKindForRole(role)
	err := s.repo.WithinTransaction(ctx, func(tx repository.ProfileRepository) error {
		err := s.apply(ctx, tx, kind, memberID,
			func(repo repository.ProfileRepository) (int64, error) {
				return repo.UpdateImage(ctx, kind, memberID, imagePath)
			},
			func(customer *entity.Customer, staff *entity.Staff) {
				if customer != nil {
					customer.Image = &imagePath
				} else {
					staff.Image = &imagePath
				}
			})
		if err != nil {
			return err
		}
		return s.members.AddImage(ctx, &entity.MemberImage{MemberID: memberID, ImagePath: imagePath})
	})
	if err != nil {
		if image != nil {
			if delErr := s.imageStorage.DeleteImage(ctx, imagePath); delErr != nil {
				slog.WarnContext(ctx, "uploaded image not removed",
					"member_id", memberID, "url", imagePath, "error", delErr)
			}
		}
		return nil, err
	}

	return s.load(ctx, kind, memberID, role)
}

// updateOrCreate applies update to an existing profile row. When the row is
// missing it is created from the member record with set applied.
func (s *profileService) updateOrCreate(
	ctx context.Context,
	kind entity.ProfileKind,
	memberID uuid.UUID,
	update func(repo repository.ProfileRepository) (int64, error),
	set func(customer *entity.Customer, staff *entity.Staff),
) error {
	return s.repo.WithinTransaction(ctx, func(tx repository.ProfileRepository) error {
		return s.apply(ctx, tx, kind, memberID, update, set)
	})
}

func (s *profileService) apply(
	ctx context.Context,
	tx repository.ProfileRepository,
	kind entity.ProfileKind,
	memberID uuid.UUID,
	update func(repo repository.ProfileRepository) (int64, error),
	set func(customer *entity.Customer, staff *entity.Staff),
) error {
	updated, err := update(tx)
	if err != nil {
		return err
	}
	if updated > 0 {
		return nil
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "member not found", apperror.ErrNotFound)
		}
		return err
	}

	today := dateutil.Today(s.now())
	age := dateutil.CalculateAge(member.DateOfBirth, today)

	if kind == entity.KindStaff {
		staff := &entity.Staff{ID: member.ID, Name: member.Username, Email: member.Email, Age: age, HireDate: today}
		set(nil, staff)
		return tx.CreateStaff(ctx, staff)
	}
	customer := &entity.Customer{ID: member.ID, Name: member.Username, Email: member.Email, Age: age}
	set(customer, nil)
	return tx.CreateCustomer(ctx, customer)
}

func (s *profileService) load(ctx context.Context, kind entity.ProfileKind, memberID uuid.UUID, role string) (*dto.ProfileResponse, error) {
	if kind == entity.KindStaff {
		staff, err := s.repo.FindStaff(ctx, memberID)
		if err != nil {
			return nil, err
		}
		hireDate := staff.HireDate.Format(dateutil.DateLayout)
		return &dto.ProfileResponse{
			MemberID: staff.ID,
			Kind:     kind.String(),
			Role:     role,
			Name:     staff.Name,
			Email:    staff.Email,
			Phone:    staff.Phone,
			Age:      &staff.Age,
			Image:    staff.Image,
			HireDate: &hireDate,
		}, nil
	}

	customer, err := s.repo.FindCustomer(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{
		MemberID: customer.ID,
		Kind:     kind.String(),
		Role:     role,
		Name:     customer.Name,
		Email:    customer.Email,
		Phone:    customer.Phone,
		Address:  customer.Address,
		Age:      &customer.Age,
		Image:    customer.Image,
	}, nil
}
