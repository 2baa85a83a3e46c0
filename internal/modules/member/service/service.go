package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/member/dto"
	"anoa.com/freshwash/internal/modules/member/repository"
	profileRepo "anoa.com/freshwash/internal/modules/profile/repository"
	"anoa.com/freshwash/pkg/apperror"
	"anoa.com/freshwash/pkg/dateutil"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Session is a token already issued for a member that is being registered.
type Session struct {
	Token  string
	Expiry int64
}

// Registration carries everything needed to create a member of this group.
// MemberID may be preset so a session token can be issued before the write.
type Registration struct {
	MemberID    uuid.UUID
	Username    string
	Email       string
	Password    string
	Role        string
	DateOfBirth time.Time
	Session     *Session
}

type MemberService interface {
	Register(ctx context.Context, reg Registration) (*entity.Member, error)
	AddMember(ctx context.Context, req dto.AddMemberRequest) (*dto.MemberResponse, error)
	ListMembers(ctx context.Context) ([]dto.MemberResponse, error)
	DeleteMember(ctx context.Context, memberID uuid.UUID) (*dto.DeleteMemberResponse, error)
}

type memberService struct {
	repo     repository.MemberRepository
	profiles profileRepo.ProfileRepository
	now      func() time.Time
}

func NewMemberService(repo repository.MemberRepository, profiles profileRepo.ProfileRepository, now func() time.Time) MemberService {
	return &memberService{
		repo:     repo,
		profiles: profiles,
		now:      now,
	}
}

// Register writes the member, its credential and its group membership in one
// identity-store transaction, then creates the role profile in the laundry store.
// A failed profile write is logged and does not fail the registration.
func (s *memberService) Register(ctx context.Context, reg Registration) (*entity.Member, error) {
	if reg.Role != entity.RoleUser && reg.Role != entity.RoleAdmin {
		return nil, apperror.New(http.StatusBadRequest, "role must be user or admin", apperror.ErrInvalidInput)
	}

	today := dateutil.Today(s.now())
	if reg.DateOfBirth.After(today) {
		return nil, apperror.New(http.StatusBadRequest, "date of birth cannot be in the future", apperror.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &entity.Member{
		ID:          reg.MemberID,
		Username:    reg.Username,
		Email:       reg.Email,
		DateOfBirth: reg.DateOfBirth,
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	credential := &entity.Credential{
		MemberID:     member.ID,
		PasswordHash: string(hash),
		Role:         reg.Role,
	}
	if reg.Session != nil {
		credential.SessionToken = &reg.Session.Token
		credential.SessionExpiry = &reg.Session.Expiry
	}

	err = s.repo.WithinTransaction(ctx, func(tx repository.MemberRepository) error {
		if err := tx.CreateMember(ctx, member); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.New(http.StatusConflict, "email already registered", apperror.ErrConflict)
			}
			return err
		}
		if err := tx.CreateCredential(ctx, credential); err != nil {
			return err
		}
		return tx.AddMembership(ctx, member.ID, entity.LaundryGroupID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, member, reg.Role, today); err != nil {
		slog.WarnContext(ctx, "profile creation failed",
			"member_id", member.ID,
			"role", reg.Role,
			"error", err)
	}

	return member, nil
}

func (s *memberService) createProfile(ctx context.Context, member *entity.Member, role string, today time.Time) error {
	age := dateutil.CalculateAge(member.DateOfBirth, today)

	switch entity.ProfileKindForRole(role) {
	case entity.KindStaff:
		return s.profiles.CreateStaff(ctx, &entity.Staff{
			ID:       member.ID,
			Name:     member.Username,
			Email:    member.Email,
			Age:      age,
			HireDate: today,
		})
	default:
		return s.profiles.CreateCustomer(ctx, &entity.Customer{
			ID:    member.ID,
			Name:  member.Username,
			Email: member.Email,
			Age:   age,
		})
	}
}

func (s *memberService) AddMember(ctx context.Context, req dto.AddMemberRequest) (*dto.MemberResponse, error) {
	dob, err := dateutil.ParseDate(req.DOB)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, err.Error(), apperror.ErrInvalidInput)
	}

	member, err := s.Register(ctx, Registration{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DateOfBirth: dob,
	})
	if err != nil {
		return nil, err
	}

	return &dto.MemberResponse{
		MemberID:    member.ID,
		Username:    member.Username,
		Email:       member.Email,
		Role:        req.Role,
		DateOfBirth: req.DOB,
		CreatedAt:   member.CreatedAt,
	}, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]dto.MemberResponse, error) {
	credentials, err := s.repo.ListGroupMembers(ctx, entity.LaundryGroupID)
	if err != nil {
		return nil, err
	}

	members := make([]dto.MemberResponse, 0, len(credentials))
	for _, cred := range credentials {
		if cred.Member == nil {
			continue
		}
		members = append(members, dto.MemberResponse{
			MemberID:    cred.MemberID,
			Username:    cred.Member.Username,
			Email:       cred.Member.Email,
			Role:        cred.Role,
			DateOfBirth: cred.Member.DateOfBirth.Format(dateutil.DateLayout),
			CreatedAt:   cred.Member.CreatedAt,
		})
	}
	return members, nil
}

// DeleteMember removes the member from this group. A member shared with other
// groups only loses the group mapping; a member owned solely by this group is
// removed from both stores. The laundry-store transaction runs nested inside
// the identity-store one so that a failure in either rolls back both.
func (s *memberService) DeleteMember(ctx context.Context, memberID uuid.UUID) (*dto.DeleteMemberResponse, error) {
	removal := ""

	err := s.repo.WithinTransaction(ctx, func(tx repository.MemberRepository) error {
		memberships, err := tx.ListMemberships(ctx, memberID)
		if err != nil {
			return err
		}

		switch {
		case len(memberships) == 0:
			return apperror.ErrNotFound
		case len(memberships) > 1:
			removed, err := tx.DeleteMembership(ctx, memberID, entity.LaundryGroupID)
			if err != nil {
				return err
			}
			if removed == 0 {
				return apperror.ErrNotFound
			}
			removal = dto.RemovalPartial
			return nil
		case memberships[0].GroupID != entity.LaundryGroupID:
			return apperror.ErrNotFound
		}

		if err := tx.DeleteCredential(ctx, memberID); err != nil {
			return err
		}
		if _, err := tx.DeleteMember(ctx, memberID); err != nil {
			return err
		}
		if _, err := tx.DeleteMembership(ctx, memberID, entity.LaundryGroupID); err != nil {
			return err
		}

		err = s.profiles.WithinTransaction(ctx, func(ptx profileRepo.ProfileRepository) error {
			if err := ptx.Delete(ctx, entity.KindCustomer, memberID); err != nil {
				return err
			}
			return ptx.Delete(ctx, entity.KindStaff, memberID)
		})
		if err != nil {
			return err
		}

		removal = dto.RemovalFull
		return nil
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New(http.StatusNotFound, "member not found in this group", err)
		}
		return nil, fmt.Errorf("%w: %w", apperror.ErrDeletionFailed, err)
	}

	return &dto.DeleteMemberResponse{
		Message:         "member deleted successfully",
		DeletedMemberID: memberID,
		Removal:         removal,
	}, nil
}
