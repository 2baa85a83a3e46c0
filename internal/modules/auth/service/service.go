package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/auth/dto"
	"anoa.com/freshwash/internal/modules/auth/token"
	memberRepo "anoa.com/freshwash/internal/modules/member/repository"
	member "anoa.com/freshwash/internal/modules/member/service"
	"anoa.com/freshwash/pkg/apperror"
	"anoa.com/freshwash/pkg/dateutil"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
}

type Options struct {
	SessionTTL   time.Duration
	AdminPasskey string
}

type authService struct {
	repo    memberRepo.MemberRepository
	members member.MemberService
	codec   *token.Codec
	opts    Options
}

func NewAuthService(repo memberRepo.MemberRepository, members member.MemberService, codec *token.Codec, opts Options) AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}

	return &authService{
		repo:    repo,
		members: members,
		codec:   codec,
		opts:    opts,
	}
}

// Login verifies the password and replaces the member's stored session with a
// freshly issued token, so any earlier token stops authenticating.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	identity := req.Email
	if identity == "" {
		identity = req.Username
	}
	if identity == "" {
		return nil, apperror.New(http.StatusBadRequest, "email or username is required", apperror.ErrInvalidInput)
	}

	cred, err := s.repo.FindCredentialByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		if errors.Is(err, memberRepo.ErrAmbiguousUsername) {
			return nil, apperror.New(http.StatusBadRequest, "username is shared by several accounts, log in with email", apperror.ErrInvalidInput)
		}
		return nil, err
	}
	if cred.Member == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	signed, expiry, err := s.codec.Issue(cred.MemberID, cred.Member.Email, cred.Role, s.opts.SessionTTL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSession(ctx, cred.MemberID, signed, expiry); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &dto.AuthResponse{
		Message:      "login successful",
		SessionToken: signed,
		ExpiresAt:    expiry,
		User: dto.UserResponse{
			MemberID: cred.MemberID,
			Username: cred.Member.Username,
			Email:    cred.Member.Email,
			Role:     cred.Role,
		},
	}, nil
}

// Signup registers a member of this group and returns a live session for it.
// Requests for the admin role must present the configured passkey.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if req.Role == entity.RoleAdmin && !s.validPasskey(req.AdminPasskey) {
		return nil, apperror.New(http.StatusForbidden, "invalid admin passkey", apperror.ErrForbidden)
	}

	dob, err := dateutil.ParseDate(req.DOB)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, err.Error(), apperror.ErrInvalidInput)
	}

	memberID := uuid.New()
	signed, expiry, err := s.codec.Issue(memberID, req.Email, req.Role, s.opts.SessionTTL)
	if err != nil {
		return nil, err
	}

	created, err := s.members.Register(ctx, member.Registration{
		MemberID:    memberID,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DateOfBirth: dob,
		Session:     &member.Session{Token: signed, Expiry: expiry},
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message:      "signup successful",
		SessionToken: signed,
		ExpiresAt:    expiry,
		User: dto.UserResponse{
			MemberID: created.ID,
			Username: created.Username,
			Email:    created.Email,
			Role:     req.Role,
		},
	}, nil
}

func (s *authService) validPasskey(given string) bool {
	if s.opts.AdminPasskey == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.opts.AdminPasskey)) == 1
}
