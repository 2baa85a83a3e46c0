package repository

import (
	"context"
	"errors"

	"anoa.com/freshwash/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAmbiguousUsername reports a login username held by more than one member.
var ErrAmbiguousUsername = errors.New("username is shared by several members")

type MemberRepository interface {
	WithinTransaction(ctx context.Context, fn func(repo MemberRepository) error) error

	CreateMember(ctx context.Context, member *entity.Member) error
	CreateCredential(ctx context.Context, credential *entity.Credential) error
	AddMembership(ctx context.Context, memberID uuid.UUID, groupID int) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)
	FindCredential(ctx context.Context, memberID uuid.UUID) (*entity.Credential, error)
	FindCredentialByIdentity(ctx context.Context, identity string) (*entity.Credential, error)
	UpdateSession(ctx context.Context, memberID uuid.UUID, token string, expiry int64) error

	ListMemberships(ctx context.Context, memberID uuid.UUID) ([]entity.GroupMembership, error)
	DeleteMembership(ctx context.Context, memberID uuid.UUID, groupID int) (int64, error)
	DeleteCredential(ctx context.Context, memberID uuid.UUID) error
	DeleteMember(ctx context.Context, memberID uuid.UUID) (int64, error)

	ListGroupMembers(ctx context.Context, groupID int) ([]entity.Credential, error)
	AddImage(ctx context.Context, image *entity.MemberImage) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) WithinTransaction(ctx context.Context, fn func(repo MemberRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&memberRepository{db: tx})
	})
}

func (r *memberRepository) CreateMember(ctx context.Context, member *entity.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) CreateCredential(ctx context.Context, credential *entity.Credential) error {
	return r.db.WithContext(ctx).Omit("Member").Create(credential).Error
}

func (r *memberRepository) AddMembership(ctx context.Context, memberID uuid.UUID, groupID int) error {
	return r.db.WithContext(ctx).Create(&entity.GroupMembership{
		MemberID: memberID,
		GroupID:  groupID,
	}).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	var member entity.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindCredential(ctx context.Context, memberID uuid.UUID) (*entity.Credential, error) {
	var credential entity.Credential
	if err := r.db.WithContext(ctx).First(&credential, "member_id = ?", memberID).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

// FindCredentialByIdentity resolves an email address or a username to its
// credential. An email match wins; a username shared by several members
// returns ErrAmbiguousUsername.
func (r *memberRepository) FindCredentialByIdentity(ctx context.Context, identity string) (*entity.Credential, error) {
	var credential entity.Credential
	err := r.db.WithContext(ctx).
		Joins("Member").
		Where(`"Member".email = ?`, identity).
		First(&credential).Error
	if err == nil {
		return &credential, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var matches []entity.Credential
	err = r.db.WithContext(ctx).
		Joins("Member").
		Where(`"Member".username = ?`, identity).
		Limit(2).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &matches[0], nil
	}
	return nil, ErrAmbiguousUsername
}

func (r *memberRepository) UpdateSession(ctx context.Context, memberID uuid.UUID, token string, expiry int64) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Credential{}).
		Where("member_id = ?", memberID).
		Updates(map[string]interface{}{
			"session_token":  token,
			"session_expiry": expiry,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *memberRepository) ListMemberships(ctx context.Context, memberID uuid.UUID) ([]entity.GroupMembership, error) {
	var memberships []entity.GroupMembership
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *memberRepository) DeleteMembership(ctx context.Context, memberID uuid.UUID, groupID int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("member_id = ? AND group_id = ?", memberID, groupID).
		Delete(&entity.GroupMembership{})
	return result.RowsAffected, result.Error
}

func (r *memberRepository) DeleteCredential(ctx context.Context, memberID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("member_id = ?", memberID).Delete(&entity.Credential{}).Error
}

func (r *memberRepository) DeleteMember(ctx context.Context, memberID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", memberID).Delete(&entity.Member{})
	return result.RowsAffected, result.Error
}

// ListGroupMembers returns the credentials of every member of groupID with the member preloaded.
func (r *memberRepository) ListGroupMembers(ctx context.Context, groupID int) ([]entity.Credential, error) {
	var credentials []entity.Credential
	err := r.db.WithContext(ctx).
		Joins("Member").
		Joins("JOIN member_group_mappings mgm ON mgm.member_id = login.member_id").
		Where("mgm.group_id = ?", groupID).
		Order(`"Member".created_at DESC`).
		Find(&credentials).Error
	if err != nil {
		return nil, err
	}
	return credentials, nil
}

func (r *memberRepository) AddImage(ctx context.Context, image *entity.MemberImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}
