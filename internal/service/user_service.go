package service

import (
	"strings"

	"miwalavie-store/internal/domain"
	"miwalavie-store/pkg/utils"
)

// ClaimConfirmToken 自助升管理员需要的确认口令。
// 这是原店面有意为之的弱信任边界（店主通过隐藏入口自提权限），按原语义保留，
// 不做二次凭证校验；安全评审时应单独标记。
const ClaimConfirmToken = "yes"

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, Invalid("Email and password are required.")
	}
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, persistence(err)
	}
	if existing != nil {
		return nil, Invalid("That email is already registered. Please log in.")
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(password),
	}
	if err := s.users.Create(u); err != nil {
		return nil, persistence(err)
	}
	return u, nil
}

func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, persistence(err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, Invalid("Invalid email or password.")
	}
	return u, nil
}

func (s *UserService) FindByID(id string) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, persistence(err)
	}
	return u, nil
}

func (s *UserService) List() ([]domain.User, error) {
	us, err := s.users.List()
	return us, persistence(err)
}

// ClaimAdmin 确认口令不符时只返回提示，不改标志
func (s *UserService) ClaimAdmin(userID, confirm string) error {
	if confirm != ClaimConfirmToken {
		return Invalid("Please confirm to continue.")
	}
	if err := s.users.SetAdmin(userID, true); err != nil {
		return persistence(err)
	}
	return nil
}

// ToggleAdmin 管理面板的开关；不允许经此路径改自己
func (s *UserService) ToggleAdmin(actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, Invalid("You cannot change your own admin status here.")
	}
	target, err := s.users.FindByID(targetID)
	if err != nil {
		return false, persistence(err)
	}
	if target == nil {
		return false, NotFound("User not found.")
	}
	next := !target.IsAdmin
	if err := s.users.SetAdmin(targetID, next); err != nil {
		return false, persistence(err)
	}
	return next, nil
}

// EnsureAdmin 启动种子：邮箱不存在才创建，重复启动为 no-op
func (s *UserService) EnsureAdmin(email, password string) (created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return false, persistence(err)
	}
	if existing != nil {
		return false, nil
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		IsAdmin:      true,
	}
	if err := s.users.Create(u); err != nil {
		return false, persistence(err)
	}
	return true, nil
}
