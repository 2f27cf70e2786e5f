package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	autherrors "github.com/Thomas-Sunil/newhrms/internal/auth/errors"
	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/employee"
	"github.com/Thomas-Sunil/newhrms/internal/shared/contextutil"
	"github.com/Thomas-Sunil/newhrms/internal/shared/counter"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	defaultSeedPassword = "Password123"

	// TokenTypeAccess must match the value AuthMiddleware accepts.
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carried by both access and refresh tokens. TokenType tells them apart.
type Claims struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	TokenType  string `json:"typ"`
	jwt.RegisteredClaims
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, login, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	LookupUsername(ctx context.Context, username string) (LookupUsernameResponse, error)
	BootstrapCEO(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error)
	BootstrapHR(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	jwtSecret []byte
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, jwtSecret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counter,
		jwtSecret: []byte(jwtSecret),
		logger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Login(ctx context.Context, login, password string) (string, string, AuthResponse, error) {
	account, err := s.repo.FindAccountByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login account lookup failed", zap.Error(err))
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(ctx, account)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		if errors.Is(err, autherrors.ErrTokenExpired) {
			return "", "", AuthResponse{}, err
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	account, err := s.repo.FindAccountByID(ctx, claims.UserID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	return s.issue(ctx, account)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	account, err := s.repo.FindAccountByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	profile, err := s.repo.FindProfile(ctx, account.ID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := toAuthResponse(account, profile)
	return &resp, nil
}

func (s *service) LookupUsername(ctx context.Context, username string) (LookupUsernameResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return LookupUsernameResponse{}, autherrors.ErrUsernameRequired
	}

	email, err := s.repo.FindEmailByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LookupUsernameResponse{}, autherrors.ErrUsernameNotFound
		}
		s.logger.Error("lookup username failed", zap.Error(err))
		return LookupUsernameResponse{}, err
	}

	return LookupUsernameResponse{Email: email}, nil
}

func (s *service) BootstrapCEO(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error) {
	return s.seed(ctx, seedAccount{
		username:    "ceo",
		email:       pick(req.Email, "ceo@yourcompany.com"),
		password:    pick(req.Password, defaultSeedPassword),
		firstName:   "Chief",
		lastName:    "Executive",
		role:        domain.RoleCXO,
		roleDesc:    "Executive leadership",
		designation: "Chief Executive Officer",
		department:  "Board of Directors",
	})
}

func (s *service) BootstrapHR(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error) {
	return s.seed(ctx, seedAccount{
		username:  "hr",
		email:     pick(req.Email, "hr@company.com"),
		password:  pick(req.Password, defaultSeedPassword),
		firstName: "HR",
		lastName:  "Manager",
		role:      domain.RoleHRManager,
		roleDesc:  "Human Resources Manager",
	})
}

type seedAccount struct {
	username    string
	email       string
	password    string
	firstName   string
	lastName    string
	role        domain.Role
	roleDesc    string
	designation string
	department  string
}

// seed creates or repairs a well-known account. Running it twice resets the
// password and email but never creates a second employee.
func (s *service) seed(ctx context.Context, in seedAccount) (BootstrapResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := s.logger.With(zap.String("request_id", rid), zap.String("username", in.username))

	hash, err := bcrypt.GenerateFromPassword([]byte(in.password), bcrypt.DefaultCost)
	if err != nil {
		return BootstrapResponse{}, err
	}
	email := strings.ToLower(strings.TrimSpace(in.email))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("seed begin tx failed", zap.Error(err))
		return BootstrapResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	roleID, err := qtx.EnsureRole(ctx, in.role.String(), in.roleDesc)
	if err != nil {
		log.Error("seed ensure role failed", zap.Error(err))
		return BootstrapResponse{}, err
	}

	var designationID, departmentID *uuid.UUID
	if in.designation != "" {
		id, err := qtx.EnsureDesignation(ctx, in.designation, 1)
		if err != nil {
			log.Error("seed ensure designation failed", zap.Error(err))
			return BootstrapResponse{}, err
		}
		designationID = &id
	}
	if in.department != "" {
		id, err := qtx.EnsureDepartment(ctx, in.department)
		if err != nil {
			log.Error("seed ensure department failed", zap.Error(err))
			return BootstrapResponse{}, err
		}
		departmentID = &id
	}

	existing, err := qtx.FindEmployeeByUsername(ctx, in.username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("seed employee lookup failed", zap.Error(err))
		return BootstrapResponse{}, err
	}

	created := existing == nil
	empl := existing
	if created {
		nextVal, err := s.counter.GetNextValue(ctx, counter.EmployeeNumber)
		if err != nil {
			log.Error("seed generate number failed", zap.Error(err))
			return BootstrapResponse{}, err
		}
		now := s.now()
		empl = &employee.Employee{
			ID:             uuid.New(),
			EmployeeNumber: counter.FormatEmployeeNumber(nextVal),
			FirstName:      in.firstName,
			LastName:       in.lastName,
			Username:       in.username,
			DOJ:            time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
			Status:         employee.StatusActive,
		}
	}

	account := &employee.Account{ID: uuid.New()}
	if empl.AccountID != nil {
		found, err := qtx.FindAccountByID(ctx, empl.AccountID.String())
		switch {
		case err == nil:
			account = found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			log.Error("seed account lookup failed", zap.Error(err))
			return BootstrapResponse{}, err
		}
	}
	account.Username = in.username
	account.Email = email
	account.PasswordHash = string(hash)

	if err := qtx.SaveAccount(ctx, account); err != nil {
		log.Error("seed save account failed", zap.Error(err))
		return BootstrapResponse{}, err
	}

	empl.AccountID = &account.ID
	empl.Email = email
	empl.RoleID = &roleID
	empl.Status = employee.StatusActive
	if designationID != nil {
		empl.DesignationID = designationID
	}
	if departmentID != nil {
		empl.DepartmentID = departmentID
	}

	if err := qtx.SaveEmployee(ctx, empl); err != nil {
		log.Error("seed save employee failed", zap.Error(err))
		return BootstrapResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("seed commit failed", zap.Error(err))
		return BootstrapResponse{}, err
	}

	log.Info("seed account ready", zap.Bool("created", created), zap.String("employee_id", empl.ID.String()))

	return BootstrapResponse{
		EmployeeID: empl.ID.String(),
		Username:   in.username,
		Email:      email,
		Created:    created,
	}, nil
}

func (s *service) issue(ctx context.Context, account *employee.Account) (string, string, AuthResponse, error) {
	profile, err := s.repo.FindProfile(ctx, account.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, autherrors.ErrUserNotFound
		}
		s.logger.Error("load profile failed", zap.String("account_id", account.ID.String()), zap.Error(err))
		return "", "", AuthResponse{}, err
	}
	if profile.Status != employee.StatusActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	claims := Claims{
		UserID:     account.ID.String(),
		EmployeeID: profile.EmployeeID.String(),
		Role:       profile.Role(),
	}

	claims.TokenType = TokenTypeAccess
	access, err := s.generateToken(claims, AccessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	claims.TokenType = TokenTypeRefresh
	refresh, err := s.generateToken(claims, RefreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return access, refresh, toAuthResponse(account, profile), nil
}

func (s *service) generateToken(claims Claims, expiry time.Duration) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *service) parse(raw string) (*Claims, error) {
	return ParseToken(raw, s.jwtSecret)
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func toAuthResponse(account *employee.Account, profile *Profile) AuthResponse {
	resp := AuthResponse{
		ID:             account.ID.String(),
		EmployeeID:     profile.EmployeeID.String(),
		EmployeeNumber: profile.EmployeeNumber,
		Username:       account.Username,
		Email:          account.Email,
		Name:           profile.Name(),
		Role:           profile.Role(),
	}
	if profile.DepartmentID != nil {
		resp.DepartmentID = profile.DepartmentID.String()
	}
	return resp
}

func pick(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
