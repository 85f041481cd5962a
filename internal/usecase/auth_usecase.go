package usecase

import (
	"context"
	"errors"
	"strings"

	"medicore/internal/converter"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/internal/domain/repository"
	"medicore/internal/service"
	"medicore/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("incorrect email or password")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrHospitalEmailRequired = errors.New("hospital email is required for doctor registration")
	ErrInvalidHospitalEmail  = errors.New("invalid hospital email address")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrUserNotFound          = errors.New("user not found")
)

// hospitalEmailDomains are the domains accepted for doctor registration.
var hospitalEmailDomains = []string{"@hospital.com", "@med.com", "@clinic.com"}

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	jwtService        *jwt.JWTService
	tokenService      service.TokenService
	auditService      service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	jwtService *jwt.JWTService,
	tokenService service.TokenService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		jwtService:        jwtService,
		tokenService:      tokenService,
		auditService:      auditService,
	}
}

// ValidHospitalEmail reports whether the address belongs to one of the
// accepted hospital domains. Comparison is trimmed and case-insensitive.
func ValidHospitalEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, domain := range hospitalEmailDomains {
		if strings.HasSuffix(email, domain) {
			return true
		}
	}
	return false
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	role := entity.Role(req.Role)

	if role == entity.RoleDoctor {
		if strings.TrimSpace(req.HospitalEmail) == "" {
			return nil, ErrHospitalEmailRequired
		}
		if !ValidHospitalEmail(req.HospitalEmail) {
			return nil, ErrInvalidHospitalEmail
		}
	}

	existing, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		Email:          req.Email,
		Password:       string(hashedPassword),
		FullName:       req.FullName,
		Role:           role,
		Phone:          req.Phone,
		IsActive:       &active,
		IsVerified:     role == entity.RolePatient,
		HospitalEmail:  req.HospitalEmail,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	}

	if err := u.userRepo.Create(ctx, u.db, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	// Doctors get an empty profile up front so the directory and availability
	// endpoints work immediately. Failure here must not fail registration.
	if role == entity.RoleDoctor {
		profile := &entity.DoctorProfile{
			UserID:          user.ID,
			ExperienceYears: 0,
			ConsultationFee: 0,
			Languages:       []string{"English"},
		}
		if req.Specialization != "" {
			profile.Qualifications = []string{req.Specialization}
		}
		if err := u.doctorProfileRepo.Create(ctx, u.db, profile); err != nil {
			u.log.Warnf("Failed to auto-create doctor profile for %s: %+v", user.Email, err)
		}
	}

	u.auditService.LogAction(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
		"role": string(role),
	})

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active() {
		return nil, ErrAccountInactive
	}

	u.auditService.LogAction(ctx, &user.ID, entity.AuditActionUserLogin, "user", user.ID.String(), nil)

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	if err := u.tokenService.Revoke(ctx, userID, accessTokenID, jwt.AccessToken); err != nil {
		return err
	}
	u.auditService.LogAction(ctx, &userID, entity.AuditActionUserLogout, "user", userID.String(), nil)
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	valid, err := u.tokenService.IsValid(ctx, claims.UserID, claims.TokenID, jwt.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrTokenRevoked
	}

	// Rotation: the presented refresh token is single-use.
	if err := u.tokenService.Revoke(ctx, claims.UserID, claims.TokenID, jwt.RefreshToken); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenService.Store(ctx, user.ID, accessTokenID, jwt.AccessToken); err != nil {
		return nil, err
	}
	if err := u.tokenService.Store(ctx, user.ID, refreshTokenID, jwt.RefreshToken); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user),
	}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
