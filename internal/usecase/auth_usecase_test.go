package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"medicore/config"
	"medicore/internal/delivery/dto"
	"medicore/internal/domain/entity"
	"medicore/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

type authFixture struct {
	usecase    AuthUsecase
	users      *fakeUserRepo
	profiles   *fakeDoctorProfileRepo
	tokens     *fakeTokenService
	audit      *fakeAuditService
	jwtService *jwt.JWTService
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	profiles := newFakeDoctorProfileRepo()
	tokens := newFakeTokenService()
	audit := &fakeAuditService{}
	jwtService := testJWTService()
	return &authFixture{
		usecase:    NewAuthUsecase(nil, testLogger(), users, profiles, jwtService, tokens, audit),
		users:      users,
		profiles:   profiles,
		tokens:     tokens,
		audit:      audit,
		jwtService: jwtService,
	}
}

func TestValidHospitalEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"dr.house@hospital.com", true},
		{"  DR.HOUSE@Hospital.COM  ", true},
		{"nurse@med.com", true},
		{"front@clinic.com", true},
		{"someone@gmail.com", false},
		{"", false},
		{"hospital.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidHospitalEmail(tc.email), tc.email)
	}
}

func TestRegisterDoctorRequiresHospitalEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Email:    "doc@gmail.com",
		Password: "secret123",
		FullName: "Dr. Who",
		Role:     "doctor",
	})
	assert.ErrorIs(t, err, ErrHospitalEmailRequired)

	_, err = f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Email:         "doc@gmail.com",
		Password:      "secret123",
		FullName:      "Dr. Who",
		Role:          "doctor",
		HospitalEmail: "doc@gmail.com",
	})
	assert.ErrorIs(t, err, ErrInvalidHospitalEmail)
}

func TestRegisterPatientIsAutoVerified(t *testing.T) {
	f := newAuthFixture()

	tokens, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Email:    "pat@example.com",
		Password: "secret123",
		FullName: "Pat Example",
		Role:     "patient",
	})
	require.NoError(t, err)
	require.NotNil(t, tokens.User)
	assert.True(t, tokens.User.IsVerified)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Issued tokens must be immediately usable.
	claims, err := f.jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	valid, err := f.tokens.IsValid(context.Background(), claims.UserID, claims.TokenID, jwt.AccessToken)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRegisterDoctorAutoCreatesProfile(t *testing.T) {
	f := newAuthFixture()

	tokens, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Email:          "doc@example.com",
		Password:       "secret123",
		FullName:       "Dr. Strange",
		Role:           "doctor",
		HospitalEmail:  "strange@hospital.com",
		Specialization: "Neurosurgery",
	})
	require.NoError(t, err)
	assert.False(t, tokens.User.IsVerified)

	profile, err := f.profiles.FindByUserID(context.Background(), nil, tokens.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, []string{"English"}, []string(profile.Languages))
	assert.Equal(t, []string{"Neurosurgery"}, []string(profile.Qualifications))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	req := &dto.RegisterRequest{
		Email:    "pat@example.com",
		Password: "secret123",
		FullName: "Pat Example",
		Role:     "patient",
	}
	_, err := f.usecase.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = f.usecase.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	active := true
	f.users.add(&entity.User{
		Email:    "pat@example.com",
		Password: string(hashed),
		FullName: "Pat Example",
		Role:     entity.RolePatient,
		IsActive: &active,
	})

	_, err = f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "pat@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "pat@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", tokens.User.Email)
	assert.Contains(t, f.audit.actions(), entity.AuditActionUserLogin)
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	inactive := false
	f.users.add(&entity.User{
		Email:    "gone@example.com",
		Password: string(hashed),
		Role:     entity.RolePatient,
		IsActive: &inactive,
	})

	_, err = f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "gone@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()

	issued, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Email:    "pat@example.com",
		Password: "secret123",
		FullName: "Pat Example",
		Role:     "patient",
	})
	require.NoError(t, err)

	refreshed, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: issued.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, issued.RefreshToken, refreshed.RefreshToken)

	// The presented refresh token is single-use.
	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: issued.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	f := newAuthFixture()

	issued, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Email:    "pat@example.com",
		Password: "secret123",
		FullName: "Pat Example",
		Role:     "patient",
	})
	require.NoError(t, err)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: issued.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
