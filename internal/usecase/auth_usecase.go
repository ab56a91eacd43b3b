package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/serenitycare/appointment-api/config"
	"github.com/serenitycare/appointment-api/internal/converter"
	"github.com/serenitycare/appointment-api/internal/delivery/dto"
	"github.com/serenitycare/appointment-api/internal/domain/entity"
	"github.com/serenitycare/appointment-api/internal/domain/repository"
	"github.com/serenitycare/appointment-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch    = errors.New("password and confirmation do not match")
	ErrMobileAlreadyExists = errors.New("mobile number already registered")
	ErrInvalidCredentials  = errors.New("invalid identifier or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrPatientNotFound     = errors.New("patient not found")
)

// adminID is the fixed identity of the single pilot administrator account.
const adminID = "admin-001"

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
}

type authUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	adminCfg    config.AdminConfig
}

func NewAuthUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	adminCfg config.AdminConfig,
) AuthUsecase {
	return &authUsecase{
		log:         log,
		patientRepo: patientRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		adminCfg:    adminCfg,
	}
}

// Register creates a new patient identity and establishes its session.
// No identity is persisted when the password confirmation does not match.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		PatientCode: entity.NewPatientCode(time.Now()),
		Name:        req.Name,
		Mobile:      req.Mobile,
		Email:       req.Email,
		Age:         req.Age,
		Gender:      req.Gender,
		Password:    string(hashedPassword),
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrMobileAlreadyExists
		}
		if isDuplicateKeyError(err, "patient_code") {
			// Two registrations in the same millisecond. Derive a fresh
			// code and retry once.
			patient.PatientCode = entity.NewPatientCode(time.Now().Add(time.Millisecond))
			err = u.patientRepo.Create(ctx, patient)
		}
		if err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return nil, err
		}
	}

	tokens, err := u.issueSession(ctx, patient.ID, patient.Mobile, entity.RolePatient)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient registered: id=%s, code=%s", patient.ID, patient.PatientCode)
	return &dto.AuthResponse{
		Patient: converter.PatientToResponse(patient),
		Tokens:  *tokens,
	}, nil
}

// Login authenticates by mobile number or patient code.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	patient, err := u.patientRepo.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		u.log.Warnf("Failed to find patient by identifier: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueSession(ctx, patient.ID, patient.Mobile, entity.RolePatient)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Patient: converter.PatientToResponse(patient),
		Tokens:  *tokens,
	}, nil
}

// AdminLogin authenticates the configured hospital administrator account.
// The admin session identity is stored alongside the token keys so the
// admin dashboard can read it back.
func (u *authUsecase) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if req.Username != u.adminCfg.Username || req.Password != u.adminCfg.Password {
		return nil, ErrInvalidCredentials
	}

	// The admin is not a patient row; it uses the nil UUID in token claims.
	tokens, err := u.issueSession(ctx, uuid.Nil, req.Username, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	session := dto.AdminSession{
		ID:          adminID,
		Username:    req.Username,
		Role:        "Hospital Administrator",
		Permissions: entity.AdminPermissions,
		LoginTime:   time.Now().UTC(),
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	sessionKey := fmt.Sprintf("admin_session:%s", adminID)
	if err := u.redisClient.Set(ctx, sessionKey, sessionJSON, u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store admin session: %+v", err)
		return nil, err
	}

	u.log.Infof("Admin login: %s", req.Username)
	return &dto.AdminLoginResponse{
		Session: session,
		Tokens:  *tokens,
	}, nil
}

// Logout revokes the session tokens. Appointment data is never affected.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	keys := []string{
		fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID),
	}
	if refreshTokenID != "" {
		keys = append(keys, fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID))
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete session tokens: %+v", err)
		return err
	}

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

	// Check if the refresh token is still live in Redis
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: drop the old refresh token before issuing a new pair
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueSession(ctx, claims.UserID, claims.Subject, claims.Role)
}

func (u *authUsecase) GetCurrentPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// issueSession generates an access/refresh token pair and records both token
// IDs in Redis. Presence of those keys is what "having a session" means;
// logout deletes them.
func (u *authUsecase) issueSession(ctx context.Context, userID uuid.UUID, subject, role string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, subject, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, subject, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
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
