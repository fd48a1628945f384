package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/pkg/jwt"
	"go-jewelry-pos/pkg/validator"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or PIN", apperror.ErrUnauthorized)
	ErrWrongPIN           = fmt.Errorf("%w: current PIN is incorrect", apperror.ErrValidation)
)

// AuthService gates the API with operator PIN logins. A single-shop
// deployment usually has one admin operator; the default credentials
// are seeded at boot and expected to be changed.
type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	ChangePIN(operatorID uuid.UUID, req *ChangePINRequest) error
	ValidateToken(tokenString string) (*model.Operator, error)
	EnsureDefaultOperator() error
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      string `json:"pin" validate:"required"`
}

type ChangePINRequest struct {
	CurrentPIN string `json:"current_pin" validate:"required"`
	NewPIN     string `json:"new_pin" validate:"required"`
}

type LoginResponse struct {
	Token    string         `json:"token"`
	Operator model.Operator `json:"operator"`
}

type authService struct {
	operatorRepo repository.OperatorRepository
	log          logger.Logger
}

func NewAuthService(operatorRepo repository.OperatorRepository, log logger.Logger) AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		log:          log,
	}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validationf("field '%s' failed on '%s'", errs[0].FailedField, errs[0].Tag)
	}

	// 1. Find the operator. The same error for unknown username and
	// wrong PIN, so logins cannot probe for usernames.
	operator, err := s.operatorRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.Persistence(err)
	}

	// 2. Verify the PIN.
	if !operator.CheckPIN(req.PIN) {
		return nil, ErrInvalidCredentials
	}

	// 3. Issue the token.
	token, err := jwt.GenerateToken(operator.ID, operator.Username, operator.Role)
	if err != nil {
		return nil, apperror.Unauthorizedf("failed to generate token")
	}

	s.log.Infof("operator %s logged in", operator.Username)
	return &LoginResponse{Token: token, Operator: *operator}, nil
}

func (s *authService) ChangePIN(operatorID uuid.UUID, req *ChangePINRequest) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validationf("field '%s' failed on '%s'", errs[0].FailedField, errs[0].Tag)
	}

	operator, err := s.operatorRepo.FindByID(operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("operator %s not found", operatorID)
		}
		return apperror.Persistence(err)
	}

	// 1. The current PIN must match before anything changes.
	if !operator.CheckPIN(req.CurrentPIN) {
		return ErrWrongPIN
	}

	// 2. Enforce the PIN shape, then hash and store.
	if !model.ValidPIN(req.NewPIN) {
		return apperror.Validationf("PIN must be 4-10 letters or digits")
	}
	if err := operator.SetPIN(req.NewPIN); err != nil {
		return apperror.Persistence(err)
	}
	if err := s.operatorRepo.Update(operator); err != nil {
		return apperror.Persistence(err)
	}

	s.log.Infof("operator %s changed PIN", operator.Username)
	return nil
}

func (s *authService) ValidateToken(tokenString string) (*model.Operator, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnauthorized, err)
	}
	operator, err := s.operatorRepo.FindByID(claims.OperatorID)
	if err != nil {
		// A token for a removed operator is as good as no token.
		return nil, apperror.Unauthorizedf("operator no longer exists")
	}
	return operator, nil
}

// EnsureDefaultOperator seeds admin/0000 on an empty operators table so
// a fresh install can log in.
func (s *authService) EnsureDefaultOperator() error {
	count, err := s.operatorRepo.Count()
	if err != nil {
		return apperror.Persistence(err)
	}
	if count > 0 {
		return nil
	}
	operator := &model.Operator{Username: "admin", Role: "admin"}
	if err := operator.SetPIN("0000"); err != nil {
		return apperror.Persistence(err)
	}
	if err := s.operatorRepo.Create(operator); err != nil {
		return apperror.Persistence(err)
	}
	s.log.Infof("seeded default operator admin/0000, change the PIN")
	return nil
}
