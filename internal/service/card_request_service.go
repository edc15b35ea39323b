package service

import (
	"strings"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"

	"github.com/google/uuid"
)

// CardRequestService 领卡申请服务
// 用户在线提交资料，实体卡线下发放后由管理员标记处理。
type CardRequestService struct {
	requestRepo repository.CardRequestRepository
}

// NewCardRequestService 创建领卡申请服务
func NewCardRequestService(requestRepo repository.CardRequestRepository) *CardRequestService {
	return &CardRequestService{requestRepo: requestRepo}
}

// CardRequestInput 领卡申请载荷
type CardRequestInput struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
	Age     int    `json:"age" binding:"required"`
	Gender  string `json:"gender" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
}

// Submit 提交领卡申请
func (s *CardRequestService) Submit(input CardRequestInput) (*models.CardRequest, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Surname = strings.TrimSpace(input.Surname)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Name == "" || input.Surname == "" || input.Email == "" {
		return nil, ErrRequestInvalid
	}
	if input.Age < 1 || input.Age > 120 {
		return nil, ErrRequestInvalid
	}
	if !constants.ValidGender(input.Gender) {
		return nil, ErrRequestInvalid
	}

	request := &models.CardRequest{
		RequestNo: "REQ-" + uuid.NewString(),
		Name:      input.Name,
		Surname:   input.Surname,
		Age:       input.Age,
		Gender:    input.Gender,
		Email:     input.Email,
		Phone:     input.Phone,
		Status:    constants.CardRequestStatusPending,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}

	logger.Infow("card_request_submitted",
		"request_no", request.RequestNo,
		"email", request.Email,
	)
	return request, nil
}

// MarkHandled 标记申请已处理
func (s *CardRequestService) MarkHandled(id uint) (*models.CardRequest, error) {
	request, err := s.requestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	request.Status = constants.CardRequestStatusHandled
	if err := s.requestRepo.Update(request); err != nil {
		return nil, err
	}
	logger.Infow("card_request_handled", "request_no", request.RequestNo)
	return request, nil
}

// List 分页查询申请
func (s *CardRequestService) List(filter repository.CardRequestListFilter) ([]models.CardRequest, int64, error) {
	return s.requestRepo.List(filter)
}
