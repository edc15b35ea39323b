package service

import (
	"strings"
	"time"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"
)

// CardService 会员卡服务
type CardService struct {
	cardRepo repository.CardRepository
}

// NewCardService 创建会员卡服务
func NewCardService(cardRepo repository.CardRepository) *CardService {
	return &CardService{cardRepo: cardRepo}
}

// CardStatusInfo 卡片状态查询结果
type CardStatusInfo struct {
	Status string       `json:"status"`
	Card   *models.Card `json:"card,omitempty"`
}

// CardHolderInput 激活时提交的持卡人资料
type CardHolderInput struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
	Age     int    `json:"age" binding:"required"`
	Gender  string `json:"gender" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
}

// Status 查询卡片状态
// 不存在、已预注册未激活、已激活三种状态；预注册卡不回传持卡人字段。
func (s *CardService) Status(cardNo string) (*CardStatusInfo, error) {
	card, err := s.getCard(cardNo)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return &CardStatusInfo{Status: constants.CardStatusNotFound}, nil
	}
	if !card.IsActive() {
		return &CardStatusInfo{Status: constants.CardStatusPreRegistered}, nil
	}
	return &CardStatusInfo{Status: constants.CardStatusActive, Card: card}, nil
}

// Get 获取已激活的卡片
func (s *CardService) Get(cardNo string) (*models.Card, error) {
	card, err := s.getCard(cardNo)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// Activate 激活卡片并绑定持卡人资料
// 仅允许预注册卡激活一次，已激活的卡拒绝覆盖。
func (s *CardService) Activate(cardNo string, input CardHolderInput) (*models.Card, error) {
	if err := validateHolderInput(&input); err != nil {
		return nil, err
	}

	card, err := s.getCard(cardNo)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	if card.IsActive() {
		return nil, ErrCardAlreadyActive
	}

	now := time.Now()
	card.Name = input.Name
	card.Surname = input.Surname
	card.Age = input.Age
	card.Gender = input.Gender
	card.Email = input.Email
	card.Phone = input.Phone
	card.ActivatedAt = &now

	if err := s.cardRepo.Upsert(card); err != nil {
		return nil, err
	}

	logger.Infow("card_activated",
		"card_no", card.CardNo,
		"age", card.Age,
		"gender", card.Gender,
	)
	return card, nil
}

// List 管理端分页查询卡片
func (s *CardService) List(filter repository.CardListFilter) ([]models.Card, int64, error) {
	return s.cardRepo.List(filter)
}

func (s *CardService) getCard(cardNo string) (*models.Card, error) {
	trimmed := strings.TrimSpace(cardNo)
	if trimmed == "" {
		return nil, ErrCardInvalid
	}
	return s.cardRepo.GetByCardNo(trimmed)
}

func validateHolderInput(input *CardHolderInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Surname = strings.TrimSpace(input.Surname)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Name == "" || input.Surname == "" || input.Email == "" {
		return ErrCardInvalid
	}
	if input.Age < 1 || input.Age > 120 {
		return ErrCardInvalid
	}
	if !constants.ValidGender(input.Gender) {
		return ErrCardInvalid
	}
	return nil
}
