package service

import (
	"fmt"
	"strings"

	"github.com/schoolbreak-next/internal/config"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"
)

const maxCardBatchSize = 5000

// CardBatchService 批量制卡服务
// 按前缀续接已有最大序号生成连续卡号，供印卡厂批量制作二维码卡片。
type CardBatchService struct {
	cfg      *config.Config
	cardRepo repository.CardRepository
}

// NewCardBatchService 创建批量制卡服务
func NewCardBatchService(cfg *config.Config, cardRepo repository.CardRepository) *CardBatchService {
	return &CardBatchService{
		cfg:      cfg,
		cardRepo: cardRepo,
	}
}

// GeneratedCard 批量生成结果项
type GeneratedCard struct {
	CardNo        string `json:"card_no"`
	ActivationURL string `json:"activation_url"`
}

// Generate 批量预注册卡片
// batchTag 写入每张卡便于追溯批次；返回卡号与激活链接清单。
func (s *CardBatchService) Generate(count int, batchTag string) ([]GeneratedCard, error) {
	if count < 1 || count > maxCardBatchSize {
		return nil, ErrCardInvalid
	}
	batchTag = strings.TrimSpace(batchTag)

	prefix := s.cardPrefix()
	maxSeq, err := s.cardRepo.MaxSequence(prefix)
	if err != nil {
		return nil, err
	}

	cards := make([]models.Card, 0, count)
	result := make([]GeneratedCard, 0, count)
	for i := 1; i <= count; i++ {
		cardNo := s.formatCardNo(prefix, maxSeq+i)
		cards = append(cards, models.Card{
			CardNo:   cardNo,
			BatchTag: batchTag,
		})
		result = append(result, GeneratedCard{
			CardNo:        cardNo,
			ActivationURL: s.ActivationURL(cardNo),
		})
	}

	if err := s.cardRepo.CreateBatch(cards); err != nil {
		return nil, err
	}

	logger.Infow("card_batch_generated",
		"count", count,
		"batch_tag", batchTag,
		"first_card_no", result[0].CardNo,
		"last_card_no", result[len(result)-1].CardNo,
	)
	return result, nil
}

// ActivationURL 构造卡片激活链接（二维码内容）
// 未配置激活链接前缀时回退为裸卡号。
func (s *CardBatchService) ActivationURL(cardNo string) string {
	base := strings.TrimSpace(s.cfg.Card.ActivationBaseURL)
	if base == "" {
		return cardNo
	}
	return strings.TrimRight(base, "/") + "/" + cardNo
}

func (s *CardBatchService) cardPrefix() string {
	prefix := strings.TrimSpace(s.cfg.Card.Prefix)
	if prefix == "" {
		prefix = "SB-"
	}
	return prefix
}

func (s *CardBatchService) formatCardNo(prefix string, seq int) string {
	digits := s.cfg.Card.SequenceDigits
	if digits < 1 {
		digits = 4
	}
	return fmt.Sprintf("%s%0*d", prefix, digits, seq)
}
