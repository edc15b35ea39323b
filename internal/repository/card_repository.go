package repository

import (
	"errors"
	"strings"

	"github.com/schoolbreak-next/internal/models"

	"gorm.io/gorm"
)

// CardRepository 会员卡数据访问接口
type CardRepository interface {
	GetByCardNo(cardNo string) (*models.Card, error)
	Create(card *models.Card) error
	CreateBatch(cards []models.Card) error
	Update(card *models.Card) error
	Upsert(card *models.Card) error
	MaxSequence(prefix string) (int, error)
	List(filter CardListFilter) ([]models.Card, int64, error)
}

// GormCardRepository GORM 实现
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository 创建会员卡仓库
func NewCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// GetByCardNo 根据卡号获取卡片
func (r *GormCardRepository) GetByCardNo(cardNo string) (*models.Card, error) {
	var card models.Card
	if err := r.db.Where("card_no = ?", cardNo).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// Create 创建卡片
func (r *GormCardRepository) Create(card *models.Card) error {
	return r.db.Create(card).Error
}

// CreateBatch 批量创建卡片
func (r *GormCardRepository) CreateBatch(cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	return r.db.Create(&cards).Error
}

// Update 更新卡片
func (r *GormCardRepository) Update(card *models.Card) error {
	return r.db.Save(card).Error
}

// Upsert 按卡号插入或更新
// 激活路径使用：事务内读到已有行则保留主键与创建时间后覆盖写入，
// 卡不存在时直接插入；并发插入同一卡号由卡号唯一索引裁决，
// 落败方收到约束冲突错误。
func (r *GormCardRepository) Upsert(card *models.Card) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Card
		err := tx.Where("card_no = ?", card.CardNo).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(card).Error
		}
		if err != nil {
			return err
		}
		card.ID = existing.ID
		card.CreatedAt = existing.CreatedAt
		return tx.Save(card).Error
	})
}

// MaxSequence 获取指定前缀下已分配的最大序号
// 卡号形如 SB-0042，序号取连字符后的数字部分。
func (r *GormCardRepository) MaxSequence(prefix string) (int, error) {
	var cardNos []string
	if err := r.db.Model(&models.Card{}).
		Where("card_no LIKE ?", prefix+"%").
		Pluck("card_no", &cardNos).Error; err != nil {
		return 0, err
	}
	max := 0
	for _, cardNo := range cardNos {
		seq := parseCardSequence(cardNo, prefix)
		if seq > max {
			max = seq
		}
	}
	return max, nil
}

func parseCardSequence(cardNo, prefix string) int {
	raw := strings.TrimPrefix(cardNo, prefix)
	seq := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0
		}
		seq = seq*10 + int(r-'0')
	}
	return seq
}

// List 获取卡片列表
func (r *GormCardRepository) List(filter CardListFilter) ([]models.Card, int64, error) {
	cards := make([]models.Card, 0)
	query := r.db.Model(&models.Card{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("card_no LIKE ? OR name LIKE ? OR surname LIKE ? OR email LIKE ?", like, like, like, like)
	}
	if filter.BatchTag != "" {
		query = query.Where("batch_tag = ?", filter.BatchTag)
	}
	if filter.OnlyActive {
		query = query.Where("name <> '' AND surname <> ''")
	}
	if filter.OnlyPreRegistered {
		query = query.Where("name = '' OR surname = ''")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&cards).Error; err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}
