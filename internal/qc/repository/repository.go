package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	User         *UserRepository
	Panel        *PanelRepository
	FrameCavity  *FrameCavityRepository
	ProductPart  *ProductPartRepository
	CoatingColor *CoatingColorRepository
	Lookup       *LookupRepository
	Inventory    *InventoryRepository
	Product      *ProductRepository
	QCReport     *QCReportRepository
	QCSession    *QCSessionRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Panel:        NewPanelRepository(db),
		FrameCavity:  NewFrameCavityRepository(db),
		ProductPart:  NewProductPartRepository(db),
		CoatingColor: NewCoatingColorRepository(db),
		Lookup:       NewLookupRepository(db),
		Inventory:    NewInventoryRepository(db),
		Product:      NewProductRepository(db),
		QCReport:     NewQCReportRepository(db),
		QCSession:    NewQCSessionRepository(db),
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
