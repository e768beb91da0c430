package service

import (
	"github.com/redis/go-redis/v9"

	"github.com/oleksandr5440/QC-Management/internal/config"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// Services 服务集合
type Services struct {
	Auth   *AuthService
	Panel  *PanelService
	Lookup *LookupService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.User, rdb, cfg),
		Panel:  NewPanelService(repos.Panel),
		Lookup: NewLookupService(repos.Lookup, rdb),
	}
}
