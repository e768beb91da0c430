package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

const (
	lookupCacheKey = "lookups:types"
	lookupCacheTTL = 10 * time.Minute
)

// LookupService 枚举选项集查询。全部类型连同取值一次批量取出并缓存，
// 取代逐类型一次请求的n+1模式。
type LookupService struct {
	repo *repository.LookupRepository
	rdb  *redis.Client
}

func NewLookupService(repo *repository.LookupRepository, rdb *redis.Client) *LookupService {
	return &LookupService{repo: repo, rdb: rdb}
}

// ListTypes 全部类型及其取值，redis缓存
func (s *LookupService) ListTypes(ctx context.Context) ([]entity.LookupType, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, lookupCacheKey).Result(); err == nil {
			var types []entity.LookupType
			if err := json.Unmarshal([]byte(cached), &types); err == nil {
				return types, nil
			}
		}
	}

	types, err := s.repo.ListTypesWithValues(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(types); err == nil {
			s.rdb.Set(ctx, lookupCacheKey, data, lookupCacheTTL)
		}
	}
	return types, nil
}

// GetType 单个类型及其取值
func (s *LookupService) GetType(ctx context.Context, id uint) (*entity.LookupType, error) {
	return s.repo.FindTypeByID(ctx, id)
}
