package service

import (
	"context"

	"inkblog/internal/repository"
)

type TablesService interface {
	GetCountTablesDB(ctx context.Context) (int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

// GetCountTablesDB backs the health check; a reachable database reports its
// table count.
func (s *tablesService) GetCountTablesDB(ctx context.Context) (int, error) {
	return s.tablesRepo.CountTablesDB(ctx)
}
