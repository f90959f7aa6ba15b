package models

import (
	"context"
	"errors"
	"time"

	"github.com/bokfora/ledger_backend/config"
	"github.com/bokfora/ledger_backend/utils"
	"github.com/google/uuid"
)

// Workspace is the tenant boundary. Every ledger row carries its id.
type Workspace struct {
	Id           string       `gorm:"primaryKey;size:36" json:"id"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	BusinessType BusinessType `gorm:"size:50;not null" json:"businessType"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type NewWorkspace struct {
	Name         string `json:"name" validate:"required,max=255"`
	BusinessType string `json:"businessType" validate:"required"`
}

func CreateWorkspace(ctx context.Context, input NewWorkspace) (*Workspace, error) {
	if validationErrors := utils.ValidateInput(input); validationErrors != nil {
		return nil, errors.New("invalid workspace input")
	}
	businessType := BusinessType(input.BusinessType)
	if businessType != BusinessTypeSoleProprietorship && businessType != BusinessTypeLimitedCompany {
		return nil, errors.New("invalid business type")
	}

	db := config.GetDB()
	workspace := Workspace{
		Id:           uuid.NewString(),
		Name:         input.Name,
		BusinessType: businessType,
	}
	if err := db.WithContext(ctx).Create(&workspace).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// GetWorkspace resolves the workspace from ctx, redis-cached.
func GetWorkspace(ctx context.Context) (*Workspace, error) {
	workspaceId, ok := utils.GetWorkspaceIdFromContext(ctx)
	if !ok {
		return nil, errors.New("workspaceId not found in context")
	}

	var workspace Workspace
	cacheKey := "Workspace:" + workspaceId
	exists, err := config.GetRedisObject(cacheKey, &workspace)
	if err != nil {
		return nil, err
	}
	if !exists {
		db := config.GetDB()
		if err := db.WithContext(ctx).First(&workspace, "id = ?", workspaceId).Error; err != nil {
			return nil, notFound("workspace not found")
		}
		if err := config.SetRedisObject(cacheKey, &workspace, time.Hour); err != nil {
			return nil, err
		}
	}
	return &workspace, nil
}
