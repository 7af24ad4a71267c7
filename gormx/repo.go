/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gormx

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/vogo/pixellink/cores"
	"gorm.io/gorm"
)

// mysql error number of a unique key violation
const mysqlDuplicateEntry = 1062

// GormLinkRepository implements cores.LinkRepository interface with GORM
type GormLinkRepository struct {
	db *gorm.DB
}

// NewGormLinkRepository creates a new GormLinkRepository
func NewGormLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{
		db: db,
	}
}

// Create implements cores.LinkRepository.Create
func (r *GormLinkRepository) Create(ctx context.Context, link *cores.Link) error {
	model := FromCore(link)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return fmt.Errorf("%w: %w", cores.ErrDuplicateURL, result.Error)
		}
		return result.Error
	}

	return nil
}

// GetByCode implements cores.LinkRepository.GetByCode
func (r *GormLinkRepository) GetByCode(ctx context.Context, code string) (*cores.Link, error) {
	var model LinkModel
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cores.ErrLinkNotFound
		}
		return nil, result.Error
	}

	return model.ToCore(), nil
}

// GetByOriginalURL implements cores.LinkRepository.GetByOriginalURL
func (r *GormLinkRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*cores.Link, error) {
	var model LinkModel
	result := r.db.WithContext(ctx).Where("url_hash = ?", HashURL(originalURL)).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cores.ErrLinkNotFound
		}
		return nil, result.Error
	}

	return model.ToCore(), nil
}

// IncrClicks implements cores.LinkRepository.IncrClicks
func (r *GormLinkRepository) IncrClicks(ctx context.Context, code string, delta int64) error {
	result := r.db.WithContext(ctx).Model(&LinkModel{}).
		Where("code = ?", code).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return cores.ErrLinkNotFound
	}

	return nil
}

// List implements cores.LinkRepository.List
func (r *GormLinkRepository) List(ctx context.Context) ([]*cores.Link, error) {
	var models []LinkModel
	result := r.db.WithContext(ctx).Order("create_time DESC, id DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	links := make([]*cores.Link, 0, len(models))
	for i := range models {
		links = append(links, models[i].ToCore())
	}

	return links, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
