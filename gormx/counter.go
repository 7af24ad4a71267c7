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
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultCounterName = "url_counter"

// GormIDCounter implements cores.IDCounter with a counter row.
// The UPDATE holds the row lock until commit, so concurrent callers never see the same value.
type GormIDCounter struct {
	db   *gorm.DB
	name string
}

// NewGormIDCounter creates a new GormIDCounter on the named row
func NewGormIDCounter(db *gorm.DB, name string) *GormIDCounter {
	if name == "" {
		name = DefaultCounterName
	}

	return &GormIDCounter{
		db:   db,
		name: name,
	}
}

// Incr implements cores.IDCounter.Incr
func (c *GormIDCounter) Incr(ctx context.Context) (int64, error) {
	var value int64

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CounterModel{}).
			Where("name = ?", c.name).
			UpdateColumn("value", gorm.Expr("value + ?", 1))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("counter %s not initialized", c.name)
		}

		var model CounterModel
		if err := tx.Where("name = ?", c.name).First(&model).Error; err != nil {
			return err
		}

		value = model.Value
		return nil
	})
	if err != nil {
		return 0, err
	}

	return value, nil
}

// Migrate creates the tables and seeds the counter row if missing
func Migrate(ctx context.Context, db *gorm.DB, counterName string) error {
	if counterName == "" {
		counterName = DefaultCounterName
	}

	if err := db.WithContext(ctx).AutoMigrate(&LinkModel{}, &CounterModel{}); err != nil {
		return err
	}

	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&CounterModel{Name: counterName}).Error
}
