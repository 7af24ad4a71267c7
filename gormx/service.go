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
	"github.com/vogo/pixellink/cores"
	"gorm.io/gorm"
)

// GormLinkService is a LinkService keeping records in a GORM database
type GormLinkService struct {
	*cores.LinkService
	db *gorm.DB
}

// NewGormLinkService creates a new GormLinkService.
// A nil counter allocates ids from the database counter row.
func NewGormLinkService(db *gorm.DB, cache cores.LinkCache, counter cores.IDCounter, opts ...cores.ServiceOption) *GormLinkService {
	// Create GORM repository
	repo := NewGormLinkRepository(db)

	if counter == nil {
		counter = NewGormIDCounter(db, DefaultCounterName)
	}

	return &GormLinkService{
		LinkService: cores.NewLinkService(repo, cache, counter, opts...),
		db:          db,
	}
}
