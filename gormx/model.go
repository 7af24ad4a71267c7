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
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/vogo/pixellink/cores"
)

var (
	linkTableName    = "short_links"
	counterTableName = "short_link_counters"
)

func SetLinkTableName(name string) {
	linkTableName = name
}

func SetCounterTableName(name string) {
	counterTableName = name
}

// LinkModel is the GORM model for short links
type LinkModel struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement:false" comment:"allocated id"`
	Code        string    `json:"code" gorm:"uniqueIndex;size:16" comment:"short code"`
	OriginalURL string    `json:"original_url" gorm:"column:original_url;size:2048" comment:"original url"`
	URLHash     string    `json:"url_hash" gorm:"column:url_hash;uniqueIndex;size:64" comment:"sha256 of original url"`
	Clicks      int64     `json:"clicks" gorm:"not null;default:0" comment:"redirect count"`
	CreateTime  time.Time `json:"create_time" gorm:"column:create_time;index" comment:"create time"`
}

// TableName returns the table name for the LinkModel
func (LinkModel) TableName() string {
	return linkTableName
}

// CounterModel is the GORM model for named id counters
type CounterModel struct {
	Name  string `json:"name" gorm:"primaryKey;size:64" comment:"counter name"`
	Value int64  `json:"value" gorm:"column:value;not null;default:0" comment:"last allocated value"`
}

// TableName returns the table name for the CounterModel
func (CounterModel) TableName() string {
	return counterTableName
}

// HashURL returns the unique key of an original url
func HashURL(originalURL string) string {
	sum := sha256.Sum256([]byte(originalURL))
	return hex.EncodeToString(sum[:])
}

// ToCore converts a LinkModel to a cores.Link
func (m *LinkModel) ToCore() *cores.Link {
	return &cores.Link{
		ID:          m.ID,
		Code:        m.Code,
		OriginalURL: m.OriginalURL,
		Clicks:      m.Clicks,
		CreateTime:  m.CreateTime,
	}
}

// FromCore converts a cores.Link to a LinkModel
func FromCore(link *cores.Link) *LinkModel {
	return &LinkModel{
		ID:          link.ID,
		Code:        link.Code,
		OriginalURL: link.OriginalURL,
		URLHash:     HashURL(link.OriginalURL),
		Clicks:      link.Clicks,
		CreateTime:  link.CreateTime,
	}
}
