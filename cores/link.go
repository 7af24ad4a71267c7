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

package cores

import "time"

// Link is the durable record mapping a short code to its original url.
type Link struct {
	ID          int64     `json:"-" comment:"allocated numeric id"`
	Code        string    `json:"shortCode" comment:"base62 of ID"`
	OriginalURL string    `json:"originalUrl" comment:"original link"`
	Clicks      int64     `json:"clicks" comment:"redirect count"`
	CreateTime  time.Time `json:"createdAt" comment:"create time"`
}

// LinkList is the listing projection over all stored links.
type LinkList struct {
	Links       []*Link `json:"urls"`
	TotalLinks  int     `json:"totalLinks"`
	TotalClicks int64   `json:"totalClicks"`
}

func NewLinkList(links []*Link) *LinkList {
	if links == nil {
		links = []*Link{}
	}

	list := &LinkList{
		Links:      links,
		TotalLinks: len(links),
	}

	for _, link := range links {
		list.TotalClicks += link.Clicks
	}

	return list
}
