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

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/vogo/vogo/vlog"
)

const (
	msgURLRequired    = "URL is required"
	msgInvalidURL     = "Invalid URL format"
	msgInvalidRequest = "Invalid request body"
	msgNotFound       = "Short URL not found"
	msgServerError    = "Server error"
)

// Shortener is the service surface served over http.
type Shortener interface {
	Shorten(ctx context.Context, originalURL string) (*Link, bool, error)
	Resolve(ctx context.Context, code string) (string, error)
	Stats(ctx context.Context, code string) (*Link, error)
	List(ctx context.Context) (*LinkList, error)
	BaseURL() string
}

// BaseURL is the configured short url prefix, empty when derived from requests.
func (s *LinkService) BaseURL() string {
	return s.baseURL
}

type ShortenRequest struct {
	URL string `json:"url"`
}

type ShortenResponse struct {
	ShortURL  string `json:"shortUrl"`
	ShortCode string `json:"shortCode"`
}

type StatsResponse struct {
	OriginalURL string    `json:"originalUrl"`
	ShortCode   string    `json:"shortCode"`
	Clicks      int64     `json:"clicks"`
	CreateTime  time.Time `json:"createdAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter returns the http handler of the shortener api.
func NewRouter(svc Shortener) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, r, http.StatusNotFound, msgNotFound)
	})

	r.Get("/", handleInfo)

	r.Route("/api", func(r chi.Router) {
		r.Post("/shorten", handleShorten(svc))
		r.Get("/stats/{code}", handleStats(svc))
		r.Get("/urls", handleList(svc))
	})

	r.Get("/{code}", handleRedirect(svc))

	return r
}

func handleInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"message": "Pixel Link API is running",
		"endpoints": map[string]string{
			"shorten":  "POST /api/shorten",
			"redirect": "GET /:code",
			"stats":    "GET /api/stats/:code",
			"urls":     "GET /api/urls",
		},
	})
}

func handleShorten(svc Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShortenRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				writeMessage(w, r, http.StatusBadRequest, msgURLRequired)
				return
			}
			writeMessage(w, r, http.StatusBadRequest, msgInvalidRequest)
			return
		}

		if req.URL == "" {
			writeMessage(w, r, http.StatusBadRequest, msgURLRequired)
			return
		}

		link, isNew, err := svc.Shorten(r.Context(), req.URL)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if isNew {
			vlog.Infof("create short link, code:%s, link:%s", link.Code, link.OriginalURL)
			render.Status(r, http.StatusCreated)
		}

		render.JSON(w, r, ShortenResponse{
			ShortURL:  shortURL(svc.BaseURL(), r, link.Code),
			ShortCode: link.Code,
		})
	}
}

func handleRedirect(svc Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := svc.Resolve(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		http.Redirect(w, r, link, http.StatusFound)
	}
}

func handleStats(svc Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := svc.Stats(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		render.JSON(w, r, StatsResponse{
			OriginalURL: link.OriginalURL,
			ShortCode:   link.Code,
			Clicks:      link.Clicks,
			CreateTime:  link.CreateTime,
		})
	}
}

func handleList(svc Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		render.JSON(w, r, list)
	}
}

func shortURL(baseURL string, r *http.Request, code string) string {
	if baseURL != "" {
		return baseURL + "/" + code
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host + "/" + code
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidURL):
		writeMessage(w, r, http.StatusBadRequest, msgInvalidURL)
	case errors.Is(err, ErrLinkNotFound):
		writeMessage(w, r, http.StatusNotFound, msgNotFound)
	default:
		vlog.Errorf("request failed, method:%s, path:%s, err: %v", r.Method, r.URL.Path, err)
		writeMessage(w, r, http.StatusInternalServerError, msgServerError)
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}
