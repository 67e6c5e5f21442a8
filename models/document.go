// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

// Package models contains the example model wired with validators. It doubles
// as the shared fixture for this module's own tests and as living
// documentation of the declaration pattern.
package models

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/askarin/go-model-validation/store"
	"github.com/askarin/go-model-validation/validation"
)

// Document is a stored text document with derived validity caches.
type Document struct {
	validation.CacheState

	// ID is the internal unique identifier of the document.
	ID uuid.UUID

	// Title is the display title. Required.
	Title string

	// Body is the document text.
	Body string

	// WordCount is the denormalized word count of Body, maintained by the
	// writer. The word_count_matches validator guards it against drift.
	WordCount int

	// Published marks the document as publicly visible.
	Published bool
}

// TableName returns the name of the database table associated with the
// Document model.
func (d *Document) TableName() string {
	return "documents"
}

// CleanFields is the built-in field validation run ahead of custom
// validators.
func (d *Document) CleanFields(ctx context.Context) error {
	verr := &validation.Error{}
	if d.Title == "" {
		verr.Add("title", "Title must not be empty.")
	}
	if d.WordCount < 0 {
		verr.Add("word_count", "Word count must not be negative.")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// NewHasBodyValidator reports whether the document has any text at all.
// Plain (uncached) and part of the default sweep.
func NewHasBodyValidator() *validation.Validator[*Document] {
	return validation.New[*Document]("has_body",
		func(ctx context.Context, d *Document) any {
			return strings.TrimSpace(d.Body) != ""
		})
}

// NewWordCountValidator checks the denormalized word count against the body.
// Cached: the count only changes when the body does, so stored results stay
// meaningful between writes.
func NewWordCountValidator() *validation.Validator[*Document] {
	return validation.New[*Document]("word_count_matches",
		func(ctx context.Context, d *Document) any {
			return d.WordCount == len(strings.Fields(d.Body))
		},
		validation.WithCache())
}

// NewPublishableValidator checks that a published document is complete
// enough to show publicly. Cached and read from the cache by default;
// excluded from auto sweeps because it is only relevant at publish time.
func NewPublishableValidator() *validation.Validator[*Document] {
	return validation.New[*Document]("publishable",
		func(ctx context.Context, d *Document) any {
			if !d.Published {
				return true
			}
			var problems []string
			if d.Title == "" {
				problems = append(problems, "A published document needs a title.")
			}
			if d.Body == "" {
				problems = append(problems, "A published document needs a body.")
			}
			return problems
		},
		validation.WithoutAuto(),
		validation.WithCache(),
		validation.WithAutoUseCache(true))
}

// NewDocumentValidators registers a fresh set of document validators.
// Validators are single-bind values, so every registration works on its own
// instances.
func NewDocumentValidators(cfg validation.ModelConfig[*Document]) (*validation.ModelValidators[*Document], error) {
	return validation.NewModelValidators(cfg,
		NewHasBodyValidator(),
		NewWordCountValidator(),
		NewPublishableValidator(),
	)
}

// DocumentColumns lists the columns DocumentTable selects, cache columns
// included, in scan order.
var DocumentColumns = []string{
	"id",
	"title",
	"body",
	"word_count",
	"published",
	"is_word_count_matches_successful",
	"is_publishable_successful",
}

// ScanDocument reads the current row into a Document, restoring cache
// values into its CacheState.
func ScanDocument(rows *sql.Rows) (*Document, error) {
	var (
		d           Document
		wordCountOK sql.NullBool
		publishOK   sql.NullBool
	)
	if err := rows.Scan(&d.ID, &d.Title, &d.Body, &d.WordCount, &d.Published, &wordCountOK, &publishOK); err != nil {
		return nil, err
	}

	if wordCountOK.Valid {
		d.SetValidatorCache("is_word_count_matches_successful", &wordCountOK.Bool)
	}
	if publishOK.Valid {
		d.SetValidatorCache("is_publishable_successful", &publishOK.Bool)
	}

	return &d, nil
}

// NewDocumentTable constructs the documents table gateway over db.
func NewDocumentTable(db *store.DB) (*store.Table[*Document], error) {
	return store.NewTable(db, store.TableConfig[*Document]{
		Columns:  DocumentColumns,
		PKColumn: "id",
		PK:       func(d *Document) any { return d.ID },
		Scan:     ScanDocument,
	})
}
