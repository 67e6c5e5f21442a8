// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

// Package validation turns plain predicate functions into named, cacheable,
// queryable validation units attached to a model type.
//
// Core concepts:
//   - Validator: the registered, type-level representation of one predicate
//     and its configuration (auto participation, cache column, cache
//     read/write policies).
//   - InstanceValidator: a transient binding of a Validator to one model
//     instance, used to evaluate or read/write that instance's cached
//     outcome. Obtained via Validator.For, constructed fresh on each call.
//   - ModelValidators: the per-model-type registration, built once before
//     any instance exists, exposing instance-level operations (run, check,
//     collect results) and class-level ones (bulk cache refresh, cached
//     validity queries).
//   - CacheState: the embeddable per-instance storage for cache columns.
//
// Usage pattern:
//
//	var hasBody = validation.New[*Document]("has_body",
//		func(ctx context.Context, d *Document) any { return d.Body != "" })
//
//	var wordCount = validation.New[*Document]("word_count_matches",
//		func(ctx context.Context, d *Document) any {
//			return d.WordCount == len(strings.Fields(d.Body))
//		},
//		validation.WithCache())
//
//	documents, err := validation.NewModelValidators(
//		validation.ModelConfig[*Document]{Source: table, Saver: save},
//		hasBody, wordCount)
//
// Cached outcomes live in nullable boolean columns, one per cached
// validator: NULL is "not yet computed", true "last computed as valid",
// false "last computed as invalid". The store package supplies the Queryset
// collaborator that runs the condition builders and bulk cache operations
// against a SQL database; the migrations package recomputes caches in bulk
// when validator logic changes.
package validation
