// Package memstore persists the agent's memory document: saved notes
// plus message metrics, stored as a single JSON file.
//
// Durability model:
//   - Save writes the full document to path+".tmp" and renames it over
//     the target, so a reader never observes a half-written file.
//   - Load distinguishes a missing file from a corrupt one; LoadOrInit
//     collapses both to a fresh default document at the process
//     boundary, keeping the distinction observable in logs.
package memstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/petasbytes/nanda-agents/internal/clock"
)

// Note is a single user-saved text snippet. Notes are immutable once
// stored and never expire.
type Note struct {
	Text string `json:"text"`
	TS   string `json:"ts"`
}

// Metrics tracks lifetime message volume for the agent process.
type Metrics struct {
	Messages int64   `json:"messages"`
	StartTS  float64 `json:"start_ts"`
}

// Document is the singleton memory document. Notes keep insertion
// order; nothing in this package reorders or deletes them.
type Document struct {
	Notes   []Note  `json:"notes"`
	Metrics Metrics `json:"metrics"`
}

// New returns an empty document with StartTS stamped from now.
func New(now time.Time) Document {
	return Document{
		Notes:   []Note{},
		Metrics: Metrics{StartTS: float64(now.Unix())},
	}
}

// Load reads the document at path. A missing file returns an error
// wrapping os.ErrNotExist; unreadable JSON returns the parse error.
// Callers that want the swallow-on-load behaviour use LoadOrInit.
func Load(path string) (Document, error) {
	var doc Document
	b, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read memory: %w", err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("parse memory: %w", err)
	}
	if doc.Notes == nil {
		doc.Notes = []Note{}
	}
	return doc, nil
}

// LoadOrInit loads the document at path, substituting a fresh default
// on any failure. A missing file is a fresh install; anything else is
// a corrupt store and worth a warning, though both resolve the same
// way.
func LoadOrInit(path string, clk clock.Clock, logger *zap.Logger) Document {
	doc, err := Load(path)
	if err == nil {
		return doc
	}
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no memory file, starting fresh", zap.String("path", path))
	} else {
		logger.Warn("memory file unreadable, starting fresh",
			zap.String("path", path), zap.Error(err))
	}
	return New(clk.Now())
}

// Save serializes doc and atomically replaces the file at path. A
// failed save leaves any previous file intact.
func Save(path string, doc Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write memory: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace memory: %w", err)
	}
	return nil
}
