package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentStatus tracks where a document is in the processing pipeline.
type DocumentStatus string

const (
	// DocumentPending indicates a freshly registered document with no processing applied.
	DocumentPending DocumentStatus = "pending"
	// DocumentTextExtracted indicates text extraction has completed.
	DocumentTextExtracted DocumentStatus = "text_extracted"
	// DocumentFailed indicates text extraction failed for the document.
	DocumentFailed DocumentStatus = "failed"
)

// JobKind identifies the processing stage a job dispatches to.
// The string values are a stable contract with job producers.
type JobKind string

const (
	JobExtractText     JobKind = "extract_text"
	JobDetectRedaction JobKind = "detect_redaction"
	JobNER             JobKind = "ner"
	JobEmbed           JobKind = "embed"
)

// JobStatus tracks the lifecycle of a processing job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Document represents a single ingested document and its derived artifacts.
// Created on ingestion; mutated exclusively by pipeline stages.
type Document struct {
	Id              ID
	Source          string // archive the document came from (doj, court, fbi, ...)
	SourcePath      string // path resolvable against the artifact store
	Filename        string
	DocType         string // pdf, image, text, ...
	PageCount       int
	ExtractedText   string // empty until the extract_text stage runs
	RedactionScore  float64
	RedactionDetail RedactionDetail
	NeedsOCR        bool // set when extracted text density is too low for the page count
	Status          DocumentStatus
	Metadata        map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProcessingJob is one unit of pipeline work bound to one document and one stage.
// A job is claimed by exactly one worker and never re-queued automatically.
type ProcessingJob struct {
	Id          ID
	DocumentId  ID
	Kind        JobKind
	Status      JobStatus
	Priority    int    // lower value = claimed earlier
	Error       string // truncated failure message, empty unless Status is failed
	CreatedAt   time.Time
	StartedAt   time.Time // zero until claimed
	CompletedAt time.Time // zero until terminal
}

// Entity represents a canonical named entity shared across the corpus.
// Exactly one Entity exists per (Canonical, Type) pair.
type Entity struct {
	Id           ID
	Name         string
	Canonical    string
	Type         string // person, org, gpe, fac, norp, event, date
	Aliases      []string
	MentionCount int // running total across all extraction runs, never decreases
	Metadata     map[string]string
	CreatedAt    time.Time
}

// Tuple returns a string representation of the entity as "(Type,Canonical)".
// This is used for generating deterministic IDs.
func (e *Entity) Tuple() string {
	return "(" + e.Type + "," + e.Canonical + ")"
}

// EntityMention records a single occurrence of an entity in a document.
// Mentions are append-only and never updated.
type EntityMention struct {
	Id         ID
	EntityId   ID
	DocumentId ID
	CharOffset int    // rune offset into the document's extracted text
	Context    string // surrounding text window
	Confidence float64
}

// Embedding is one embedded chunk of a document's extracted text.
// Regenerating a document's embeddings replaces all of its rows.
type Embedding struct {
	Id         ID
	DocumentId ID
	ChunkIndex int // 0-based, contiguous within a document
	ChunkText  string
	Vector     []float32
}

// ChunkMatch represents a similarity search hit with the stored chunk and score.
type ChunkMatch struct {
	Embedding *Embedding
	Score     float32
}

// Rect is a rectangle in PDF page coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PageRedactions summarizes the redaction marks found on one page.
type PageRedactions struct {
	Page           int     // 1-based page number
	Score          float64 // redacted area / page area, rounded
	RedactionCount int
	Rects          []Rect // capped to bound output size
}

// RedactionDetail is the structured result of redaction analysis for a document.
type RedactionDetail struct {
	Score               float64 // total redacted area / total page area
	TotalPages          int
	PagesWithRedactions int
	Pages               []PageRedactions
}
