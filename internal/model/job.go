// internal/model/job.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a print job
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusSuccess    JobStatus = "SUCCESS"
	JobStatusFailed     JobStatus = "FAILED"
)

// Directive operations accepted in a PrintRequest
const (
	OpInit                 = "init"
	OpText                 = "text"
	OpRaw                  = "raw"
	OpCRLF                 = "crlf"
	OpBold                 = "bold"
	OpItalic               = "italic"
	OpDoubleStrike         = "double_strike"
	OpCondensed            = "condensed"
	OpProportional         = "proportional"
	OpUnderline            = "underline"
	OpDraft                = "draft"
	OpCharacterWidth       = "character_width"
	OpTypeface             = "typeface"
	OpMargin               = "margin"
	OpPageLength           = "page_length"
	OpExtraSpace           = "extra_space"
	OpDoubleWidth          = "double_width"
	OpDoubleHeight         = "double_height"
	OpJustify              = "justify"
	OpLineSpacing          = "line_spacing"
	OpInternationalCharset = "international_charset"
	OpFormFeed             = "form_feed"
)

// PrintRequest is a job expressed as an ordered list of builder directives
type PrintRequest struct {
	Pins       int         `json:"pins" binding:"required,oneof=9 24 48"`
	CodePage   string      `json:"code_page,omitempty"`
	Directives []Directive `json:"directives" binding:"required,min=1,dive"`
}

// Directive is one builder call. Only the fields its Op reads are used.
type Directive struct {
	Op          string `json:"op" binding:"required"`
	Text        string `json:"text,omitempty"`
	Raw         string `json:"raw,omitempty"` // hex encoded
	Enabled     *bool  `json:"enabled,omitempty"`
	Value       *int   `json:"value,omitempty"`
	Count       *int   `json:"count,omitempty"`
	Side        string `json:"side,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Face        string `json:"face,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Numerator   int    `json:"numerator,omitempty"`
	Denominator int    `json:"denominator,omitempty"`
	Charset     string `json:"charset,omitempty"`
}

// IsOn returns the directive's enabled flag, true when omitted
func (d *Directive) IsOn() bool {
	return d.Enabled == nil || *d.Enabled
}

// TransportResult reports the delivery of a job to one transport
type TransportResult struct {
	Transport  string `json:"transport"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	DurationMs int    `json:"duration_ms"`
}

// PrintJob represents a print job and its delivery outcome
type PrintJob struct {
	ID           uuid.UUID         `json:"id"`
	Pins         int               `json:"pins"`
	Variant      string            `json:"variant"`
	Bytes        int               `json:"bytes"`
	Status       JobStatus         `json:"status"`
	Results      []TransportResult `json:"results,omitempty"`
	StartedAt    time.Time         `json:"started_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	DurationMs   *int              `json:"duration_ms,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}

// IsCompleted checks if the job is completed (success or failed)
func (j *PrintJob) IsCompleted() bool {
	return j.Status == JobStatusSuccess || j.Status == JobStatusFailed
}

// Complete stamps the job with its final status
func (j *PrintJob) Complete(err error) {
	now := time.Now()
	duration := int(now.Sub(j.StartedAt).Milliseconds())
	j.CompletedAt = &now
	j.DurationMs = &duration

	if err != nil {
		msg := err.Error()
		j.ErrorMessage = &msg
		j.Status = JobStatusFailed
		return
	}
	j.Status = JobStatusSuccess
}

// PreviewResponse is the encoded form of a job that was built but not sent
type PreviewResponse struct {
	Pins    int    `json:"pins"`
	Variant string `json:"variant"`
	Bytes   int    `json:"bytes"`
	Hex     string `json:"hex"`
	Dump    string `json:"dump"`
}

// VariantInfo describes the directives a printer family accepts
type VariantInfo struct {
	Pins       int      `json:"pins"`
	Variant    string   `json:"variant"`
	Commands   []string `json:"commands"`
	Typefaces  []string `json:"typefaces"`
	CodePages  []string `json:"code_pages"`
	Charsets   []string `json:"international_charsets"`
	LineSpaces []string `json:"line_spacing_units"`
}
