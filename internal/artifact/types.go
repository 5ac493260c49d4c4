// Package artifact defines the pipeline's typed, versioned artifacts and the
// store that persists them per project. Every artifact type embeds Header,
// which carries the fields common across all of them; type-specific
// behavior is dispatched with a small type switch at each boundary rather
// than a shared base class, per the pipeline's tagged-variant convention.
package artifact

import "time"

// Status is the approval state every artifact carries.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusUnderReview      Status = "under_review"
	StatusApproved         Status = "approved"
	StatusApprovedWithNotes Status = "approved_with_notes"
	StatusRequiresRevision Status = "requires_revision"
)

// Approved reports whether status permits a downstream stage to consume the
// artifact: gating treats approved_with_notes identically to approved.
func (s Status) Approved() bool {
	return s == StatusApproved || s == StatusApprovedWithNotes
}

// Type names one of the artifact kinds persisted by the Store.
type Type string

const (
	TypeProjectContext       Type = "ProjectContext"
	TypeProblemFraming       Type = "ProblemFraming"
	TypeConceptModel         Type = "ConceptModel"
	TypeResearchQuestionSet  Type = "ResearchQuestionSet"
	TypeSearchConceptBlocks  Type = "SearchConceptBlocks"
	TypeDatabaseQueryPlan    Type = "DatabaseQueryPlan"
	TypeSearchResults        Type = "SearchResults"
	TypeScreeningCriteria    Type = "ScreeningCriteria"
	TypeStrategyExportBundle Type = "StrategyExportBundle"
)

// ModelMetadata is attached to any artifact whose value was produced by a
// generator (the LLM drafter or a deterministic fallback).
type ModelMetadata struct {
	ModelName     string    `json:"model_name"`
	Mode          string    `json:"mode"` // llm, deterministic, hybrid, mock
	PromptVersion string    `json:"prompt_version,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
	Notes         string    `json:"notes,omitempty"`
}

// Header carries the fields shared by every artifact type.
type Header struct {
	ProjectID     string         `json:"project_id"`
	Status        Status         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ModelMetadata *ModelMetadata `json:"model_metadata,omitempty"`
}

// ProjectContext is the root artifact; its ID is the project identifier for
// all downstream artifacts.
type ProjectContext struct {
	Header
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Discipline  string   `json:"discipline,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	UserNotes   string   `json:"user_notes,omitempty"`
}

// ProblemFraming frames the research problem and its scope.
type ProblemFraming struct {
	Header
	ProblemStatement string   `json:"problem_statement"`
	Goals            []string `json:"goals,omitempty"`
	ScopeIn          []string `json:"scope_in,omitempty"`
	ScopeOut         []string `json:"scope_out,omitempty"`
	Stakeholders     []string `json:"stakeholders,omitempty"`
	ResearchGap      string   `json:"research_gap,omitempty"`
	CritiqueReport   string   `json:"critique_report,omitempty"`
}

// ConceptType classifies a Concept in the PICO-derived typology.
type ConceptType string

const (
	ConceptPopulation  ConceptType = "population"
	ConceptIntervention ConceptType = "intervention"
	ConceptComparison  ConceptType = "comparison"
	ConceptOutcome     ConceptType = "outcome"
	ConceptMethod      ConceptType = "method"
	ConceptContext     ConceptType = "context"
	ConceptOther       ConceptType = "other"
)

// Concept is one node of the ConceptModel.
type Concept struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Type        ConceptType `json:"type"`
	Description string      `json:"description,omitempty"`
}

// ConceptRelation links two concepts.
type ConceptRelation struct {
	SourceID     string `json:"source_id"`
	TargetID     string `json:"target_id"`
	RelationType string `json:"relation_type"`
}

// ConceptModel is the set of concepts and their relations derived from the
// problem framing.
type ConceptModel struct {
	Header
	Concepts  []Concept         `json:"concepts"`
	Relations []ConceptRelation `json:"relations,omitempty"`
}

// ConceptByID returns the concept with the given id, if present.
func (m *ConceptModel) ConceptByID(id string) (Concept, bool) {
	for _, c := range m.Concepts {
		if c.ID == id {
			return c, true
		}
	}
	return Concept{}, false
}

// QuestionType classifies a ResearchQuestion.
type QuestionType string

const (
	QuestionDescriptive QuestionType = "descriptive"
	QuestionExplanatory QuestionType = "explanatory"
	QuestionEvaluative  QuestionType = "evaluative"
	QuestionDesign      QuestionType = "design"
	QuestionPredictive  QuestionType = "predictive"
)

// QuestionPriority ranks a ResearchQuestion's importance.
type QuestionPriority string

const (
	PriorityMust QuestionPriority = "must"
	PriorityNice QuestionPriority = "nice"
)

// ResearchQuestion is one entry of a ResearchQuestionSet.
type ResearchQuestion struct {
	ID                string           `json:"id"`
	Text              string           `json:"text"`
	Type              QuestionType     `json:"type"`
	LinkedConceptIDs  []string         `json:"linked_concept_ids,omitempty"`
	Priority          QuestionPriority `json:"priority,omitempty"`
	MethodologicalLens string          `json:"methodological_lens,omitempty"`
}

// ResearchQuestionSet holds the research questions derived for a project.
type ResearchQuestionSet struct {
	Header
	Questions []ResearchQuestion `json:"questions"`
}

// SearchConceptBlock groups synonymous/related terms into a single
// OR-group for query synthesis.
type SearchConceptBlock struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Description    string   `json:"description,omitempty"`
	TermsIncluded  []string `json:"terms_included"`
	TermsExcluded  []string `json:"terms_excluded,omitempty"`
}

// SearchConceptBlocks is the set of blocks used to build database query
// plans.
type SearchConceptBlocks struct {
	Header
	Blocks []SearchConceptBlock `json:"blocks"`
}

// ComplexityAnalysis is the Complexity Analyzer's output attached to a
// query plan entry.
type ComplexityAnalysis struct {
	Level          string   `json:"level"`
	TotalTerms     int      `json:"total_terms"`
	NumBlocks      int      `json:"num_blocks"`
	ExpectedResults string  `json:"expected_results"`
	Guidance       string   `json:"guidance"`
	Warnings       []string `json:"warnings,omitempty"`
}

// DatabaseQuery is one compiled Boolean query for a specific database.
type DatabaseQuery struct {
	ID                  string              `json:"id"`
	DatabaseName        string              `json:"database_name"`
	QueryBlocks         []string            `json:"query_blocks"`
	BooleanQueryString  string              `json:"boolean_query_string"`
	Notes               string              `json:"notes,omitempty"`
	HitCountEstimate    *int                `json:"hit_count_estimate,omitempty"`
	ComplexityAnalysis  ComplexityAnalysis  `json:"complexity_analysis"`
}

// DatabaseQueryPlan is the set of compiled per-database queries for a
// project.
type DatabaseQueryPlan struct {
	Header
	Queries []DatabaseQuery `json:"queries"`
}

// DeduplicationStats summarizes a deduplication pass.
type DeduplicationStats struct {
	OriginalCount     int     `json:"original_count"`
	DuplicatesRemoved int     `json:"duplicates_removed"`
	Rate              float64 `json:"rate"`
}

// SearchResults is metadata only: result documents live in side files whose
// paths are listed here, never embedded.
type SearchResults struct {
	Header
	TotalResults         int                `json:"total_results"`
	DeduplicatedCount    int                `json:"deduplicated_count"`
	DatabasesSearched    []string           `json:"databases_searched"`
	ResultFilePaths      []string           `json:"result_file_paths"`
	DeduplicationStats   DeduplicationStats `json:"deduplication_stats"`
	ExecutionTimeSeconds float64            `json:"execution_time_seconds"`
}

// ScreeningCriteria is derived deterministically from upstream artifacts.
type ScreeningCriteria struct {
	Header
	InclusionCriteria []string `json:"inclusion_criteria"`
	ExclusionCriteria []string `json:"exclusion_criteria"`
}

// StrategyExportBundle lists the files produced by the strategy-export
// stage.
type StrategyExportBundle struct {
	Header
	ExportedFiles []string `json:"exported_files"`
	Notes         string   `json:"notes,omitempty"`
}
