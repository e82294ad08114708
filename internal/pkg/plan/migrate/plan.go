// Package migrate builds and executes the plan of the arguments-nesting rewrite.
package migrate

import (
	"fmt"
	"io"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/project"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/schema"
)

// Plan is the list of test declarations that need the migration, grouped per file.
type Plan struct {
	restructurer *schema.Restructurer
	files        []*fileActions
	reviews      []*reviewNote
	summary      Summary
}

type fileActions struct {
	doc     *project.Document
	actions []*action
}

// Summary aggregates per-run statistics from the stream of migration records.
type Summary struct {
	FilesExamined int
	FilesChanged  int
	TestsFound    int
	TestsMigrated int
	TestsSkipped  int
	NeedsReview   int
}

// NewPlan evaluates all test declarations in the documents.
// The evaluation is pure, documents are not modified.
func NewPlan(restructurer *schema.Restructurer, docs []*project.Document) *Plan {
	plan := &Plan{restructurer: restructurer}
	plan.summary.FilesExamined = len(docs)

	for _, doc := range docs {
		file := &fileActions{doc: doc}
		for _, node := range doc.Nodes() {
			schema.VisitTests(node, schema.Visitor{
				OnTest: func(decl *schema.Declaration) {
					plan.summary.TestsFound++
					switch restructurer.Evaluate(decl) {
					case schema.OutcomePending:
						file.actions = append(file.actions, &action{doc: doc, decl: decl})
					case schema.OutcomeMixed:
						plan.summary.NeedsReview++
						plan.reviews = append(plan.reviews, &reviewNote{doc: doc, decl: decl})
					default:
						plan.summary.TestsSkipped++
					}
				},
			})
		}
		if len(file.actions) > 0 {
			plan.files = append(plan.files, file)
		}
	}

	return plan
}

func (p *Plan) Name() string {
	return "migrate"
}

func (p *Plan) Empty() bool {
	return len(p.files) == 0
}

// Summary of the evaluation, executor counters are filled by Invoke.
func (p *Plan) Summary() Summary {
	return p.summary
}

// Log writes the plan in a human-readable form, used by dry runs
// and before the confirmation prompt.
func (p *Plan) Log(w io.Writer) {
	fmt.Fprintf(w, `Plan for "%s" operation:`, p.Name())
	fmt.Fprintln(w)
	if p.Empty() {
		fmt.Fprintln(w, "  no tests to migrate found")
		return
	}
	for _, file := range p.files {
		for _, a := range file.actions {
			fmt.Fprintln(w, "  "+a.String())
		}
	}
}

// LogReviews writes a warning for each mixed declaration,
// a body with both "arguments" and stray argument keys is never modified.
func (p *Plan) LogReviews(logger log.Logger) {
	for _, r := range p.reviews {
		logger.Warnf(
			`Test "%s" in "%s" at %s mixes "arguments" with top-level argument keys, left unchanged, please review manually.`,
			r.testName(), r.doc.Path(), r.decl.Path.String(),
		)
	}
}

// Invoke applies the plan: declarations are rewritten in place
// and only the documents with at least one change are saved.
func (p *Plan) Invoke(logger log.Logger, fs filesystem.Fs) (Summary, []schema.Record, error) {
	return newExecutor(logger, fs, p).invoke()
}
