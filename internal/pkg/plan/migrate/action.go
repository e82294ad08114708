package migrate

import (
	"fmt"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/project"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/schema"
)

// action is one declaration to be rewritten.
type action struct {
	doc  *project.Document
	decl *schema.Declaration
}

func (a *action) String() string {
	return fmt.Sprintf(`~ %s %s %s`, a.doc.Path(), a.decl.Path.String(), a.decl.TestName())
}

// reviewNote marks a mixed declaration, reported but never modified.
type reviewNote struct {
	doc  *project.Document
	decl *schema.Declaration
}

func (r *reviewNote) testName() string {
	return r.decl.TestName()
}
