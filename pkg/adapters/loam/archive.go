// Package loam archives built models as documents of a Loam repository.
//
// Each model becomes one document named after its qualified key (family/key, so
// every family gets its own folder): the model itself lives in
// the front matter and the body is a short Markdown summary, so the archive stays
// readable (and diffable) as plain files.
package loam

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/loam"
)

// Archive implements ports.ModelSink on top of a Loam repository and reads the
// archived models back.
type Archive struct {
	Repo *loam.TypedRepository[domain.BuiltModel]

	// dir is the repository root when known; family folders are created under it.
	dir string
}

// New wraps a typed repository.
func New(repo *loam.TypedRepository[domain.BuiltModel]) *Archive {
	return &Archive{Repo: repo}
}

// Open initializes (or reuses) a Loam repository at dir.
func Open(dir string) (*Archive, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath, loam.WithVersioning(false), loam.WithForceTemp(false))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	a := New(loam.NewTypedRepository[domain.BuiltModel](repo))
	a.dir = absPath
	return a, nil
}

// Submit saves the model as a document named after its qualified key.
func (a *Archive) Submit(ctx context.Context, model *domain.BuiltModel) error {
	if model == nil || model.Key == "" {
		return fmt.Errorf("model key is required")
	}

	id := model.QualifiedKey()
	if a.dir != "" && model.Family != "" {
		if err := os.MkdirAll(filepath.Join(a.dir, model.Family), 0o755); err != nil {
			return fmt.Errorf("loam save failed for %s: %w", id, err)
		}
	}

	err := a.Repo.Save(ctx, &loam.DocumentModel[domain.BuiltModel]{
		ID:      id,
		Content: Summary(model),
		Data:    *model.Clone(),
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", id, err)
	}
	return nil
}

// Load reads an archived model back by its qualified key.
func (a *Archive) Load(ctx context.Context, key string) (*domain.BuiltModel, error) {
	doc, err := a.Repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrModelNotFound, key, err)
	}

	model := doc.Data
	if model.Key == "" {
		model.Key = trimExtension(doc.ID)
	}
	return model.Clone(), nil
}

// List returns the qualified keys of the archived models, sorted.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	docs, err := a.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		key := doc.Data.QualifiedKey()
		if doc.Data.Key == "" {
			key = trimExtension(doc.ID)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Summary renders the Markdown body of an archived model.
func Summary(m *domain.BuiltModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", m.Name, m.Description)
	fmt.Fprintf(&b, "%d transitions, %d states, %d parameters.\n", len(m.Model), len(m.State), len(m.Parameter))
	return b.String()
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
