package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/voyalab/backplane/internal/backend"
	"github.com/voyalab/backplane/internal/repo"
)

// fakeKnowledge is an in-memory KnowledgeRepository with real move
// semantics, so the kb check sequence can run without a backend.
type fakeKnowledge struct {
	folders map[string]backend.Folder
	docs    map[string]backend.Document
	nextID  int
}

var _ repo.KnowledgeRepository = (*fakeKnowledge)(nil)

func newFakeKnowledge() *fakeKnowledge {
	return &fakeKnowledge{
		folders: map[string]backend.Folder{},
		docs:    map[string]backend.Document{},
	}
}

func (f *fakeKnowledge) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeKnowledge) ListDocuments(_ context.Context, folderID *string) ([]backend.Document, error) {
	var out []backend.Document
	for _, d := range f.docs {
		if folderID == nil {
			out = append(out, d)
			continue
		}
		if d.FolderID != nil && *d.FolderID == *folderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeKnowledge) CreateDocument(_ context.Context, title, content string, folderID *string) (*backend.Document, error) {
	d := backend.Document{ID: f.id("doc"), Title: title, Content: content, FolderID: folderID}
	f.docs[d.ID] = d
	return &d, nil
}

func (f *fakeKnowledge) GetDocument(_ context.Context, id string) (*backend.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return &d, nil
}

func (f *fakeKnowledge) UpdateDocument(_ context.Context, id, title, content string) (*backend.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, backend.ErrNotFound
	}
	d.Title, d.Content = title, content
	f.docs[id] = d
	return &d, nil
}

func (f *fakeKnowledge) DeleteDocument(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeKnowledge) MoveDocument(_ context.Context, id string, folderID *string) (*backend.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, backend.ErrNotFound
	}
	d.FolderID = folderID
	f.docs[id] = d
	return &d, nil
}

func (f *fakeKnowledge) ListFolders(context.Context) ([]backend.Folder, error) {
	var out []backend.Folder
	for _, fl := range f.folders {
		out = append(out, fl)
	}
	return out, nil
}

func (f *fakeKnowledge) CreateFolder(_ context.Context, name string, parentID *string) (*backend.Folder, error) {
	fl := backend.Folder{ID: f.id("folder"), Name: name, ParentID: parentID}
	f.folders[fl.ID] = fl
	return &fl, nil
}

func (f *fakeKnowledge) DeleteFolder(_ context.Context, id string) error {
	delete(f.folders, id)
	return nil
}

func TestRunKBChecksPasses(t *testing.T) {
	kb := newFakeKnowledge()
	if err := runKBChecks(context.Background(), kb); err != nil {
		t.Fatalf("runKBChecks error: %v", err)
	}
	if len(kb.docs) != 0 || len(kb.folders) != 0 {
		t.Errorf("cleanup incomplete: %d docs, %d folders left", len(kb.docs), len(kb.folders))
	}
}

// brokenMove keeps the folder reference on a move-to-root, which the
// checks must catch.
type brokenMove struct{ *fakeKnowledge }

func (b brokenMove) MoveDocument(ctx context.Context, id string, folderID *string) (*backend.Document, error) {
	if folderID == nil {
		d := b.docs[id]
		return &d, nil // stale folder reference survives
	}
	return b.fakeKnowledge.MoveDocument(ctx, id, folderID)
}

func TestRunKBChecksCatchesStaleFolderReference(t *testing.T) {
	kb := brokenMove{newFakeKnowledge()}
	if err := runKBChecks(context.Background(), kb); err == nil {
		t.Fatal("runKBChecks should fail when move-to-root keeps the folder reference")
	}
}
