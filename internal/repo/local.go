package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/voyalab/backplane/internal/backend"
)

// The local-storage repositories are retired. The tombstones below
// keep the original operation signatures but fail unconditionally, so
// any lingering caller surfaces at runtime instead of silently reading
// stale local data. Delete these wholesale once no callers remain.

// ErrLocalRemoved marks every tombstone failure so callers can detect
// a stale wiring with errors.Is instead of string matching.
var ErrLocalRemoved = errors.New("local repository was removed")

func localRemoved(entity, op string) error {
	return fmt.Errorf("%w: %s %s is now served by the backend API", ErrLocalRemoved, entity, op)
}

// LocalKnowledgeRepository is the tombstoned local-storage variant of
// KnowledgeRepository.
type LocalKnowledgeRepository struct{}

var _ KnowledgeRepository = (*LocalKnowledgeRepository)(nil)

func (*LocalKnowledgeRepository) ListDocuments(context.Context, *string) ([]backend.Document, error) {
	return nil, localRemoved("knowledge", "ListDocuments")
}

func (*LocalKnowledgeRepository) CreateDocument(context.Context, string, string, *string) (*backend.Document, error) {
	return nil, localRemoved("knowledge", "CreateDocument")
}

func (*LocalKnowledgeRepository) GetDocument(context.Context, string) (*backend.Document, error) {
	return nil, localRemoved("knowledge", "GetDocument")
}

func (*LocalKnowledgeRepository) UpdateDocument(context.Context, string, string, string) (*backend.Document, error) {
	return nil, localRemoved("knowledge", "UpdateDocument")
}

func (*LocalKnowledgeRepository) DeleteDocument(context.Context, string) error {
	return localRemoved("knowledge", "DeleteDocument")
}

func (*LocalKnowledgeRepository) MoveDocument(context.Context, string, *string) (*backend.Document, error) {
	return nil, localRemoved("knowledge", "MoveDocument")
}

func (*LocalKnowledgeRepository) ListFolders(context.Context) ([]backend.Folder, error) {
	return nil, localRemoved("knowledge", "ListFolders")
}

func (*LocalKnowledgeRepository) CreateFolder(context.Context, string, *string) (*backend.Folder, error) {
	return nil, localRemoved("knowledge", "CreateFolder")
}

func (*LocalKnowledgeRepository) DeleteFolder(context.Context, string) error {
	return localRemoved("knowledge", "DeleteFolder")
}

// LocalConversationRepository is the tombstoned local-storage variant
// of ConversationRepository.
type LocalConversationRepository struct{}

var _ ConversationRepository = (*LocalConversationRepository)(nil)

func (*LocalConversationRepository) List(context.Context) ([]backend.Conversation, error) {
	return nil, localRemoved("conversation", "List")
}

func (*LocalConversationRepository) Create(context.Context, string) (*backend.Conversation, error) {
	return nil, localRemoved("conversation", "Create")
}

func (*LocalConversationRepository) Update(context.Context, string, string) (*backend.Conversation, error) {
	return nil, localRemoved("conversation", "Update")
}

func (*LocalConversationRepository) Delete(context.Context, string) error {
	return localRemoved("conversation", "Delete")
}

func (*LocalConversationRepository) AppendMessage(context.Context, string, string, string) (*backend.Message, error) {
	return nil, localRemoved("conversation", "AppendMessage")
}

// LocalToolRepository is the tombstoned local-storage variant of
// ToolRepository.
type LocalToolRepository struct{}

var _ ToolRepository = (*LocalToolRepository)(nil)

func (*LocalToolRepository) ListTools(context.Context) ([]backend.ToolConfiguration, error) {
	return nil, localRemoved("tool", "ListTools")
}

func (*LocalToolRepository) FetchIcon(context.Context, string) ([]byte, error) {
	return nil, localRemoved("tool", "FetchIcon")
}
