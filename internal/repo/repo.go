// Package repo exposes stable data-access interfaces for the platform
// entities. Callers depend only on the capability set; a static
// resolution function picks the concrete implementation. Today that is
// always the remote API-backed one — the indirection exists so the
// backend could be swapped without touching call sites.
package repo

import (
	"context"

	"github.com/voyalab/backplane/internal/backend"
	"github.com/voyalab/backplane/internal/identity"
)

// KnowledgeRepository is the operation set for knowledge-base
// documents and folders. Implementations resolve the caller's identity
// themselves; no operation takes a user ID.
type KnowledgeRepository interface {
	ListDocuments(ctx context.Context, folderID *string) ([]backend.Document, error)
	CreateDocument(ctx context.Context, title, content string, folderID *string) (*backend.Document, error)
	GetDocument(ctx context.Context, id string) (*backend.Document, error)
	UpdateDocument(ctx context.Context, id, title, content string) (*backend.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	MoveDocument(ctx context.Context, id string, folderID *string) (*backend.Document, error)
	ListFolders(ctx context.Context) ([]backend.Folder, error)
	CreateFolder(ctx context.Context, name string, parentID *string) (*backend.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// ConversationRepository is the operation set for conversations and
// their messages.
type ConversationRepository interface {
	List(ctx context.Context) ([]backend.Conversation, error)
	Create(ctx context.Context, title string) (*backend.Conversation, error)
	Update(ctx context.Context, id, title string) (*backend.Conversation, error)
	Delete(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, conversationID, role, content string) (*backend.Message, error)
}

// ToolRepository is the operation set for tool configurations and
// their icons. Tool configurations are shared, not user-scoped; the
// icon fetch needs only the service credential.
type ToolRepository interface {
	ListTools(ctx context.Context) ([]backend.ToolConfiguration, error)
	FetchIcon(ctx context.Context, iconName string) ([]byte, error)
}

// Deps carries what the concrete implementations need.
type Deps struct {
	Backend  *backend.Client
	Sessions *identity.Manager
}

// ResolveKnowledge returns the active knowledge repository.
func ResolveKnowledge(d Deps) KnowledgeRepository {
	return &remoteKnowledge{deps: d}
}

// ResolveConversations returns the active conversation repository.
func ResolveConversations(d Deps) ConversationRepository {
	return &remoteConversations{deps: d}
}

// ResolveTools returns the active tool repository.
func ResolveTools(d Deps) ToolRepository {
	return &remoteTools{deps: d}
}
