package repo

import (
	"context"

	"github.com/voyalab/backplane/internal/backend"
)

// remoteKnowledge delegates every operation to the backend API,
// resolving the ambient identity at the point of delegation. Delegate
// errors are propagated untouched.
type remoteKnowledge struct {
	deps Deps
}

func (r *remoteKnowledge) userID() (string, error) {
	sess, err := r.deps.Sessions.Current()
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

func (r *remoteKnowledge) ListDocuments(ctx context.Context, folderID *string) ([]backend.Document, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.ListDocuments(ctx, uid, folderID)
}

func (r *remoteKnowledge) CreateDocument(ctx context.Context, title, content string, folderID *string) (*backend.Document, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.CreateDocument(ctx, uid, title, content, folderID)
}

func (r *remoteKnowledge) GetDocument(ctx context.Context, id string) (*backend.Document, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.GetDocument(ctx, uid, id)
}

func (r *remoteKnowledge) UpdateDocument(ctx context.Context, id, title, content string) (*backend.Document, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.UpdateDocument(ctx, uid, id, title, content)
}

func (r *remoteKnowledge) DeleteDocument(ctx context.Context, id string) error {
	uid, err := r.userID()
	if err != nil {
		return err
	}
	return r.deps.Backend.DeleteDocument(ctx, uid, id)
}

func (r *remoteKnowledge) MoveDocument(ctx context.Context, id string, folderID *string) (*backend.Document, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.MoveDocument(ctx, uid, id, folderID)
}

func (r *remoteKnowledge) ListFolders(ctx context.Context) ([]backend.Folder, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.ListFolders(ctx, uid)
}

func (r *remoteKnowledge) CreateFolder(ctx context.Context, name string, parentID *string) (*backend.Folder, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.CreateFolder(ctx, uid, name, parentID)
}

func (r *remoteKnowledge) DeleteFolder(ctx context.Context, id string) error {
	uid, err := r.userID()
	if err != nil {
		return err
	}
	return r.deps.Backend.DeleteFolder(ctx, uid, id)
}

// remoteConversations mirrors remoteKnowledge for conversations.
type remoteConversations struct {
	deps Deps
}

func (r *remoteConversations) userID() (string, error) {
	sess, err := r.deps.Sessions.Current()
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

func (r *remoteConversations) List(ctx context.Context) ([]backend.Conversation, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.ListConversations(ctx, uid)
}

func (r *remoteConversations) Create(ctx context.Context, title string) (*backend.Conversation, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.CreateConversation(ctx, uid, title)
}

func (r *remoteConversations) Update(ctx context.Context, id, title string) (*backend.Conversation, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.UpdateConversation(ctx, uid, id, title)
}

func (r *remoteConversations) Delete(ctx context.Context, id string) error {
	uid, err := r.userID()
	if err != nil {
		return err
	}
	return r.deps.Backend.DeleteConversation(ctx, uid, id)
}

func (r *remoteConversations) AppendMessage(ctx context.Context, conversationID, role, content string) (*backend.Message, error) {
	uid, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.deps.Backend.AppendMessage(ctx, uid, conversationID, role, content)
}

// remoteTools delegates to the backend. Tool configurations are not
// user-scoped, so no identity is resolved here.
type remoteTools struct {
	deps Deps
}

func (r *remoteTools) ListTools(ctx context.Context) ([]backend.ToolConfiguration, error) {
	return r.deps.Backend.ListTools(ctx)
}

func (r *remoteTools) FetchIcon(ctx context.Context, iconName string) ([]byte, error) {
	return r.deps.Backend.FetchIcon(ctx, iconName)
}
