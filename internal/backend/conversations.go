package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListConversations returns the caller's conversations.
func (c *Client) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	var convs []Conversation
	if err := c.doJSON(ctx, userID, http.MethodGet, "/conversations", nil, nil, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// CreateConversation starts a new conversation.
func (c *Client) CreateConversation(ctx context.Context, userID, title string) (*Conversation, error) {
	body := struct {
		Title string `json:"title"`
	}{Title: title}

	var conv Conversation
	if err := c.doJSON(ctx, userID, http.MethodPost, "/conversations", nil, body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// UpdateConversation renames a conversation.
func (c *Client) UpdateConversation(ctx context.Context, userID, id, title string) (*Conversation, error) {
	body := struct {
		Title string `json:"title"`
	}{Title: title}

	var conv Conversation
	if err := c.doJSON(ctx, userID, http.MethodPut, "/conversations/"+url.PathEscape(id), nil, body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, userID, id string) error {
	return c.doJSON(ctx, userID, http.MethodDelete, "/conversations/"+url.PathEscape(id), nil, nil, nil)
}

// AppendMessage appends one message to a conversation. The role is a
// closed enumeration; anything outside it is rejected client-side.
func (c *Client) AppendMessage(ctx context.Context, userID, conversationID, role, content string) (*Message, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid message role %q (want %s, %s or %s)",
			role, RoleUser, RoleAssistant, RoleSystem)
	}
	body := struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{Role: role, Content: content}

	var msg Message
	path := "/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.doJSON(ctx, userID, http.MethodPost, path, nil, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
