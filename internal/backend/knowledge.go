package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListDocuments returns the caller's documents. A non-nil folderID
// filters the listing to that folder; nil returns the unfiltered
// listing (root documents carry a nil folder reference).
func (c *Client) ListDocuments(ctx context.Context, userID string, folderID *string) ([]Document, error) {
	query := url.Values{}
	if folderID != nil {
		query.Set("folder_id", *folderID)
	}
	var docs []Document
	if err := c.doJSON(ctx, userID, http.MethodGet, "/knowledge", query, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CreateDocument creates a document, optionally inside a folder.
func (c *Client) CreateDocument(ctx context.Context, userID, title, content string, folderID *string) (*Document, error) {
	body := struct {
		Title    string  `json:"title"`
		Content  string  `json:"content"`
		FolderID *string `json:"folder_id"`
	}{Title: title, Content: content, FolderID: folderID}

	var doc Document
	if err := c.doJSON(ctx, userID, http.MethodPost, "/knowledge", nil, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocument fetches a single document by id.
func (c *Client) GetDocument(ctx context.Context, userID, id string) (*Document, error) {
	var doc Document
	if err := c.doJSON(ctx, userID, http.MethodGet, "/knowledge/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocument replaces a document's title and content.
func (c *Client) UpdateDocument(ctx context.Context, userID, id, title, content string) (*Document, error) {
	body := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}

	var doc Document
	if err := c.doJSON(ctx, userID, http.MethodPut, "/knowledge/"+url.PathEscape(id), nil, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, userID, id string) error {
	return c.doJSON(ctx, userID, http.MethodDelete, "/knowledge/"+url.PathEscape(id), nil, nil, nil)
}

// MoveDocument changes only the document's folder reference. A nil
// folderID moves it to the root: the request body carries an explicit
// {"folder_id": null}.
func (c *Client) MoveDocument(ctx context.Context, userID, id string, folderID *string) (*Document, error) {
	body := struct {
		FolderID *string `json:"folder_id"`
	}{FolderID: folderID}

	var doc Document
	if err := c.doJSON(ctx, userID, http.MethodPost, "/knowledge/"+url.PathEscape(id)+"/move", nil, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListFolders returns the caller's folder tree as a flat list.
func (c *Client) ListFolders(ctx context.Context, userID string) ([]Folder, error) {
	var folders []Folder
	if err := c.doJSON(ctx, userID, http.MethodGet, "/knowledge/folders", nil, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolder creates a folder, optionally under a parent.
func (c *Client) CreateFolder(ctx context.Context, userID, name string, parentID *string) (*Folder, error) {
	body := struct {
		Name     string  `json:"name"`
		ParentID *string `json:"parent_id"`
	}{Name: name, ParentID: parentID}

	var folder Folder
	if err := c.doJSON(ctx, userID, http.MethodPost, "/knowledge/folders", nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder removes a folder. Documents inside it revert to the
// root on the backend side.
func (c *Client) DeleteFolder(ctx context.Context, userID, id string) error {
	return c.doJSON(ctx, userID, http.MethodDelete, "/knowledge/folders/"+url.PathEscape(id), nil, nil, nil)
}
