package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/voyalab/backplane/internal/backend"
	"github.com/voyalab/backplane/internal/identity"
	"github.com/voyalab/backplane/internal/logging"
	"github.com/voyalab/backplane/internal/repo"
)

var kbUser string

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Smoke-test knowledge document and folder moves on the backend",
	Long: "Creates a folder and a document, moves the document in and out of\n" +
		"the folder, and verifies each listing along the way. The first\n" +
		"failed step aborts the run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if kbUser == "" {
			return fmt.Errorf("--user is required")
		}

		sessions := identity.NewManager()
		sessions.SignIn(kbUser, nil)
		defer sessions.SignOut()

		kb := repo.ResolveKnowledge(repo.Deps{
			Backend:  backend.NewClient(cfg.BackendBaseURL, cfg.BackendAPIKey),
			Sessions: sessions,
		})
		return runKBChecks(cmd.Context(), kb)
	},
}

// runKBChecks exercises the move semantics end to end: a document
// moved into a folder must appear in that folder's filtered listing;
// moved back to the root it must leave the filtered listing and show
// up unfiltered with no folder reference.
func runKBChecks(ctx context.Context, kb repo.KnowledgeRepository) error {
	tag := uuid.NewString()[:8]

	step := func(name string, fn func() error) error {
		if err := fn(); err != nil {
			logging.Errorf("step %s: %v", name, err)
			return fmt.Errorf("kb check %s: %w", name, err)
		}
		logging.Successf("step %s", name)
		return nil
	}

	var folder *backend.Folder
	var doc *backend.Document

	if err := step("create folder", func() error {
		var err error
		folder, err = kb.CreateFolder(ctx, "probe-folder-"+tag, nil)
		return err
	}); err != nil {
		return err
	}

	// Best-effort cleanup so repeated runs do not accumulate probes.
	defer func() {
		if doc != nil {
			if err := kb.DeleteDocument(ctx, doc.ID); err != nil {
				logging.Warnf("cleanup document: %v", err)
			}
		}
		if folder != nil {
			if err := kb.DeleteFolder(ctx, folder.ID); err != nil {
				logging.Warnf("cleanup folder: %v", err)
			}
		}
	}()

	if err := step("create document", func() error {
		var err error
		doc, err = kb.CreateDocument(ctx, "probe-doc-"+tag, "backplane kb probe", nil)
		return err
	}); err != nil {
		return err
	}

	if err := step("move into folder", func() error {
		moved, err := kb.MoveDocument(ctx, doc.ID, &folder.ID)
		if err != nil {
			return err
		}
		if moved.FolderID == nil || *moved.FolderID != folder.ID {
			return fmt.Errorf("document folder reference = %v, want %s", moved.FolderID, folder.ID)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("filtered listing contains document", func() error {
		docs, err := kb.ListDocuments(ctx, &folder.ID)
		if err != nil {
			return err
		}
		if !containsDocument(docs, doc.ID) {
			return fmt.Errorf("document %s missing from folder listing", doc.ID)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("move back to root", func() error {
		moved, err := kb.MoveDocument(ctx, doc.ID, nil)
		if err != nil {
			return err
		}
		if moved.FolderID != nil {
			return fmt.Errorf("document folder reference = %q, want absent", *moved.FolderID)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := step("filtered listing no longer contains document", func() error {
		docs, err := kb.ListDocuments(ctx, &folder.ID)
		if err != nil {
			return err
		}
		if containsDocument(docs, doc.ID) {
			return fmt.Errorf("document %s still listed under folder %s", doc.ID, folder.ID)
		}
		return nil
	}); err != nil {
		return err
	}

	return step("unfiltered listing contains rootless document", func() error {
		docs, err := kb.ListDocuments(ctx, nil)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if d.ID == doc.ID {
				if d.FolderID != nil {
					return fmt.Errorf("document still references folder %q", *d.FolderID)
				}
				return nil
			}
		}
		return fmt.Errorf("document %s missing from unfiltered listing", doc.ID)
	})
}

func containsDocument(docs []backend.Document, id string) bool {
	for _, d := range docs {
		if d.ID == id {
			return true
		}
	}
	return false
}

func init() {
	kbCmd.Flags().StringVar(&kbUser, "user", "", "user identifier the checks run as (required)")
}
