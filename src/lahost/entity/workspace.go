// Package entity contains the domain types for the lahost daemon.
package entity

import (
	"slices"

	"go.lsp.dev/uri"
)

// WorkspaceKind identifies which shape of workspace is currently open in the editor.
type WorkspaceKind int

const (
	// WorkspaceEmpty means no folder is open and no recognized documents exist.
	WorkspaceEmpty WorkspaceKind = iota
	// WorkspaceFolder means at least one real on-disk folder is open.
	WorkspaceFolder
	// WorkspaceDetachedFiles means documents are open without a containing folder.
	WorkspaceDetachedFiles
)

// String implements fmt.Stringer.
func (k WorkspaceKind) String() string {
	switch k {
	case WorkspaceEmpty:
		return "empty"
	case WorkspaceFolder:
		return "folder"
	case WorkspaceDetachedFiles:
		return "detached-files"
	default:
		return "unknown"
	}
}

// Workspace is a tagged variant describing the editor's open-workspace shape.
// Exactly one variant holds at any instant: Folders is set only for
// WorkspaceFolder, Files only for WorkspaceDetachedFiles.
type Workspace struct {
	Kind    WorkspaceKind
	Folders []string
	Files   []uri.URI
}

// EmptyWorkspace returns the Workspace variant with nothing to analyze.
func EmptyWorkspace() Workspace {
	return Workspace{Kind: WorkspaceEmpty}
}

// FolderWorkspace returns a Workspace backed by one or more on-disk folders.
func FolderWorkspace(folders ...string) Workspace {
	return Workspace{Kind: WorkspaceFolder, Folders: folders}
}

// DetachedFilesWorkspace returns a Workspace holding open documents with no
// containing folder. Order is preserved; the file set is captured at server
// start time and never updated in place.
func DetachedFilesWorkspace(files ...uri.URI) Workspace {
	return Workspace{Kind: WorkspaceDetachedFiles, Files: files}
}

// SameFiles reports whether two detached-files workspaces hold an identical
// ordered file set. Both workspaces must be of kind WorkspaceDetachedFiles.
func (w Workspace) SameFiles(other Workspace) bool {
	return slices.Equal(w.Files, other.Files)
}

// Equal reports whether two workspaces describe the same topology. Folder
// order and file order are significant.
func (w Workspace) Equal(other Workspace) bool {
	if w.Kind != other.Kind {
		return false
	}
	switch w.Kind {
	case WorkspaceFolder:
		return slices.Equal(w.Folders, other.Folders)
	case WorkspaceDetachedFiles:
		return w.SameFiles(other)
	default:
		return true
	}
}
