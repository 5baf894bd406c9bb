package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/polder-ide/lahost/src/lahost/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// WorkspaceDidChangeParams is the wire form of a workspace topology change
// pushed by the editor front-end.
type WorkspaceDidChangeParams struct {
	Kind    string   `json:"kind"`
	Folders []string `json:"folders,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// RequestToWorkspace extracts the new workspace shape from a
// lahost/workspaceDidChange request.
func RequestToWorkspace(req jsonrpc2.Request) (entity.Workspace, error) {
	var params WorkspaceDidChangeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return entity.Workspace{}, fmt.Errorf("unmarshalling workspace params: %w", err)
	}
	return ParamsToWorkspace(params)
}

// ParamsToWorkspace converts wire workspace params into the entity variant.
func ParamsToWorkspace(params WorkspaceDidChangeParams) (entity.Workspace, error) {
	switch params.Kind {
	case "empty", "":
		return entity.EmptyWorkspace(), nil
	case "folder":
		return entity.FolderWorkspace(params.Folders...), nil
	case "detached-files":
		files := make([]uri.URI, 0, len(params.Files))
		for _, f := range params.Files {
			files = append(files, uri.URI(f))
		}
		return entity.DetachedFilesWorkspace(files...), nil
	default:
		return entity.Workspace{}, fmt.Errorf("unknown workspace kind %q", params.Kind)
	}
}

// RequestToExecuteCommandParams extracts command invocation params from a
// lahost/executeCommand request.
func RequestToExecuteCommandParams(req jsonrpc2.Request) (*protocol.ExecuteCommandParams, error) {
	var params protocol.ExecuteCommandParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, fmt.Errorf("unmarshalling execute command params: %w", err)
	}
	return &params, nil
}
