package mapper

import (
	"github.com/polder-ide/lahost/src/lahost/entity"
)

// NewInitializationOptions builds the immutable initialization record sent to
// the server at launch. Workspace shape decides which fields are present:
// detached files are only ever captured here, at start time. The returned
// record is never mutated afterwards; a changed workspace or a fresh
// discovery result requires a relaunch with a new record.
func NewInitializationOptions(cfg entity.ServerConfig, ws entity.Workspace, discovered []entity.ProjectDescriptor) entity.InitializationOptions {
	opts := entity.InitializationOptions{
		CheckOnSave: cfg.CheckOnSave,
	}

	if ws.Kind == entity.WorkspaceDetachedFiles {
		files := make([]string, 0, len(ws.Files))
		for _, f := range ws.Files {
			files = append(files, f.Filename())
		}
		opts.DetachedFiles = files
	}

	if len(discovered) > 0 {
		projects := make([]entity.ProjectDescriptor, len(discovered))
		copy(projects, discovered)
		opts.DiscoveredProjects = projects
	}

	return opts
}
