package export

import (
	"encoding/json"
	"fmt"
	"io"

	"task-dashboard/internal/domain"

	"github.com/pelletier/go-toml/v2"
)

// Importer replaces the tasks, folders and members of the current snapshot
// with those of a backup. Session state (view, collapsed folders, sort mode)
// is kept from the current snapshot.
type Importer struct {
	current *domain.Snapshot
}

func NewImporter(current *domain.Snapshot) *Importer {
	if current == nil {
		current = domain.DefaultSnapshot()
	}
	return &Importer{current: current}
}

// Import reads a JSON or TOML backup. The document must carry both a tasks
// and a folders collection; members fall back to the current roster.
func (i *Importer) Import(r io.Reader, format Format) (*domain.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}

	var (
		imported   *domain.Snapshot
		hasMembers bool
	)

	switch format {
	case FormatJSON:
		imported, hasMembers, err = decodeJSON(data)
	case FormatTOML:
		imported, hasMembers, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("%w: cannot import %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	members := imported.Members
	if !hasMembers {
		members = make([]*domain.Member, 0, len(i.current.Members))
		for _, m := range i.current.Members {
			c := *m
			members = append(members, &c)
		}
	}

	snap := &domain.Snapshot{
		Tasks:            imported.Tasks,
		Folders:          imported.Folders,
		Members:          members,
		CurrentFolder:    i.current.CurrentFolder,
		CollapsedFolders: append([]string{}, i.current.CollapsedFolders...),
		ManualSort:       i.current.ManualSort,
	}
	snap.Normalize()
	return snap, nil
}

func decodeJSON(data []byte) (*domain.Snapshot, bool, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrImportFormat, err)
	}
	if err := requireCollections(isPresentJSON(keys, "tasks"), isPresentJSON(keys, "folders")); err != nil {
		return nil, false, err
	}

	snap, err := domain.DecodeSnapshot(data)
	if err != nil {
		return nil, false, err
	}
	return snap, isPresentJSON(keys, "members"), nil
}

func isPresentJSON(keys map[string]json.RawMessage, key string) bool {
	raw, ok := keys[key]
	return ok && string(raw) != "null"
}

func decodeTOML(data []byte) (*domain.Snapshot, bool, error) {
	var keys map[string]interface{}
	if err := toml.Unmarshal(data, &keys); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrImportFormat, err)
	}
	_, hasTasks := keys["tasks"]
	_, hasFolders := keys["folders"]
	if err := requireCollections(hasTasks, hasFolders); err != nil {
		return nil, false, err
	}

	var doc tomlBackup
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrImportFormat, err)
	}
	snap, err := fromTOML(doc)
	if err != nil {
		return nil, false, err
	}
	_, hasMembers := keys["members"]
	return snap, hasMembers, nil
}

func requireCollections(hasTasks, hasFolders bool) error {
	if !hasTasks || !hasFolders {
		return fmt.Errorf("%w: backup must contain tasks and folders", domain.ErrImportFormat)
	}
	return nil
}
