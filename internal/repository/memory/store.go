package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	docsysRepo "docshelf/internal/domain/repositories/docsystem"
)

// Store is an in-process storage service. It enforces what the dashboard
// backend enforces (unique sibling names, existing parents, cascading
// deletes) but keeps whatever it was seeded with, malformed parents included.
type Store struct {
	mu      sync.RWMutex
	folders map[int64]models.Folder
	files   map[int64]models.File
	nextID  int64
	ownerID int64
	now     func() time.Time
	logger  *slog.Logger
}

var _ docsysRepo.Storage = (*Store)(nil)

// NewStore creates an empty store whose new folders belong to ownerID.
func NewStore(ownerID int64, logger *slog.Logger) *Store {
	return &Store{
		folders: make(map[int64]models.Folder),
		files:   make(map[int64]models.File),
		nextID:  1,
		ownerID: ownerID,
		now:     time.Now,
		logger:  logger,
	}
}

// NewStoreFromFixture creates a store seeded with the fixture's records.
func NewStoreFromFixture(fixture *Fixture, ownerID int64, logger *slog.Logger) *Store {
	s := NewStore(ownerID, logger)
	s.Seed(fixture)
	return s
}

// Seed inserts records as-is. Later records with a known id replace earlier ones.
func (s *Store) Seed(fixture *Fixture) {
	if fixture == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range fixture.Folders {
		s.folders[f.ID] = f
		s.bumpID(f.ID)
	}
	for _, f := range fixture.Files {
		s.files[f.ID] = f
		s.bumpID(f.ID)
	}

	s.logger.Debug("memory store seeded",
		"folder_count", len(fixture.Folders),
		"file_count", len(fixture.Files),
	)
}

// Export returns a copy of every record, ordered by id.
func (s *Store) Export() *Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fixture := &Fixture{
		Folders: make([]models.Folder, 0, len(s.folders)),
		Files:   make([]models.File, 0, len(s.files)),
	}
	for _, f := range s.folders {
		fixture.Folders = append(fixture.Folders, f)
	}
	for _, f := range s.files {
		fixture.Files = append(fixture.Files, f)
	}
	sortFolders(fixture.Folders)
	sortFiles(fixture.Files)
	return fixture
}

func (s *Store) bumpID(id int64) {
	if id >= s.nextID {
		s.nextID = id + 1
	}
}

// ListFolders returns every folder in scope, ordered by id.
func (s *Store) ListFolders(ctx context.Context, scope models.Scope) ([]models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders := make([]models.Folder, 0)
	for _, f := range s.folders {
		if f.Scope() == scope {
			folders = append(folders, f)
		}
	}
	sortFolders(folders)
	return folders, nil
}

// CreateFolder creates a folder under parentID (nil = root).
func (s *Store) CreateFolder(ctx context.Context, name string, parentID *int64, scope models.Scope) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if parentID != nil {
		if _, ok := s.folders[*parentID]; !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent folder %d not found", *parentID)}
		}
	}
	if existing, ok := s.siblingNamed(name, parentID, scope, 0); ok {
		return nil, folderConflict(name, existing.ID)
	}

	now := s.now()
	folder := models.Folder{
		ID:        s.nextID,
		Name:      name,
		ParentID:  copyID(parentID),
		OwnerID:   s.ownerID,
		IsPublic:  scope.IsPublic(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.folders[folder.ID] = folder

	s.logger.Debug("memory folder created", "id", folder.ID, "parent_folder_id", parentID)
	return &folder, nil
}

// RenameFolder changes a folder's name.
func (s *Store) RenameFolder(ctx context.Context, id int64, name string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[id]
	if !ok {
		return nil, folderNotFound(id)
	}
	if existing, ok := s.siblingNamed(name, folder.ParentID, folder.Scope(), id); ok {
		return nil, folderConflict(name, existing.ID)
	}

	folder.Name = name
	folder.UpdatedAt = s.now()
	s.folders[id] = folder
	return &folder, nil
}

// MoveFolder re-parents a folder. Moving a folder below itself is rejected.
func (s *Store) MoveFolder(ctx context.Context, id int64, parentID *int64) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[id]
	if !ok {
		return nil, folderNotFound(id)
	}
	if parentID != nil {
		if _, ok := s.folders[*parentID]; !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent folder %d not found", *parentID)}
		}
		if s.reaches(*parentID, id) {
			return nil, domain.NewValidationError("parentId", "cannot move folder into itself or its subfolders")
		}
	}
	if existing, ok := s.siblingNamed(folder.Name, parentID, folder.Scope(), id); ok {
		return nil, folderConflict(folder.Name, existing.ID)
	}

	folder.ParentID = copyID(parentID)
	folder.UpdatedAt = s.now()
	s.folders[id] = folder
	return &folder, nil
}

// DeleteFolder deletes a folder with every folder and file below it.
func (s *Store) DeleteFolder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id]; !ok {
		return folderNotFound(id)
	}

	doomed := s.subtree(id)
	for folderID := range doomed {
		delete(s.folders, folderID)
	}
	removedFiles := 0
	for fileID, f := range s.files {
		if f.FolderID != nil {
			if _, ok := doomed[*f.FolderID]; ok {
				delete(s.files, fileID)
				removedFiles++
			}
		}
	}

	s.logger.Debug("memory folder deleted",
		"id", id,
		"folder_count", len(doomed),
		"file_count", removedFiles,
	)
	return nil
}

// ListFiles lists the files of one folder, or every file in scope when
// folderID is nil.
func (s *Store) ListFiles(ctx context.Context, folderID *int64, scope models.Scope) ([]models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]models.File, 0)
	for _, f := range s.files {
		if f.Scope() != scope {
			continue
		}
		if folderID != nil && (f.FolderID == nil || *f.FolderID != *folderID) {
			continue
		}
		files = append(files, f)
	}
	sortFiles(files)
	return files, nil
}

// UpdateFile renames and/or moves a file.
func (s *Store) UpdateFile(ctx context.Context, id int64, update docsysRepo.FileUpdate) (*models.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("file %d not found", id)}
	}

	if update.FolderID.Present {
		if dest := update.FolderID.Value; dest != nil {
			if _, ok := s.folders[*dest]; !ok {
				return nil, folderNotFound(*dest)
			}
		}
		file.FolderID = copyID(update.FolderID.Value)
	}
	if update.Name != nil {
		file.Name = *update.Name
	}

	s.files[id] = file
	return &file, nil
}

// DeleteFile deletes a file.
func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("file %d not found", id)}
	}
	delete(s.files, id)
	return nil
}

// siblingNamed finds a folder other than except with the same name and parent.
func (s *Store) siblingNamed(name string, parentID *int64, scope models.Scope, except int64) (models.Folder, bool) {
	for _, f := range s.folders {
		if f.ID == except || f.Name != name || f.Scope() != scope {
			continue
		}
		if sameParent(f.ParentID, parentID) {
			return f, true
		}
	}
	return models.Folder{}, false
}

// reaches reports whether walking parents from start meets target.
// Seeded data may contain cycles, so the walk is bounded by a visited set.
func (s *Store) reaches(start, target int64) bool {
	visited := make(map[int64]struct{})
	current := start
	for {
		if current == target {
			return true
		}
		if _, seen := visited[current]; seen {
			return false
		}
		visited[current] = struct{}{}

		f, ok := s.folders[current]
		if !ok || f.ParentID == nil {
			return false
		}
		current = *f.ParentID
	}
}

// subtree returns id and every folder whose parent chain passes through it.
func (s *Store) subtree(id int64) map[int64]struct{} {
	children := make(map[int64][]int64)
	for _, f := range s.folders {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	doomed := map[int64]struct{}{id: {}}
	queue := []int64{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if _, seen := doomed[child]; seen {
				continue
			}
			doomed[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return doomed
}

func folderNotFound(id int64) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("folder %d not found", id)}
}

func folderConflict(name string, existingID int64) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("folder '%s' already exists", name),
		ResourceType: "folder",
		ResourceID:   existingID,
	}
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sortFolders(folders []models.Folder) {
	sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })
}

func sortFiles(files []models.File) {
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
}
