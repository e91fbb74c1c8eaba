package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartsuite/internal/email"
	"smartsuite/internal/model"
	"smartsuite/internal/repository"
	"smartsuite/internal/storage"
)

var (
	ErrIDRequired     = errors.New("id is required")
	ErrNotFound       = errors.New("not found")
	ErrReaderNil      = errors.New("reader is nil")
	ErrTitleRequired  = errors.New("title is required")
	ErrParentRequired = errors.New("parent id is required")
	ErrInvalidModule  = errors.New("unknown register module")
	ErrFileTooLarge   = errors.New("file exceeds the 10MB upload limit")
	ErrUserRequired   = errors.New("user identity is required")
)

// UploadInput carries a first-time document upload.
type UploadInput struct {
	Module      string
	ParentID    string
	Title       string
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	ExpiryDate  *time.Time
	UserID      string
}

// VersionInput carries a subsequent upload appended as a new version.
type VersionInput struct {
	DocumentID  string
	Label       string
	Notes       string
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UserID      string
}

// DocumentWithVersions is the service-level DTO for a document detail view.
type DocumentWithVersions struct {
	Document model.Document          `json:"document"`
	Versions []model.DocumentVersion `json:"versions"`
	Latest   *model.DocumentVersion  `json:"latest,omitempty"`
}

// DocumentService defines the use cases for handling documents and their
// version history.
type DocumentService interface {
	// Upload stores the file, then creates a Document plus its version "1"
	// pointing at the same object. Storage is rolled back if the DB save fails.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// AddVersion appends an immutable version and repoints the document's
	// current file at the new object.
	AddVersion(ctx context.Context, in VersionInput) (*model.DocumentVersion, error)

	// Get returns a document with its version history.
	Get(ctx context.Context, id string) (*DocumentWithVersions, error)

	// ListByParent returns the documents attached to a register record.
	ListByParent(ctx context.Context, module, parentID string) ([]model.Document, error)

	// Download streams the document's current file.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// DownloadURL returns a short-lived presigned URL for the document's
	// current file, so clients can fetch large files straight from storage.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Assign sets or clears (userID == "") the assignee and restarts the
	// reminder cycle. Assigning a document with a future expiry sends one
	// immediate reminder synchronously; mail failure does not fail the call.
	Assign(ctx context.Context, documentID, userID string) (*model.Document, error)

	// SetExpiry sets or clears the expiry date.
	SetExpiry(ctx context.Context, id string, expiry *time.Time) (*model.Document, error)

	// Delete removes the document, its versions, and their stored objects.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	registers repository.RegisterRepository
	users     repository.UserRepository
	mail      email.Sender
	baseURL   string
	log       *zap.Logger
	now       func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	repo repository.DocumentRepository,
	registers repository.RegisterRepository,
	users repository.UserRepository,
	mail email.Sender,
	baseURL string,
	log *zap.Logger,
) DocumentService {
	return &documentService{
		store:     store,
		repo:      repo,
		registers: registers,
		users:     users,
		mail:      mail,
		baseURL:   baseURL,
		log:       log,
		now:       time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if in.ParentID == "" {
		return nil, ErrParentRequired
	}
	if !model.ValidModule(in.Module) {
		return nil, ErrInvalidModule
	}
	if in.UserID == "" {
		return nil, ErrUserRequired
	}
	if in.Size > model.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	// The parent must exist before any file is written.
	if _, err := s.registers.FindByID(ctx, in.Module, in.ParentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key := storage.UploadKey(in.Module, in.ParentID, in.Filename)
	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := s.now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Module:      in.Module,
		ParentID:    in.ParentID,
		Title:       in.Title,
		StorageKey:  objInfo.Key,
		ContentType: objInfo.ContentType,
		Size:        objInfo.Size,
		UploadedBy:  in.UserID,
		UploadedAt:  now,
		ExpiryDate:  in.ExpiryDate,
	}
	// The first upload always records version "1" so history is never
	// empty; both rows land in one transaction.
	stored, err := s.repo.CreateWithVersion(ctx, doc, &model.DocumentVersion{
		ID:          uuid.New().String(),
		DocumentID:  doc.ID,
		Label:       "1",
		StorageKey:  objInfo.Key,
		ContentType: objInfo.ContentType,
		Size:        objInfo.Size,
		CreatedBy:   in.UserID,
		CreatedAt:   now,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) AddVersion(ctx context.Context, in VersionInput) (*model.DocumentVersion, error) {
	if in.DocumentID == "" {
		return nil, ErrIDRequired
	}
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if in.UserID == "" {
		return nil, ErrUserRequired
	}
	if in.Size > model.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	doc, err := s.repo.FindByID(ctx, in.DocumentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	versions, err := s.repo.ListVersions(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	label := in.Label
	if label == "" {
		label = nextLabel(versions)
	}

	key := storage.UploadKey(doc.Module, doc.ParentID, in.Filename)
	objInfo, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	stored, err := s.repo.CreateVersion(ctx, &model.DocumentVersion{
		ID:          uuid.New().String(),
		DocumentID:  doc.ID,
		Label:       label,
		StorageKey:  objInfo.Key,
		ContentType: objInfo.ContentType,
		Size:        objInfo.Size,
		Notes:       in.Notes,
		CreatedBy:   in.UserID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if err := s.repo.UpdateCurrentFile(ctx, doc.ID, objInfo.Key, objInfo.ContentType, objInfo.Size); err != nil {
		return nil, fmt.Errorf("update current file: %w", err)
	}
	return stored, nil
}

// nextLabel proposes the next numeric label. Free-text labels from older
// data are skipped by the numeric parse, matching LatestVersion.
func nextLabel(versions []model.DocumentVersion) string {
	max := 0
	for _, v := range versions {
		if n, err := strconv.Atoi(v.Label); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

func (s *documentService) Get(ctx context.Context, id string) (*DocumentWithVersions, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	versions, err := s.repo.ListVersions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DocumentWithVersions{
		Document: *doc,
		Versions: versions,
		Latest:   model.LatestVersion(versions),
	}, nil
}

func (s *documentService) ListByParent(ctx context.Context, module, parentID string) ([]model.Document, error) {
	if parentID == "" {
		return nil, ErrParentRequired
	}
	if !model.ValidModule(module) {
		return nil, ErrInvalidModule
	}
	return s.repo.ListByParent(ctx, module, parentID)
}

func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("get from storage: %w", err)
	}
	return rc, doc, nil
}

const presignExpiry = 15 * time.Minute

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.StorageKey, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return url, nil
}

func (s *documentService) Assign(ctx context.Context, documentID, userID string) (*model.Document, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var assignee *string
	if userID != "" {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		assignee = &userID
	}

	if err := s.repo.UpdateAssignee(ctx, documentID, assignee); err != nil {
		return nil, err
	}

	if assignee != nil && doc.ExpiryDate != nil {
		if days := DaysUntil(s.now(), *doc.ExpiryDate); days > 0 {
			s.sendAssignmentReminder(ctx, doc, userID, days)
		}
	}

	return s.repo.FindByID(ctx, documentID)
}

// sendAssignmentReminder delivers the immediate on-assignment mail. Failures
// are logged and swallowed; the assignment itself already succeeded.
func (s *documentService) sendAssignmentReminder(ctx context.Context, doc *model.Document, userID string, days int) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Warn("assignment reminder: load user", zap.String("user_id", userID), zap.Error(err))
		return
	}
	parentName := doc.ParentID
	if parent, err := s.registers.FindByID(ctx, doc.Module, doc.ParentID); err == nil {
		parentName = parent.Title
	}
	r := email.Reminder{
		To:              user.Email,
		RecipientName:   user.Name,
		DocumentTitle:   doc.Title,
		ParentName:      parentName,
		ExpiryDate:      *doc.ExpiryDate,
		DocumentURL:     fmt.Sprintf("%s/api/documents/%s", s.baseURL, doc.ID),
		DaysUntilExpiry: days,
	}
	if err := s.mail.Send(ctx, r); err != nil {
		s.log.Warn("assignment reminder: send",
			zap.String("document_id", doc.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *documentService) SetExpiry(ctx context.Context, id string, expiry *time.Time) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.repo.UpdateExpiry(ctx, id, expiry); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	versions, err := s.repo.ListVersions(ctx, id)
	if err != nil {
		return err
	}

	// Row deletion first; orphaned objects are preferable to dangling rows.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	seen := map[string]bool{doc.StorageKey: false}
	for _, v := range versions {
		seen[v.StorageKey] = false
	}
	for key := range seen {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn("delete stored object", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
