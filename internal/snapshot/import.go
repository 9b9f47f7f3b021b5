package snapshot

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/id"
	"github.com/tasknest/tasknest/internal/settings"
	"github.com/tasknest/tasknest/internal/storage"
)

// errDryRun forces the rollback of a dry-run import after the full
// merge has executed.
var errDryRun = errors.New("dry run rollback")

// Load reads and parses a snapshot file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Parse(data)
}

// Parse decodes a snapshot document. Unparseable input counts as
// corruption.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &doc, nil
}

// ImportFile loads the snapshot at opts.InputPath and merges it into
// the dataset.
func ImportFile(st storage.Store, opts ImportOptions) (*ImportResult, error) {
	doc, err := Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	return Import(st, doc, opts)
}

// Import merges a document into the live dataset. The whole merge runs
// in one transaction: corruption aborts and rolls back everything,
// while per-row problems (unresolved parents, payload size mismatches,
// invalid settings) drop just that row and surface only in the skipped
// counts. Every imported row receives an identifier that cannot collide
// with existing data.
func Import(st storage.Store, doc *Document, opts ImportOptions) (*ImportResult, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	result := &ImportResult{
		InputPath: opts.InputPath,
		DryRun:    opts.DryRun,
	}

	err := st.RunInTransaction(func(tx storage.Dataset) error {
		im := newImporter(tx, doc)
		if err := im.run(); err != nil {
			return err
		}
		result.Counts = im.counts
		result.Skipped = im.skipped

		if err := logSnapshotEvent(tx.Events(), "snapshot.imported", result); err != nil {
			return err
		}

		if opts.DryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		return nil, err
	}
	return result, nil
}

// importer carries the per-call state of one merge pass: the remap
// tables, the shared identifier allocator, and the running counts. All
// of it is discarded when the call returns.
type importer struct {
	tx    storage.Dataset
	doc   *Document
	alloc *id.Allocator

	projectRemap map[string]string
	sectionRemap map[string]string
	taskRemap    map[string]string
	labelRemap   map[string]string

	counts  map[string]int
	skipped map[string]int
}

func newImporter(tx storage.Dataset, doc *Document) *importer {
	counts := map[string]int{
		"projects":         0,
		"sections":         0,
		"tasks":            0,
		"labels":           0,
		"labelAssignments": 0,
		"comments":         0,
		"attachments":      0,
	}
	if doc.Settings != nil {
		counts["settings"] = 0
	}
	return &importer{
		tx:           tx,
		doc:          doc,
		alloc:        id.NewAllocator(),
		projectRemap: make(map[string]string),
		sectionRemap: make(map[string]string),
		taskRemap:    make(map[string]string),
		labelRemap:   make(map[string]string),
		counts:       counts,
		skipped:      make(map[string]int),
	}
}

// run executes the merge stages in dependency order. Each stage may
// only reference identifiers resolved by an earlier one.
func (im *importer) run() error {
	if err := im.importProjects(); err != nil {
		return fmt.Errorf("failed to import projects: %w", err)
	}
	if err := im.importSections(); err != nil {
		return fmt.Errorf("failed to import sections: %w", err)
	}
	if err := im.importTasks(); err != nil {
		return fmt.Errorf("failed to import tasks: %w", err)
	}
	if err := im.importLabels(); err != nil {
		return fmt.Errorf("failed to import labels: %w", err)
	}
	if err := im.importComments(); err != nil {
		return fmt.Errorf("failed to import comments: %w", err)
	}
	if err := im.importAttachments(); err != nil {
		return fmt.Errorf("failed to import attachments: %w", err)
	}
	if err := im.importSettings(); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}
	return nil
}

// resolve translates a parent reference. The remap table wins; a
// reference that misses it but matches a live row resolves to that row,
// so a partial document can re-attach to the dataset it was exported
// from. Anything else is unresolved.
func (im *importer) resolve(remap map[string]string, exists func(id string) (bool, error), origID string) (string, bool, error) {
	if newID, ok := remap[origID]; ok {
		return newID, true, nil
	}
	ok, err := exists(origID)
	if err != nil {
		return "", false, err
	}
	if ok {
		return origID, true, nil
	}
	return "", false, nil
}

// Projects always import as distinct new rows; they are never merged
// with existing projects by name.
func (im *importer) importProjects() error {
	for _, entry := range im.doc.Projects {
		newID := im.alloc.Next()
		p := &domain.Project{
			ID:        newID,
			Name:      entry.Name,
			SortOrder: entry.Order,
		}
		if entry.Attributes != "" {
			attrs := entry.Attributes
			p.Attributes = &attrs
		}
		if err := im.tx.Projects().Create(p); err != nil {
			return err
		}
		im.projectRemap[entry.ID] = newID
		im.counts["projects"]++
	}
	return nil
}

func (im *importer) importSections() error {
	for _, entry := range im.doc.Sections {
		projectID, ok, err := im.resolve(im.projectRemap, im.tx.Projects().Exists, entry.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			im.skipped["sections"]++
			continue
		}
		newID := im.alloc.Next()
		s := &domain.Section{
			ID:          newID,
			ProjectID:   projectID,
			Name:        entry.Name,
			SortOrder:   entry.Order,
			IsCollapsed: entry.IsCollapsed,
		}
		if err := im.tx.Sections().Create(s); err != nil {
			return err
		}
		im.sectionRemap[entry.ID] = newID
		im.counts["sections"]++
	}
	return nil
}

// A task is never dropped for a missing parent: an unresolved project
// or section reference just becomes "no project"/"no section".
func (im *importer) importTasks() error {
	for _, entry := range im.doc.Tasks {
		var projectID, sectionID *string
		if entry.ProjectID != nil {
			resolved, ok, err := im.resolve(im.projectRemap, im.tx.Projects().Exists, *entry.ProjectID)
			if err != nil {
				return err
			}
			if ok {
				projectID = &resolved
			}
		}
		if entry.SectionID != nil {
			resolved, ok, err := im.resolve(im.sectionRemap, im.tx.Sections().Exists, *entry.SectionID)
			if err != nil {
				return err
			}
			if ok {
				sectionID = &resolved
			}
		}

		newID := im.alloc.Next()
		task := &domain.Task{
			ID:          newID,
			ProjectID:   projectID,
			SectionID:   sectionID,
			Content:     entry.Content,
			Completed:   entry.Completed,
			CompletedAt: millisToTimePtr(entry.CompletedAt),
			DueAt:       millisToTimePtr(entry.DueAt),
			SortOrder:   entry.Order,
		}
		if entry.CreatedAt > 0 {
			task.CreatedAt = MillisToTime(entry.CreatedAt)
		}
		if err := im.tx.Tasks().Create(task); err != nil {
			return err
		}
		im.taskRemap[entry.ID] = newID
		im.counts["tasks"]++
	}
	return nil
}

// Labels import with fresh identifiers, then associations are
// re-created for every pair whose task and label both resolved.
func (im *importer) importLabels() error {
	for _, entry := range im.doc.Labels {
		newID := im.alloc.Next()
		l := &domain.Label{ID: newID, Name: entry.Name}
		if entry.Color != nil {
			color := *entry.Color
			l.Color = &color
		}
		if err := im.tx.Labels().Create(l); err != nil {
			return err
		}
		im.labelRemap[entry.ID] = newID
		im.counts["labels"]++
	}

	for _, entry := range im.doc.LabelAssignments {
		taskID, ok, err := im.resolve(im.taskRemap, im.tx.Tasks().Exists, entry.TaskID)
		if err != nil {
			return err
		}
		if !ok {
			im.skipped["labelAssignments"]++
			continue
		}
		labelID, ok, err := im.resolve(im.labelRemap, im.tx.Labels().Exists, entry.LabelID)
		if err != nil {
			return err
		}
		if !ok {
			im.skipped["labelAssignments"]++
			continue
		}
		if err := im.tx.Labels().Assign(taskID, labelID); err != nil {
			return err
		}
		im.counts["labelAssignments"]++
	}
	return nil
}

func (im *importer) importComments() error {
	for _, entry := range im.doc.Comments {
		taskID, ok, err := im.resolve(im.taskRemap, im.tx.Tasks().Exists, entry.TaskID)
		if err != nil {
			return err
		}
		if !ok {
			im.skipped["comments"]++
			continue
		}
		c := &domain.Comment{
			ID:      im.alloc.Next(),
			TaskID:  taskID,
			Content: entry.Content,
		}
		if entry.CreatedAt > 0 {
			c.CreatedAt = MillisToTime(entry.CreatedAt)
		}
		if err := im.tx.Comments().Create(c); err != nil {
			return err
		}
		im.counts["comments"]++
	}
	return nil
}

// Attachments keep their original identifier when it is still free in
// the destination; on collision the row is inserted again under a
// fresh one. Repeating an import therefore adds new copies instead of
// overwriting or failing.
func (im *importer) importAttachments() error {
	for _, entry := range im.doc.Attachments {
		taskID, ok, err := im.resolve(im.taskRemap, im.tx.Tasks().Exists, entry.TaskID)
		if err != nil {
			return err
		}
		if !ok {
			im.skipped["attachments"]++
			continue
		}

		data, err := base64.StdEncoding.DecodeString(entry.DataBase64)
		if err != nil {
			return fmt.Errorf("%w: attachment %s payload is not valid base64", ErrCorrupt, entry.ID)
		}
		if int64(len(data)) != entry.Size {
			im.skipped["attachments"]++
			continue
		}

		attachmentID := entry.ID
		taken, err := im.tx.Attachments().Exists(attachmentID)
		if err != nil {
			return err
		}
		if taken || !im.alloc.Reserve(attachmentID) {
			attachmentID = im.alloc.Next()
		}

		a := &domain.Attachment{
			ID:        attachmentID,
			TaskID:    taskID,
			Filename:  entry.Filename,
			MimeType:  entry.MimeType,
			SizeBytes: entry.Size,
			Data:      data,
		}
		if entry.CreatedAt > 0 {
			a.CreatedAt = MillisToTime(entry.CreatedAt)
		}
		if err := im.tx.Attachments().Create(a); err != nil {
			return err
		}
		im.counts["attachments"]++
	}
	return nil
}

// Settings pass through the same validator as direct writes; there is
// no weaker import path. Invalid pairs are skipped, valid ones upsert.
func (im *importer) importSettings() error {
	if im.doc.Settings == nil {
		return nil
	}
	for _, entry := range im.doc.Settings {
		key, value, err := settings.Validate(entry.Key, entry.Value)
		if err != nil {
			im.skipped["settings"]++
			continue
		}
		if err := im.tx.Settings().Put(key, value); err != nil {
			return err
		}
		im.counts["settings"]++
	}
	return nil
}

// validateDocument checks document structure before any write happens.
// Referential problems are per-row concerns for the merge stages; this
// only rejects what makes the document unusable as a whole.
func validateDocument(doc *Document) error {
	if doc.FormatVersion < 1 {
		return fmt.Errorf("%w: formatVersion %d", ErrCorrupt, doc.FormatVersion)
	}

	collections := []struct {
		name    string
		present bool
	}{
		{"projects", doc.Projects != nil},
		{"sections", doc.Sections != nil},
		{"tasks", doc.Tasks != nil},
		{"labels", doc.Labels != nil},
		{"labelAssignments", doc.LabelAssignments != nil},
		{"comments", doc.Comments != nil},
		{"attachments", doc.Attachments != nil},
	}
	for _, c := range collections {
		if !c.present {
			return fmt.Errorf("%w: missing %s collection", ErrCorrupt, c.name)
		}
	}

	for i, p := range doc.Projects {
		if p.ID == "" {
			return fmt.Errorf("%w: projects[%d] has no id", ErrCorrupt, i)
		}
	}
	for i, s := range doc.Sections {
		if s.ID == "" || s.ProjectID == "" {
			return fmt.Errorf("%w: sections[%d] is missing id or projectId", ErrCorrupt, i)
		}
	}
	for i, t := range doc.Tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: tasks[%d] has no id", ErrCorrupt, i)
		}
	}
	for i, l := range doc.Labels {
		if l.ID == "" {
			return fmt.Errorf("%w: labels[%d] has no id", ErrCorrupt, i)
		}
	}
	for i, a := range doc.LabelAssignments {
		if a.TaskID == "" || a.LabelID == "" {
			return fmt.Errorf("%w: labelAssignments[%d] is missing taskId or labelId", ErrCorrupt, i)
		}
	}
	for i, c := range doc.Comments {
		if c.ID == "" || c.TaskID == "" {
			return fmt.Errorf("%w: comments[%d] is missing id or taskId", ErrCorrupt, i)
		}
	}
	for i, a := range doc.Attachments {
		if a.ID == "" || a.TaskID == "" || a.Filename == "" {
			return fmt.Errorf("%w: attachments[%d] is missing id, taskId, or filename", ErrCorrupt, i)
		}
	}
	return nil
}
