package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// CanonicalJSON produces a deterministic compact encoding: every
// collection sorted by identifier, no insignificant whitespace, no HTML
// escaping. Two documents with the same content encode byte-identically
// regardless of the order rows were read in.
func CanonicalJSON(doc *Document) ([]byte, error) {
	return encode(sortedCopy(doc), false)
}

// PrettyJSON produces an indented encoding for humans, collections
// sorted the same way as CanonicalJSON.
func PrettyJSON(doc *Document) ([]byte, error) {
	return encode(sortedCopy(doc), true)
}

// ComputeRev hashes encoded snapshot bytes into a content revision,
// "sha256:<hex>".
func ComputeRev(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func encode(doc *Document, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	out := buf.Bytes()
	if !indent && len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}

// sortedCopy returns a document with every collection in a stable
// order. The input is left untouched.
func sortedCopy(doc *Document) *Document {
	out := *doc

	out.Projects = append([]ProjectEntry(nil), doc.Projects...)
	sort.Slice(out.Projects, func(i, j int) bool { return out.Projects[i].ID < out.Projects[j].ID })

	out.Sections = append([]SectionEntry(nil), doc.Sections...)
	sort.Slice(out.Sections, func(i, j int) bool { return out.Sections[i].ID < out.Sections[j].ID })

	out.Tasks = append([]TaskEntry(nil), doc.Tasks...)
	sort.Slice(out.Tasks, func(i, j int) bool { return out.Tasks[i].ID < out.Tasks[j].ID })

	out.Labels = append([]LabelEntry(nil), doc.Labels...)
	sort.Slice(out.Labels, func(i, j int) bool { return out.Labels[i].ID < out.Labels[j].ID })

	out.LabelAssignments = append([]LabelAssignmentEntry(nil), doc.LabelAssignments...)
	sort.Slice(out.LabelAssignments, func(i, j int) bool {
		a, b := out.LabelAssignments[i], out.LabelAssignments[j]
		if a.TaskID != b.TaskID {
			return a.TaskID < b.TaskID
		}
		return a.LabelID < b.LabelID
	})

	out.Comments = append([]CommentEntry(nil), doc.Comments...)
	sort.Slice(out.Comments, func(i, j int) bool { return out.Comments[i].ID < out.Comments[j].ID })

	out.Attachments = append([]AttachmentEntry(nil), doc.Attachments...)
	sort.Slice(out.Attachments, func(i, j int) bool { return out.Attachments[i].ID < out.Attachments[j].ID })

	out.Settings = append([]SettingEntry(nil), doc.Settings...)
	sort.Slice(out.Settings, func(i, j int) bool { return out.Settings[i].Key < out.Settings[j].Key })

	return &out
}
