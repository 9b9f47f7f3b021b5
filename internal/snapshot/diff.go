package snapshot

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders a unified diff between two snapshot files. Both sides
// are re-encoded in sorted indented form first, so ordering and
// formatting differences between the files drop out and only content
// changes remain.
func Diff(pathA, pathB string) (string, error) {
	docA, err := Load(pathA)
	if err != nil {
		return "", err
	}
	docB, err := Load(pathB)
	if err != nil {
		return "", err
	}
	return DiffDocuments(docA, docB, pathA, pathB)
}

// DiffDocuments renders a unified diff between two already-parsed
// documents, labeled with the given names.
func DiffDocuments(docA, docB *Document, nameA, nameB string) (string, error) {
	a, err := diffLines(docA)
	if err != nil {
		return "", err
	}
	b, err := diffLines(docB)
	if err != nil {
		return "", err
	}

	diff := difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: nameA,
		ToFile:   nameB,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}
	return text, nil
}

func diffLines(doc *Document) ([]string, error) {
	data, err := PrettyJSON(doc)
	if err != nil {
		return nil, err
	}
	return difflib.SplitLines(string(data)), nil
}
