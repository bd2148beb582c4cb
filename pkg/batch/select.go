package batch

import (
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/varsub/pkg/types"
)

// Selection describes which store files take part in a batch
type Selection struct {
	// Extensions lists accepted extensions without the leading dot.
	// Empty accepts every file.
	Extensions []string
	// VariableFile is the definitions source, never substituted
	VariableFile string
	// BackupFolder contents are never substituted
	BackupFolder string
}

// Select filters files and sorts them by path, ascending byte-wise
func Select(files []types.FileDescriptor, sel Selection) []types.FileDescriptor {
	exts := make(map[string]bool, len(sel.Extensions))
	for _, ext := range sel.Extensions {
		exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	variableFile := clean(sel.VariableFile)
	backupFolder := clean(sel.BackupFolder)

	selected := make([]types.FileDescriptor, 0, len(files))
	for _, f := range files {
		if len(exts) > 0 && !exts[strings.ToLower(f.Extension)] {
			continue
		}
		if variableFile != "" && f.Path == variableFile {
			continue
		}
		if backupFolder != "" && strings.HasPrefix(f.Path, backupFolder+"/") {
			continue
		}
		selected = append(selected, f)
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Path < selected[j].Path
	})
	return selected
}

func clean(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	return strings.Trim(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
}
