package batch

import (
	stderrors "errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/arthur-debert/varsub/pkg/backup"
	"github.com/arthur-debert/varsub/pkg/document"
	"github.com/arthur-debert/varsub/pkg/notify"
	"github.com/arthur-debert/varsub/pkg/store"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/arthur-debert/varsub/pkg/variables"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marker(name, value string) string {
	return `<span class="var-start">` + name + `</span>` + value + `<span class="var-end">` + name + `</span>`
}

// orderedStore records the order of copies and writes
type orderedStore struct {
	types.DocumentStore
	ops       []string
	failWrite map[string]bool
}

func (o *orderedStore) Copy(src, dst string) error {
	o.ops = append(o.ops, "backup "+src)
	return o.DocumentStore.Copy(src, dst)
}

func (o *orderedStore) WriteText(p, content string) error {
	if o.failWrite[p] {
		return stderrors.New("disk full")
	}
	o.ops = append(o.ops, "write "+p)
	return o.DocumentStore.WriteText(p, content)
}

func newStore(t *testing.T, files map[string]string) *orderedStore {
	t.Helper()
	s := &orderedStore{DocumentStore: store.NewAfero(afero.NewMemMapFs()), failWrite: map[string]bool{}}
	for p, content := range files {
		require.NoError(t, s.DocumentStore.WriteText(p, content))
	}
	return s
}

func docs(t *testing.T, s types.DocumentStore) []types.FileDescriptor {
	t.Helper()
	files, err := s.ListFiles(true)
	require.NoError(t, err)
	return Select(files, Selection{Extensions: []string{"md"}, VariableFile: "vars.txt", BackupFolder: "backups"})
}

func TestRunWithBackups(t *testing.T) {
	s := newStore(t, map[string]string{
		"a.md":       marker("name", "old"),
		"b.md":       "no markers here",
		"notes/c.md": "x\n" + marker("city", "old"),
	})
	rec := &notify.Recorder{}
	sub := document.New(s, rec, document.Options{Backup: backup.New(s, "backups")})
	o := New(sub, rec, false)
	o.newRunID = func() string { return "run-1" }

	summary := o.Run(docs(t, s), variables.Parse("name:Alice\ncity:Paris"))

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.UpdatedCount)
	assert.Equal(t, 3, summary.Processed)
	assert.Empty(t, summary.Failed)
	assert.Empty(t, summary.Documents)

	assert.Equal(t, []string{
		"backup a.md",
		"write a.md",
		"backup notes/c.md",
		"write notes/c.md",
	}, s.ops)
	assert.True(t, s.Exists("backups/a.md.bak"))
	assert.True(t, s.Exists("backups/c.md.bak"))
	assert.False(t, s.Exists("backups/b.md.bak"))

	assert.Equal(t, []string{document.MsgSubstitutionDone}, rec.Messages())
}

func TestRunNothingUpdated(t *testing.T) {
	s := newStore(t, map[string]string{"a.md": marker("name", "Alice")})
	rec := &notify.Recorder{}

	summary := New(document.New(s, rec, document.Options{}), rec, false).
		Run(docs(t, s), variables.Parse("name:Alice"))

	assert.Equal(t, 0, summary.UpdatedCount)
	assert.Equal(t, []string{document.MsgNothingUpdated}, rec.Messages())
}

func TestRunContinuesAfterFailure(t *testing.T) {
	s := newStore(t, map[string]string{
		"a.md": marker("name", "old"),
		"b.md": marker("name", "old"),
		"c.md": marker("name", "old"),
	})
	s.failWrite["b.md"] = true
	rec := &notify.Recorder{}

	summary := New(document.New(s, rec, document.Options{}), rec, false).
		Run(docs(t, s), variables.Parse("name:new"))

	assert.Equal(t, 2, summary.UpdatedCount)
	assert.Equal(t, 3, summary.Processed)
	require.Contains(t, summary.Failed, "b.md")
	assert.Contains(t, summary.Failed["b.md"], "disk full")
	assert.Equal(t, []string{"write a.md", "write c.md"}, s.ops)
	assert.Equal(t, []string{"Failed to write b.md", document.MsgSubstitutionDone}, rec.Messages())
}

func TestRunDebugKeepsStatuses(t *testing.T) {
	s := newStore(t, map[string]string{
		"a.md": marker("name", "old"),
		"b.md": "plain",
		"c.md": marker("zip", "old"),
	})
	rec := &notify.Recorder{}

	summary := New(document.New(s, rec, document.Options{}), rec, true).
		Run(docs(t, s), variables.Parse("name:new"))

	require.Len(t, summary.Documents, 2)
	assert.True(t, summary.Documents["a.md"].Modified)
	assert.Equal(t, "zip is not defined", summary.Documents["c.md"].Variables["zip"].Error)
	assert.NotContains(t, summary.Documents, "b.md")
}

func TestSelect(t *testing.T) {
	files := []types.FileDescriptor{
		types.NewFileDescriptor("z.md"),
		types.NewFileDescriptor("vars.txt"),
		types.NewFileDescriptor("image.png"),
		types.NewFileDescriptor("backups/a.md.bak"),
		types.NewFileDescriptor("backups/old.md"),
		types.NewFileDescriptor("B.md"),
		types.NewFileDescriptor("notes/a.MD"),
		types.NewFileDescriptor("a.md"),
	}

	got := Select(files, Selection{Extensions: []string{".md"}, VariableFile: "/vars.txt", BackupFolder: "backups/"})

	var selected []string
	for _, f := range got {
		selected = append(selected, f.Path)
	}
	assert.Equal(t, []string{"B.md", "a.md", "notes/a.MD", "z.md"}, selected)
}

func TestSelectExcludesVariableFileWithSameExtension(t *testing.T) {
	files := []types.FileDescriptor{
		types.NewFileDescriptor("meta/variables.md"),
		types.NewFileDescriptor("note.md"),
	}
	got := Select(files, Selection{Extensions: []string{"md"}, VariableFile: "meta/variables.md"})
	require.Len(t, got, 1)
	assert.Equal(t, "note.md", got[0].Path)
}

func TestSelectSortingIsIndependentOfInputOrder(t *testing.T) {
	paths := []string{"b/a.md", "a/z.md", "a.md", "a/b/c.md", "ab.md", "A.md", "_.md", "a-b.md"}
	want := append([]string(nil), paths...)
	sort.Strings(want)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		r.Shuffle(len(paths), func(a, b int) { paths[a], paths[b] = paths[b], paths[a] })

		files := make([]types.FileDescriptor, len(paths))
		for j, p := range paths {
			files[j] = types.NewFileDescriptor(p)
		}

		var got []string
		for _, f := range Select(files, Selection{}) {
			got = append(got, f.Path)
		}
		assert.Equal(t, want, got)
	}
}
