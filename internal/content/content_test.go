package content

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/dojo/internal/domain"
)

func TestParsePageFrontMatter(t *testing.T) {
	page, err := ParsePage("/nmap", []byte("---\ntitle: Recon\nlesson: reconnaissance\norder: 2\n---\n\nBody text\n"))
	require.NoError(t, err)

	assert.Equal(t, "Recon", page.Title)
	assert.Equal(t, domain.LessonID("reconnaissance"), page.Lesson)
	assert.Equal(t, 2, page.Order)
	assert.Equal(t, "Body text", page.Body)
}

func TestParsePageWithoutFrontMatter(t *testing.T) {
	page, err := ParsePage("/enumeration", []byte("just text"))
	require.NoError(t, err)

	assert.Equal(t, "enumeration", page.Title)
	assert.Empty(t, page.Lesson)
	assert.Equal(t, "just text", page.Body)
}

func TestParsePageErrors(t *testing.T) {
	_, err := ParsePage("/x", []byte("---\ntitle: never closed\n"))
	assert.Error(t, err)

	_, err = ParsePage("/x", []byte("---\ntitle: [unbalanced\n---\nbody"))
	assert.Error(t, err)
}

func TestLessonContext(t *testing.T) {
	tests := []struct {
		name   string
		page   Page
		want   domain.LessonID
		wantOK bool
	}{
		{"metadata wins", Page{Path: "/nmap", Lesson: "reconnaissance"}, "reconnaissance", true},
		{"path segment", Page{Path: "/password_cracking"}, "password_cracking", true},
		{"home", Page{Path: "/"}, "", false},
		{"nested path", Page{Path: "/a/b"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.page.LessonContext()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadOrdersPages(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":      {Data: []byte("---\norder: 1\n---\nb")},
		"a.md":      {Data: []byte("---\norder: 2\n---\na")},
		"c.md":      {Data: []byte("c")},
		"notes.txt": {Data: []byte("ignored")},
	}

	lib, err := Load(fsys)
	require.NoError(t, err)

	var paths []string
	for _, p := range lib.Pages() {
		paths = append(paths, p.Path)
	}
	assert.Equal(t, []string{"/c", "/b", "/a"}, paths)
}

func TestBuiltinCoversDefaultCurriculum(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	for _, id := range domain.DefaultCurriculum.IDs() {
		assert.NotEmpty(t, lib.PagesFor(id), "no page teaches %s", id)
	}
	assert.Len(t, lib.PagesFor("exploitation"), 2)

	var credentialPaths []string
	for _, p := range lib.PagesFor("credential_attacks") {
		credentialPaths = append(credentialPaths, p.Path)
	}
	assert.Equal(t, []string{"/hydra", "/john"}, credentialPaths)

	page, err := lib.Page("nmap/")
	require.NoError(t, err)
	assert.Equal(t, "/nmap", page.Path)
	id, ok := page.LessonContext()
	assert.True(t, ok)
	assert.Equal(t, domain.LessonID("reconnaissance"), id)
}

func TestPageLookup(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	home, err := lib.Page("/")
	require.NoError(t, err)
	_, ok := home.LessonContext()
	assert.False(t, ok)

	_, err = lib.Page("/nope")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestSuggest(t *testing.T) {
	lib, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, "/password_cracking", first(lib.Suggest("/password")))
	assert.Equal(t, "/netcat", first(lib.Suggest("NETC")))
	assert.Empty(t, lib.Suggest("/"))
	assert.Empty(t, lib.Suggest("zzzz"))
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
