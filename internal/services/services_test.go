package services

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"

	"podder.dev/internal/metrics"
	"podder.dev/internal/models"
	"podder.dev/internal/render"
	"podder.dev/internal/resume"
	"podder.dev/internal/store"
)

func strPtr(s string) *string { return &s }

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return s
}

func threeProjects(t *testing.T, s *store.Store) {
	t.Helper()
	err := s.Projects.Save(models.ProjectList{Projects: []models.Project{
		{ID: "1", Title: "One", Technologies: []string{}},
		{ID: "2", Title: "Two", Technologies: []string{}},
		{ID: "3", Title: "Three", Technologies: []string{}},
	}})
	if err != nil {
		t.Fatal(err)
	}
}

func TestProjectCreateAssignsFreshID(t *testing.T) {
	s := newStore(t)
	svc := NewProjectService(s.Projects)

	before, err := svc.GetAll()
	if err != nil {
		t.Fatal(err)
	}

	created, err := svc.Create(models.ProjectPatch{Title: strPtr("New")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created project has empty id")
	}
	for _, p := range before.Projects {
		if p.ID == created.ID {
			t.Fatalf("id %s already in use", created.ID)
		}
	}
	if created.Technologies == nil {
		t.Error("technologies should default to an empty list")
	}

	after, _ := svc.GetAll()
	if len(after.Projects) != len(before.Projects)+1 {
		t.Fatalf("got %d projects, want %d", len(after.Projects), len(before.Projects)+1)
	}
	if last := after.Projects[len(after.Projects)-1]; last.ID != created.ID || last.Title != "New" {
		t.Errorf("new project not appended: %+v", last)
	}
}

func TestProjectUpdateKeepsUnsetFields(t *testing.T) {
	s := newStore(t)
	svc := NewProjectService(s.Projects)
	orig, err := svc.GetByID("1")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update("1", models.ProjectPatch{Title: strPtr("X")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "X" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Description != orig.Description ||
		!reflect.DeepEqual(updated.Technologies, orig.Technologies) ||
		updated.GitHubLink != orig.GitHubLink || updated.DemoLink != orig.DemoLink ||
		updated.CodeSnippet != orig.CodeSnippet {
		t.Errorf("unset fields changed:\nbefore %+v\nafter  %+v", orig, updated)
	}

	stored, _ := svc.GetByID("1")
	if stored.Title != "X" {
		t.Error("update not persisted")
	}
}

func TestProjectUpdateMissing(t *testing.T) {
	svc := NewProjectService(newStore(t).Projects)
	if _, err := svc.Update("nope", models.ProjectPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestProjectDeleteRemovesExactlyOne(t *testing.T) {
	s := newStore(t)
	threeProjects(t, s)
	svc := NewProjectService(s.Projects)

	deleted, err := svc.Delete("2")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != "2" {
		t.Errorf("deleted %q", deleted.ID)
	}

	list, _ := svc.GetAll()
	var ids []string
	for _, p := range list.Projects {
		ids = append(ids, p.ID)
	}
	if !reflect.DeepEqual(ids, []string{"1", "3"}) {
		t.Errorf("ids = %v", ids)
	}

	if _, err := svc.Delete("2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	list, _ = svc.GetAll()
	if len(list.Projects) != 2 {
		t.Errorf("list changed by failed delete: %d", len(list.Projects))
	}
}

func TestPortfolioGetIsStable(t *testing.T) {
	svc := NewPortfolioService(newStore(t).Portfolio)
	a, err := svc.Get()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := svc.Get()
	if !reflect.DeepEqual(a, b) {
		t.Error("two reads differ")
	}
}

func TestPortfolioUpdateMerges(t *testing.T) {
	svc := NewPortfolioService(newStore(t).Portfolio)

	p, err := svc.Update(models.PortfolioPatch{
		Personal:       &models.PersonalPatch{Title: strPtr("Data Scientist")},
		Skills:         models.Skills{{Name: "cloud", Items: []string{"GCP"}}},
		Certifications: &[]string{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Personal.Name != "Deep Podder" || p.Personal.Title != "Data Scientist" {
		t.Errorf("personal = %+v", p.Personal)
	}
	if items, ok := p.Skills.Get("programming"); !ok || len(items) == 0 {
		t.Error("existing skill category lost")
	}
	if p.Skills[len(p.Skills)-1].Name != "cloud" {
		t.Error("new category not appended")
	}
	if len(p.Certifications) != 0 {
		t.Errorf("certifications not replaced: %v", p.Certifications)
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	dir := t.TempDir()
	m := metrics.New("test")
	svc := NewUploadService(dir, "/static/uploads", nil, m, zaptest.NewLogger(t))

	_, err := svc.Save("a.exe", strings.NewReader("MZ"))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("files written for rejected upload: %v", entries)
	}
	if got := testutil.ToFloat64(m.UploadsTotal().WithLabelValues(metrics.ResultRejected)); got != 1 {
		t.Errorf("rejected uploads = %v", got)
	}
}

func TestUploadStoresPrefixedFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir, "/static/uploads", nil, nil, nil)
	svc.newID = func() string { return "abc" }

	up, err := svc.Save("My Photo.PNG", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if up.Filename != "abc_My_Photo.PNG" {
		t.Errorf("filename = %q", up.Filename)
	}
	if up.URL != "/static/uploads/abc_My_Photo.PNG" {
		t.Errorf("url = %q", up.URL)
	}
	data, err := os.ReadFile(filepath.Join(dir, up.Filename))
	if err != nil || string(data) != "png-bytes" {
		t.Errorf("stored content = %q, %v", data, err)
	}

	up, err = svc.Save("日本.webp", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if up.Filename != "abc_upload.webp" {
		t.Errorf("fallback filename = %q", up.Filename)
	}
}

func TestUploadEmptyName(t *testing.T) {
	svc := NewUploadService(t.TempDir(), "/static/uploads", nil, nil, nil)
	_, err := svc.Save("", strings.NewReader(""))
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Msg != "No file selected" {
		t.Errorf("err = %v", err)
	}
}

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"My cool movie.mov":          "My_cool_movie.mov",
		"../../../etc/passwd":        "etc_passwd",
		"i contain cool ümläuts.txt": "i_contain_cool_umlauts.txt",
		"résumé.png":                 "resume.png",
		"..hidden.":                  "hidden",
	}
	for in, want := range cases {
		if got := SecureFilename(in); got != want {
			t.Errorf("SecureFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2024, time.January, 5, 15, 4, 0, 0, time.UTC)
	if got := Filename("Deep Podder", day); got != "Deep_Podder_Resume_20240105.pdf" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("", day); got != "Resume_Resume_20240105.pdf" {
		t.Errorf("empty name Filename = %q", got)
	}
	if got := Filename("../../etc/Deep Podder", day); got != "etc_Deep_Podder_Resume_20240105.pdf" {
		t.Errorf("path name Filename = %q", got)
	}
	if got := Filename("/", day); got != "Resume_Resume_20240105.pdf" {
		t.Errorf("separator-only name Filename = %q", got)
	}
	if strings.ContainsAny(Filename(`..\x/..`, day), `/\`) {
		t.Error("separator survived")
	}
}

type failingRenderer struct{}

func (failingRenderer) Bytes(resume.Document) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestResumeBuild(t *testing.T) {
	s := newStore(t)
	m := metrics.New("test")
	svc := NewResumeService(s.Portfolio, s.Projects, render.New(), m, zaptest.NewLogger(t))
	svc.now = func() time.Time { return time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC) }

	f, err := svc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.Name != "Deep_Podder_Resume_20240105.pdf" {
		t.Errorf("name = %q", f.Name)
	}
	if !strings.HasPrefix(string(f.Data), "%PDF-") {
		t.Error("data is not a PDF")
	}
	if got := testutil.ToFloat64(m.RendersTotal().WithLabelValues(metrics.ResultSuccess)); got != 1 {
		t.Errorf("successful renders = %v", got)
	}
}

func TestResumeBuildRenderFailure(t *testing.T) {
	s := newStore(t)
	m := metrics.New("test")
	svc := NewResumeService(s.Portfolio, s.Projects, failingRenderer{}, m, nil)

	if _, err := svc.Build(); err == nil {
		t.Fatal("expected error")
	}
	if got := testutil.ToFloat64(m.RendersTotal().WithLabelValues(metrics.ResultError)); got != 1 {
		t.Errorf("failed renders = %v", got)
	}
}

func TestResumePreview(t *testing.T) {
	s := newStore(t)
	svc := NewResumeService(s.Portfolio, s.Projects, render.New(), nil, nil)

	prev, err := svc.Preview()
	if err != nil {
		t.Fatal(err)
	}
	if prev.Personal.Name != "Deep Podder" || len(prev.Projects) != 5 {
		t.Errorf("unexpected preview: %+v", prev.Personal)
	}
	if len(prev.Blocks) == 0 || prev.Blocks[0].Text() != "Deep Podder" {
		t.Error("preview blocks do not start with the name")
	}
}
