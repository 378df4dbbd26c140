package archive_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"uicss/archive"
)

type file struct {
	name    string
	content string
}

func makeZip(t *testing.T, files ...file) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		if strings.HasSuffix(f.name, "/") {
			if _, err := w.Create(f.name); err != nil {
				t.Fatal(err)
			}
			continue
		}
		fw, err := w.Create(f.name)
		if err != nil {
			t.Fatalf("create %s: %v", f.name, err)
		}
		if _, err := fw.Write([]byte(f.content)); err != nil {
			t.Fatalf("write %s: %v", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWalk(t *testing.T) {
	data := makeZip(t,
		file{name: "docs/"},
		file{"docs/index.html", `<p class="text-muted">`},
		file{"docs/guide/a.vue", "bg-default"},
		file{"docs2/b.html", "ring-bg"},
		file{"app.ts", "fill-inverted"},
	)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"docs/index.html", "docs/guide/a.vue", "docs2/b.html", "app.ts"}},
		{"docs", []string{"docs/index.html", "docs/guide/a.vue"}},
		{"docs/", []string{"docs/index.html", "docs/guide/a.vue"}},
		{"docs/index.html", []string{"docs/index.html"}},
		{"absent", nil},
	}
	for _, tt := range tests {
		t.Run("prefix "+tt.prefix, func(t *testing.T) {
			var visited []string
			err := archive.Walk(data, tt.prefix, func(e *archive.Entry) error {
				visited = append(visited, e.Name())
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !reflect.DeepEqual(visited, tt.want) {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}

	t.Run("read", func(t *testing.T) {
		var got string
		err := archive.Walk(data, "app.ts", func(e *archive.Entry) error {
			content, err := e.Read()
			got = string(content)
			return err
		})
		if err != nil || got != "fill-inverted" {
			t.Errorf("Read() = %q, %v", got, err)
		}
	})

	t.Run("stop", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		err := archive.Walk(data, "", func(*archive.Entry) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) || calls != 1 {
			t.Errorf("Walk() error = %v after %d calls", err, calls)
		}
	})
}

func TestWalk_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not a zip", []byte("not a zip file")},
		{"traversal", makeZip(t, file{"../evil.html", "x"})},
		{"absolute", makeZip(t, file{"/etc/evil.html", "x"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := archive.Walk(tt.data, "", func(*archive.Entry) error { return nil })
			if err == nil {
				t.Error("Expected error")
			}
		})
	}
}
