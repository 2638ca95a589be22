package fatnav

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func testingFs(t *testing.T) *Fs {
	t.Helper()
	v, _, _ := testingOpen(t, newDirTestImage().im)
	return NewFs(v)
}

func TestFs_ReadFile(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{name: "long names", path: "/My Photos/2023/beach.jpg", want: "sand"},
		{name: "short names", path: "MYPHOT~1/2023/BEACH.JPG", want: "sand"},
		{name: "relative and unclean", path: "My Photos/../report", want: "numbers"},
		{name: "missing file", path: "/My Photos/nope.txt", wantErr: os.ErrNotExist},
		{name: "file as directory", path: "/report/x", wantErr: os.ErrNotExist},
		{name: "name too long", path: "/" + strings.Repeat("x", DefaultMaxNameLen+1), wantErr: os.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := afero.ReadFile(testingFs(t), tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReadFile() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFs_NotExist(t *testing.T) {
	fs := testingFs(t)

	_, err := fs.Stat("/nope")
	if !os.IsNotExist(err) {
		t.Errorf("Fs.Stat() error = %v, want os.IsNotExist", err)
	}

	exists, err := afero.Exists(fs, "/nope")
	if exists || err != nil {
		t.Errorf("afero.Exists() = %v, %v", exists, err)
	}
}

func TestFs_ReadDir(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "root", path: "/", want: []string{"B", "B2", "My Photos", "report"}},
		{name: "empty path is the root", path: "", want: []string{"B", "B2", "My Photos", "report"}},
		{name: "sub directory", path: "/My Photos", want: []string{"2023"}},
		{name: "empty directory", path: "/B2", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infos, err := afero.ReadDir(testingFs(t), tt.path)
			if err != nil {
				t.Fatalf("ReadDir() error = %v", err)
			}

			var got []string
			for _, info := range infos {
				got = append(got, info.Name())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadDir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFs_Walk(t *testing.T) {
	var got []string
	err := afero.Walk(testingFs(t), "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		got = append(got, filepath.ToSlash(path))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{
		"/",
		"/B",
		"/B2",
		"/My Photos",
		"/My Photos/2023",
		"/My Photos/2023/beach.jpg",
		"/report",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}
}

func TestFs_Stat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantName string
		wantDir  bool
		wantSize int64
	}{
		{name: "root", path: "/", wantName: "/", wantDir: true},
		{name: "directory", path: "/My Photos/2023", wantName: "2023", wantDir: true},
		{name: "file", path: "/report", wantName: "report", wantSize: 7},
		{name: "file by short name", path: "/REPORT", wantName: "report", wantSize: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testingFs(t).Stat(tt.path)
			if err != nil {
				t.Fatalf("Fs.Stat() error = %v", err)
			}
			if got.Name() != tt.wantName || got.IsDir() != tt.wantDir || got.Size() != tt.wantSize {
				t.Errorf("Fs.Stat() = %v %v %v, want %v %v %v", got.Name(), got.IsDir(), got.Size(), tt.wantName, tt.wantDir, tt.wantSize)
			}
		})
	}
}

func TestFs_OpenFile(t *testing.T) {
	tests := []struct {
		name    string
		flag    int
		wantErr error
	}{
		{name: "read only", flag: os.O_RDONLY},
		{name: "write only", flag: os.O_WRONLY, wantErr: syscall.EROFS},
		{name: "read write", flag: os.O_RDWR, wantErr: syscall.EROFS},
		{name: "create", flag: os.O_RDONLY | os.O_CREATE, wantErr: syscall.EROFS},
		{name: "append", flag: os.O_WRONLY | os.O_APPEND, wantErr: syscall.EROFS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := testingFs(t).OpenFile("/report", tt.flag, 0644)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Fs.OpenFile() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fs.OpenFile() error = %v", err)
			}
			f.Close()
		})
	}
}

func TestFs_ReadOnly(t *testing.T) {
	fs := testingFs(t)

	tests := []struct {
		name string
		call func() error
	}{
		{name: "Create", call: func() error { _, err := fs.Create("/new"); return err }},
		{name: "Mkdir", call: func() error { return fs.Mkdir("/new", 0755) }},
		{name: "MkdirAll", call: func() error { return fs.MkdirAll("/new/sub", 0755) }},
		{name: "Remove", call: func() error { return fs.Remove("/report") }},
		{name: "RemoveAll", call: func() error { return fs.RemoveAll("/My Photos") }},
		{name: "Rename", call: func() error { return fs.Rename("/report", "/other") }},
		{name: "Chmod", call: func() error { return fs.Chmod("/report", 0600) }},
		{name: "Chown", call: func() error { return fs.Chown("/report", 1, 1) }},
		{name: "Chtimes", call: func() error { return fs.Chtimes("/report", time.Now(), time.Now()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, syscall.EROFS) {
				t.Errorf("Fs.%v() error = %v, wantErr %v", tt.name, err, syscall.EROFS)
			}
		})
	}
}

func TestFs_Name(t *testing.T) {
	if got := (&Fs{}).Name(); got != "fatnav" {
		t.Errorf("Fs.Name() = %v, want %v", got, "fatnav")
	}
}

func Test_components(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{name: "", want: nil},
		{name: "/", want: nil},
		{name: ".", want: nil},
		{name: "a/b", want: []string{"a", "b"}},
		{name: "/a//b/", want: []string{"a", "b"}},
		{name: "/a/../b", want: []string{"b"}},
		{name: "/../a", want: []string{"a"}},
		{name: `a\b`, want: []string{`a\b`}},
	}
	for _, tt := range tests {
		if got := components(tt.name); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("components(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
