package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aligator/fatnav"
	"github.com/aligator/fatnav/internal/fattest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// testingFs holds an image at /sd.img and optionally a config at /config.yml.
func testingFs(t *testing.T, config string) afero.Fs {
	t.Helper()

	im := fattest.New(fattest.Options{BootSector: 63})
	photos := im.Root().Mkdir("My Photos", "MYPHOT~1")
	photos.File("beach.jpg", "BEACH.JPG", []byte("sand"))
	im.Root().File("", "README.TXT", []byte("hello"))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sd.img", im.Bytes(), 0644))
	if config != "" {
		require.NoError(t, afero.WriteFile(fs, "/config.yml", []byte(config), 0644))
	}
	return fs
}

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(fs)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", "/config.yml"}, args...))
	err := root.Execute()
	return out.String(), err
}

// lines collapses the padding of tabwriter.
func lines(out string) []string {
	var result []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		result = append(result, strings.Join(strings.Fields(line), " "))
	}
	return result
}

func TestLs(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   []string
	}{
		{
			name: "default fields",
			args: []string{"--image", "/sd.img", "ls"},
			want: []string{"d 0 - My Photos", "- 5 - README.TXT"},
		},
		{
			name: "sub directory",
			args: []string{"--image", "/sd.img", "ls", "--fields", "long", "My Photos"},
			want: []string{".", "..", "beach.jpg"},
		},
		{
			name: "slash separated",
			args: []string{"--image", "/sd.img", "ls", "-f", "short", "/MYPHOT~1/"},
			want: []string{".", "..", "BEACH.JPG"},
		},
		{
			name:   "config",
			config: "image: /sd.img\nfields: [short]\n",
			args:   []string{"ls"},
			want:   []string{"MYPHOT~1", "README.TXT"},
		},
		{
			name:   "flags override the config",
			config: "image: /nope.img\nfields: [short]\n",
			args:   []string{"--image", "/sd.img", "ls", "--fields", "type,long"},
			want:   []string{"d My Photos", "- README.TXT"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, testingFs(t, tt.config), tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, lines(out))
		})
	}
}

func TestLs_UTF8Name(t *testing.T) {
	im := fattest.New(fattest.Options{})
	im.Root().File("Café.txt", "CAFE.TXT", []byte("au lait"))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sd.img", im.Bytes(), 0644))

	out, err := run(t, fs, "--image", "/sd.img", "ls", "--fields", "short,long")
	require.NoError(t, err)
	require.Equal(t, []string{"CAFE.TXT Café.txt"}, lines(out))

	// The entry is still found by its printable name.
	out, err = run(t, fs, "--image", "/sd.img", "cat", "Caf?.txt")
	require.NoError(t, err)
	require.Equal(t, "au lait", out)
}

func TestLs_Errors(t *testing.T) {
	fs := testingFs(t, "")

	_, err := run(t, fs, "ls")
	require.Error(t, err)

	_, err = run(t, fs, "--image", "/sd.img", "ls", "Missing")
	require.ErrorIs(t, err, fatnav.ErrDirNotFound)

	_, err = run(t, fs, "--image", "/sd.img", "ls", "README.TXT")
	require.ErrorIs(t, err, fatnav.ErrDirNotFound)

	_, err = run(t, fs, "--image", "/sd.img", "ls", "--fields", "bogus")
	require.Error(t, err)

	_, err = run(t, fs, "--image", "/sd.img", "--log-level", "loud", "ls")
	require.Error(t, err)
}

func TestCat(t *testing.T) {
	fs := testingFs(t, "")

	out, err := run(t, fs, "--image", "/sd.img", "cat", "My Photos", "beach.jpg")
	require.NoError(t, err)
	require.Equal(t, "sand", out)

	out, err = run(t, fs, "--image", "/sd.img", "cat", "README.TXT")
	require.NoError(t, err)
	require.Equal(t, "hello", out)

	_, err = run(t, fs, "--image", "/sd.img", "cat", "My Photos", "nope.jpg")
	require.ErrorIs(t, err, fatnav.ErrFileNotFound)

	_, err = run(t, fs, "--image", "/sd.img", "cat", "My Photos")
	require.ErrorIs(t, err, fatnav.ErrFileNotFound)
}

func TestInfo(t *testing.T) {
	out, err := run(t, testingFs(t, ""), "--image", "/sd.img", "info")
	require.NoError(t, err)

	got := lines(out)
	require.Contains(t, got, "Boot sector 63")
	require.Contains(t, got, "Root cluster 2")
	require.Contains(t, got, "Sectors per cluster 1")
	require.Contains(t, got, "Type FAT32")
}

func TestInfo_NotFAT32(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/zero.img", make([]byte, 4096), 0644))

	_, err := run(t, fs, "--image", "/zero.img", "info")
	require.Error(t, err)
}
