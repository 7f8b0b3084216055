// Test Zwrap
package zwrap_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/sw3d/pdb/zwrap"
)

// both of these are "andrewsays", but the first is compressed. Write them to a file
// and check that the file opener does the right thing.
type gztest struct {
	data    []byte
	gzipped bool
}

var gztests = []gztest{
	{[]byte{
		0x1f, 0x8b, 0x08, 0x00, 0xb6, 0xf1, 0xa0, 0x5b, 0x00, 0x03,
		0x4b, 0xcc, 0x4b, 0x29, 0x4a, 0x2d, 0x2f, 0x4e, 0xac, 0x2c,
		0xce, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x44, 0xa8, 0x66,
		0x89, 0x0f, 0x00, 0x00, 0x00},
		true,
	},
	{[]byte{
		0x61, 0x6e, 0x64, 0x72, 0x65, 0x77, 0x73, 0x61,
		0x79, 0x73, 0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x0a},
		false,
	},
}

// writeToTmp writes a byte slice to a temporary file and returns
// a file pointer.
func writeToTmp(t *testing.T, data []byte) *os.File {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "del_me_testing")
	if err := os.WriteFile(fname, data, 0644); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	return fp
}

func TestWrap(t *testing.T) {
	for _, x := range gztests {
		tmpfp := writeToTmp(t, x.data)
		tmpr, err := zwrap.Wrap(tmpfp)
		if err != nil {
			tmpfp.Close()
			if x.gzipped {
				t.Error("Fail on correctly gzipped file")
			}
			continue // It is not gzipped, so move on to next
		}
		if !x.gzipped { // But we should get one
			t.Error("Fail on not compressed file")
		}
		b, err := io.ReadAll(tmpr)
		if err != nil {
			t.Error(err)
		}
		if !strings.HasPrefix(string(b), "andrewsays") {
			t.Errorf("wrong string: %s", b)
		}
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

// Calling WrapMaybe should not fail since it guesses if the file
// is compressed or not.
func TestWrapMaybe(t *testing.T) {
	for _, x := range gztests {
		tmpr, err := zwrap.WrapMaybe(writeToTmp(t, x.data))
		if err != nil {
			t.Fatalf("Fail on file where compressed was %v: %v", x.gzipped, err)
		}
		if tmpr.Compressed() != x.gzipped {
			t.Errorf("compressed should be %v", x.gzipped)
		}
		b, err := io.ReadAll(tmpr)
		if err != nil {
			t.Error(err)
		}
		if !strings.HasPrefix(string(b), "andrewsays") {
			t.Errorf("wrong string: %s", b)
		}
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

// Files shorter than the magic number are not compressed.
func TestShort(t *testing.T) {
	for _, s := range []string{"", "a"} {
		tmpr, err := zwrap.WrapMaybe(io.NopCloser(strings.NewReader(s)))
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(tmpr)
		if string(b) != s || tmpr.Compressed() {
			t.Errorf("%q came back as %q", s, b)
		}
	}
	if zwrap.IsGzip(gztests[1].data) || !zwrap.IsGzip(gztests[0].data) {
		t.Error("IsGzip wrong")
	}
}
