// Package filetest provides the helpers for golden-file tests: source files
// in a directory compared with their expected output, and txtar archives
// bundling an input with its expected output.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"golang.org/x/tools/txtar"
)

var testUpdateAllTests = flag.Bool("test.update-all-tests", false, "If set, sets all test.update-*-tests.")

// SourceFiles returns the list of source files in dir corresponding to the
// specified extension.
func SourceFiles(t *testing.T, dir, ext string) []os.FileInfo {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	res := make([]os.FileInfo, 0, len(dents))
	for _, dent := range dents {
		if !dent.Type().IsRegular() {
			continue
		}
		if ext != "" && filepath.Ext(dent.Name()) != ext {
			continue
		}
		fi, err := dent.Info()
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, fi)
	}
	return res
}

// DiffOutput validates that output is the same as the expected result in the
// corresponding golden file. If updateFlag is true, it updates the golden file
// with output instead.
func DiffOutput(t *testing.T, fi os.FileInfo, output, resultDir string, updateFlag *bool) {
	t.Helper()
	DiffCustom(t, fi, "output", ".want", output, resultDir, updateFlag)
}

// DiffErrors validates that the errors output is the same as the expected
// result in the corresponding golden file. If updateFlag is true, it updates
// the golden file with output instead. A missing golden file means no error
// is expected.
func DiffErrors(t *testing.T, fi os.FileInfo, output, resultDir string, updateFlag *bool) {
	t.Helper()
	DiffCustom(t, fi, "errors", ".err", output, resultDir, updateFlag)
}

// DiffCustom is the general version of DiffOutput and DiffErrors, to check
// for any other kind of output file. Just provide a label to use in the
// error logs and the file extension to use for the golden file (including
// the leading dot) in addition to the same arguments as for DiffOutput.
func DiffCustom(t *testing.T, fi os.FileInfo, label, ext, output, resultDir string, updateFlag *bool) {
	t.Helper()

	goldFile := filepath.Join(resultDir, fi.Name()+ext)
	if update(updateFlag) {
		if output == "" {
			// do not leave empty golden files around
			if err := os.Remove(goldFile); err != nil && !os.IsNotExist(err) {
				t.Fatal(err)
			}
			return
		}
		if err := os.WriteFile(goldFile, []byte(output), 0600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	Diff(t, label, string(wantb), output)
}

// Diff reports a test error with the line diff of want and got if they are
// different.
func Diff(t *testing.T, label, want, got string) {
	t.Helper()

	if testing.Verbose() {
		t.Logf("got %s:\n%s\n", label, got)
	}
	if patch := diff.Diff(want, got); patch != "" {
		if testing.Verbose() {
			t.Logf("want %s:\n%s\n", label, want)
		}
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}

// Archives returns the paths of the txtar archives in dir.
func Archives(t *testing.T, dir string) []string {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	return files
}

// DiffArchive validates that output is the same as the content of the file
// name in the archive ar, loaded from path. If updateFlag is true, it
// updates that file of the archive with output instead.
func DiffArchive(t *testing.T, path string, ar *txtar.Archive, name, output string, updateFlag *bool) {
	t.Helper()

	if update(updateFlag) {
		SetArchiveFile(ar, name, output)
		if err := os.WriteFile(path, txtar.Format(ar), 0600); err != nil {
			t.Fatal(err)
		}
		return
	}
	want, _ := ArchiveFile(ar, name)
	Diff(t, name, want, output)
}

// ArchiveFile returns the content of the file name in the archive, and
// whether it exists.
func ArchiveFile(ar *txtar.Archive, name string) (string, bool) {
	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}

// SetArchiveFile sets the content of the file name in the archive, adding
// it if it does not exist.
func SetArchiveFile(ar *txtar.Archive, name, data string) {
	for i, f := range ar.Files {
		if f.Name == name {
			ar.Files[i].Data = []byte(data)
			return
		}
	}
	ar.Files = append(ar.Files, txtar.File{Name: name, Data: []byte(data)})
}

func update(updateFlag *bool) bool {
	return (updateFlag != nil && *updateFlag) || *testUpdateAllTests
}
