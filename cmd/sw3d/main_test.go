package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var threeLetter = map[byte]string{
	'A': "ALA", 'G': "GLY", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'R': "ARG", 'V': "VAL", 'W': "TRP",
}

// wrtHelix writes the CA atoms of an ideal helix with sequence seq
// to a PDB file. If brk > 0, the chain is moved away after residue brk.
func wrtHelix(t *testing.T, name, seq string, brk int) string {
	t.Helper()
	var b strings.Builder
	for i := range seq {
		a := float64(i) * 100 * math.Pi / 180
		x, y, z := 2.3*math.Cos(a), 2.3*math.Sin(a), 1.5*float64(i)
		if brk > 0 && i > brk {
			z += 10
		}
		fmt.Fprintf(&b, "ATOM  %5d  CA  %3s A%4d    %8.3f%8.3f%8.3f  1.00  0.00           C\n",
			i+1, threeLetter[seq[i]], i+1, x, y, z)
	}
	b.WriteString("END\n")
	fname := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fname, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestText(t *testing.T) {
	f1 := wrtHelix(t, "a.pdb", "MKVLAAGW", 0)
	f2 := wrtHelix(t, "b.pdb", "MRILAGW", 0)
	var stdout, stderr bytes.Buffer
	if r := mymain([]string{f1, f2}, &stdout, &stderr); r != ExitSuccess {
		t.Fatalf("exit %d, stderr %s", r, stderr.String())
	}
	out := stdout.String()
	for _, s := range []string{"score 27.0", "MRIL-AGW", "rmsd "} {
		if !strings.Contains(out, s) {
			t.Errorf("no %q in\n%s", s, out)
		}
	}
	if strings.Contains(out, "rmsd -") {
		t.Errorf("should have an rmsd\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	f1 := wrtHelix(t, "a.pdb", "MKVLAAGW", 0)
	f2 := wrtHelix(t, "b.pdb", "MRILAGW", 0)
	var stdout, stderr bytes.Buffer
	args := []string{"-json", "-c1", "A", "-c2", "A", f1, f2}
	if r := mymain(args, &stdout, &stderr); r != ExitSuccess {
		t.Fatalf("exit %d, stderr %s", r, stderr.String())
	}
	var got map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatal(err, stdout.String())
	}
	if got["score"] != 27.0 || got["target"] != "MRIL-AGW" || got["symbols"] != "|::| |||" {
		t.Errorf("got %v", got)
	}
	for _, k := range []string{"rmsd", "transform", "align_se1", "identity", "algorithm"} {
		if _, ok := got[k]; !ok {
			t.Errorf("no %s in %s", k, stdout.String())
		}
	}
}

func TestBreakLogged(t *testing.T) {
	f1 := wrtHelix(t, "a.pdb", "MKVLAAGW", 3)
	logFile := filepath.Join(t.TempDir(), "log")
	var stdout, stderr bytes.Buffer
	if r := mymain([]string{"-l", logFile, f1, f1}, &stdout, &stderr); r != ExitSuccess {
		t.Fatalf("exit %d, stderr %s", r, stderr.String())
	}
	b, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "too far apart after residue 4") {
		t.Errorf("log has\n%s", b)
	}
	if !strings.Contains(stdout.String(), "identity 1.000") {
		t.Errorf("self alignment gave\n%s", stdout.String())
	}
}

func TestFailures(t *testing.T) {
	f1 := wrtHelix(t, "a.pdb", "MKVLAAGW", 0)
	missing := filepath.Join(t.TempDir(), "nothing.pdb")
	var tests = []struct {
		name string
		args []string
		want int
	}{
		{"one arg", []string{f1}, ExitUsageError},
		{"three args", []string{f1, f1, f1}, ExitUsageError},
		{"help", []string{"-h"}, ExitUsageError},
		{"bad flag", []string{"-q", f1, f1}, ExitUsageError},
		{"negative penalty", []string{"-o", "-1", f1, f1}, ExitUsageError},
		{"no matrix", []string{"-m", missing, f1, f1}, ExitUsageError},
		{"no file", []string{f1, missing}, ExitFailure},
		{"no chain", []string{"-c2", "Q", f1, f1}, ExitFailure},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		if r := mymain(tt.args, &stdout, &stderr); r != tt.want {
			t.Errorf("%s: exit %d wanted %d, stderr %s", tt.name, r, tt.want, stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("%s: wrote %s", tt.name, stdout.String())
		}
	}
}
