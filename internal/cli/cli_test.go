package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestInferCommand(t *testing.T) {
	dir := t.TempDir()
	pep := write(t, dir, "peptides.txt", "PEPTIDE\n")
	fa := write(t, dir, "db.fasta", ">P1\nMKPEPTIDEARK\n")

	var out, errOut bytes.Buffer
	code := Execute(context.Background(), []string{"infer", pep, fa}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "PEPTIDE\tP1\t1") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestAnnotateCommand(t *testing.T) {
	dir := t.TempDir()
	pep := write(t, dir, "peptides.txt", "PEPTIDE\n")
	fa := write(t, dir, "db.fasta", ">P1\nMKPEPTIDEARK\n")

	var out, errOut bytes.Buffer
	code := Execute(context.Background(), []string{"annotate", pep, fa, "--no-header"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if got := strings.TrimSpace(out.String()); got != "PEPTIDE\tP1\t2\t9\t7" {
		t.Errorf("stdout = %q", got)
	}
}

func TestBackendsCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), []string{"backends"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "reference") {
		t.Errorf("backends = %q", out.String())
	}
}

func TestMissingArgsFails(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Execute(context.Background(), []string{"infer", "only-one"}, &out, &errOut); code == 0 {
		t.Fatal("one positional accepted")
	}
}

func TestExplicitBackendFlag(t *testing.T) {
	dir := t.TempDir()
	pep := write(t, dir, "peptides.txt", "PEPTIDE\n")
	fa := write(t, dir, "db.fasta", ">P1\nMKPEPTIDEARK\n")

	var out, errOut bytes.Buffer
	code := Execute(context.Background(),
		[]string{"infer", pep, fa, "--backend", "reference"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}

	out.Reset()
	code = Execute(context.Background(),
		[]string{"infer", pep, fa, "--backend", "bogus"}, &out, &errOut)
	if code == 0 {
		t.Fatal("bogus backend accepted")
	}
}
