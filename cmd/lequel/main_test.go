package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/lequel/pkg/lequel/report"
)

var fixtureDir = filepath.Join("..", "..", "pkg", "lequel", "loader", "testdata")

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestIdentifyArguments(t *testing.T) {
	out, err := runCLI(t, "", "--data-dir", fixtureDir, "identify", "the", "cat", "sat", "on", "the", "mat")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if strings.TrimSpace(out) != "Inglés (en)" {
		t.Errorf("output = %q, want %q", out, "Inglés (en)")
	}
}

func TestIdentifyStdin(t *testing.T) {
	out, err := runCLI(t, "el perro de la casa\r\nque come\r\n", "--data-dir", fixtureDir, "identify")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if strings.TrimSpace(out) != "Español (es)" {
		t.Errorf("output = %q", out)
	}
}

func TestIdentifyFileAndHTML(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	body := `<html><body><p>les enfants de la rue</p><script>the the the</script></body></html>`
	if err := os.WriteFile(page, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "", "--data-dir", fixtureDir, "identify", "--file", page)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if strings.TrimSpace(out) != "Francés (fr)" {
		t.Errorf("output = %q", out)
	}

	if _, err := runCLI(t, "", "--data-dir", fixtureDir, "identify", "--file", page, "extra"); err == nil {
		t.Error("expected error when mixing --file and arguments")
	}
}

func TestIdentifyJSONAndScores(t *testing.T) {
	out, err := runCLI(t, "", "--data-dir", fixtureDir, "identify", "--json", "--top", "2", "the cat")
	if err != nil {
		t.Fatalf("identify --json: %v", err)
	}
	var r report.Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if r.Code != "en" || len(r.Scores) != 2 || r.ID == "" {
		t.Errorf("unexpected report %+v", r)
	}

	out, err = runCLI(t, "", "--data-dir", fixtureDir, "identify", "--scores", "the cat")
	if err != nil {
		t.Fatalf("identify --scores: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected verdict plus 3 score rows, got %q", out)
	}
	if !strings.HasPrefix(lines[1], "1\ten\tInglés\t") {
		t.Errorf("first score row = %q", lines[1])
	}
}

func TestIdentifyMissingCatalog(t *testing.T) {
	if _, err := runCLI(t, "", "--data-dir", t.TempDir(), "identify", "hola"); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestTrainThenIdentify(t *testing.T) {
	dir := t.TempDir()
	corpora := map[string]string{
		"en": "the cat and the dog went to the park and then they came home\n",
		"es": "el gato y el perro fueron al parque y luego volvieron a la casa\n",
	}
	names := map[string]string{"en": "Inglés", "es": "Español"}

	for _, code := range []string{"en", "es"} {
		corpus := filepath.Join(dir, code+".txt")
		if err := os.WriteFile(corpus, []byte(corpora[code]), 0o644); err != nil {
			t.Fatal(err)
		}
		out, err := runCLI(t, "", "--data-dir", dir, "train", "--lang", code, "--name", names[code], "--input", corpus)
		if err != nil {
			t.Fatalf("train %s: %v", code, err)
		}
		if !strings.HasPrefix(out, code+": ") {
			t.Errorf("train output = %q", out)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "trigrams", "es.csv")); err != nil {
		t.Fatalf("trigram table not written: %v", err)
	}

	out, err := runCLI(t, "", "--data-dir", dir, "identify", "el perro y la casa")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if strings.TrimSpace(out) != "Español (es)" {
		t.Errorf("output = %q", out)
	}
}

func TestTrainRequiresLang(t *testing.T) {
	if _, err := runCLI(t, "some text", "--data-dir", t.TempDir(), "train"); err == nil {
		t.Fatal("expected error without --lang")
	}
}

func TestImportAndLanguagesFromDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "profiles.db")

	out, err := runCLI(t, "", "--data-dir", fixtureDir, "--db", db, "import")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.HasPrefix(out, "imported 3 languages") {
		t.Errorf("import output = %q", out)
	}

	out, err = runCLI(t, "", "--data-dir", t.TempDir(), "--db", db, "languages")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	want := "en\tInglés\t12\nes\tEspañol\t12\nfr\tFrancés\t12\n"
	if out != want {
		t.Errorf("languages output = %q, want %q", out, want)
	}

	out, err = runCLI(t, "", "--data-dir", t.TempDir(), "--db", db, "identify", "les enfants de la rue")
	if err != nil {
		t.Fatalf("identify from db: %v", err)
	}
	if strings.TrimSpace(out) != "Francés (fr)" {
		t.Errorf("identify output = %q", out)
	}
}

func TestImportRequiresDatabase(t *testing.T) {
	if _, err := runCLI(t, "", "--data-dir", fixtureDir, "import"); err == nil {
		t.Fatal("expected error without --db")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lequel.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIdentifyUnlimitedFileBytes(t *testing.T) {
	cfg := writeConfig(t, "max_file_bytes: 0\n")
	dir := t.TempDir()
	sentence := "les enfants de la rue"

	plain := filepath.Join(dir, "page.txt")
	page := filepath.Join(dir, "page.html")
	if err := os.WriteFile(plain, []byte(sentence), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(page, []byte("<p>"+sentence+"</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "text file", args: []string{"identify", "--file", plain}},
		{name: "html file", args: []string{"identify", "--file", page}},
		{name: "html stdin", stdin: "<p>" + sentence + "</p>", args: []string{"identify", "--html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "--data-dir", fixtureDir}, tt.args...)
			out, err := runCLI(t, tt.stdin, args...)
			if err != nil {
				t.Fatalf("identify: %v", err)
			}
			if strings.TrimSpace(out) != "Francés (fr)" {
				t.Errorf("output = %q, want %q", out, "Francés (fr)")
			}
		})
	}
}

func TestTrainNormalizesLikeIdentify(t *testing.T) {
	cfg := writeConfig(t, "normalize_nfc: true\n")
	dir := t.TempDir()
	decomposed := "e\u0301e\u0301e\u0301"

	if _, err := runCLI(t, decomposed, "--config", cfg, "--data-dir", dir, "train", "--lang", "xx", "--name", "Prueba"); err != nil {
		t.Fatalf("train: %v", err)
	}

	out, err := runCLI(t, "", "--config", cfg, "--data-dir", dir, "identify", "--json", decomposed)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	var r report.Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if r.Code != "xx" || len(r.Scores) != 1 || r.Scores[0].Similarity < 0.999 {
		t.Errorf("training text scored %+v against itself, want similarity 1", r)
	}
}

func TestIdentifyUnnamedLanguage(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, "das ist ein haus", "--data-dir", dir, "train", "--lang", "de"); err != nil {
		t.Fatalf("train: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "languagecode_names_es.csv"), []byte("\"de\",\"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		config string
		want   string
	}{
		{name: "self names", config: "self_names: true\n", want: "Deutsch (de)"},
		{name: "unknown label", config: "self_names: false\n", want: "Desconocido (de)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, tt.config)
			out, err := runCLI(t, "", "--config", cfg, "--data-dir", dir, "identify", "ein haus")
			if err != nil {
				t.Fatalf("identify: %v", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}
