package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	// Prompting commands must hit EOF, never the test process stdin.
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRunCLI(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: kanbo %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
	}
	return env
}

func TestBoardsCreateSeedsDefaultColumns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	env := mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "wrk")
	data, _ := env["data"].(map[string]any)
	if data["name"] != "Work" || data["projectIdPrefix"] != "WRK" {
		t.Fatalf("unexpected board payload: %#v", data)
	}
	cols, _ := data["columns"].([]any)
	if len(cols) != 3 {
		t.Fatalf("expected 3 seeded columns; got %d", len(cols))
	}
	wantTitles := []string{"To Do", "In Progress", "Done"}
	for i, c := range cols {
		col, _ := c.(map[string]any)
		if col["title"] != wantTitles[i] {
			t.Fatalf("column %d: got title %v want %v", i, col["title"], wantTitles[i])
		}
	}

	list := mustRunCLI(t, "--dir", dir, "boards", "list")
	rows, _ := list["data"].([]any)
	if len(rows) != 1 {
		t.Fatalf("expected 1 board; got %#v", list["data"])
	}
	row, _ := rows[0].(map[string]any)
	if row["current"] != true {
		t.Fatalf("expected the first board to become current; got %#v", row)
	}
}

func TestProjectsDisplayIDsAndDirectShow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")

	p1 := mustRunCLI(t, "--dir", dir, "projects", "create", "--column", "To Do")
	p2 := mustRunCLI(t, "--dir", dir, "projects", "create", "--column", "To Do")
	id1, _ := p1["data"].(map[string]any)["projectId"].(string)
	id2, _ := p2["data"].(map[string]any)["projectId"].(string)
	if id1 != "WRK-001" || id2 != "WRK-002" {
		t.Fatalf("display ids: got %q, %q want WRK-001, WRK-002", id1, id2)
	}

	mustRunCLI(t, "--dir", dir, "projects", "update", "WRK-001", "--name", "Ship the release")

	// A second board becomes current; the direct lookup must still find
	// the card on the first one.
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Home", "--prefix", "HOM")

	show := mustRunCLI(t, "--dir", dir, "projects", "show", "wrk-001")
	data, _ := show["data"].(map[string]any)
	if data["projectName"] != "Ship the release" {
		t.Fatalf("show payload: %#v", data)
	}
	boardMeta, _ := show["board"].(map[string]any)
	if boardMeta["name"] != "Work" {
		t.Fatalf("expected the store-wide lookup to report board Work; got %#v", boardMeta)
	}
}

func TestProjectsMoveLogsActivity(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")
	mustRunCLI(t, "--dir", dir, "projects", "create", "--column", "To Do")

	mv := mustRunCLI(t, "--dir", dir, "projects", "move", "WRK-001", "--to", "In Progress")
	data, _ := mv["data"].(map[string]any)
	if data["projectId"] != "WRK-001" || data["from"] != "To Do" || data["to"] != "In Progress" {
		t.Fatalf("move payload: %#v", data)
	}

	act := mustRunCLI(t, "--dir", dir, "activity", "WRK-001")
	entries, _ := act["data"].([]any)
	if len(entries) != 2 {
		t.Fatalf("expected 2 activity entries (moved, created); got %#v", act["data"])
	}
	first, _ := entries[0].(map[string]any)
	if first["action"] != "moved" {
		t.Fatalf("newest activity: got %v want moved", first["action"])
	}
	if first["description"] != `Moved from "To Do" to "In Progress"` {
		t.Fatalf("move description: %v", first["description"])
	}
	if total, _ := act["total"].(float64); total != 2 {
		t.Fatalf("total: got %v want 2", act["total"])
	}
}

func TestLinksRejectNonHTTPURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")
	mustRunCLI(t, "--dir", dir, "projects", "create", "--column", "To Do")

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "links", "add", "WRK-001", "--url", "ftp://example.com/spec", "--title", "Spec"})
	if err != nil {
		t.Fatalf("links add returned error: %v\nstderr:\n%s", err, string(stderr))
	}
	if !strings.Contains(string(stderr), "Invalid link URL") {
		t.Fatalf("expected a rejection notice on stderr; got:\n%s", string(stderr))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\nstdout:\n%s", err, string(stdout))
	}
	if env["data"] != nil {
		t.Fatalf("expected null data for a rejected link; got %#v", env["data"])
	}

	list := mustRunCLI(t, "--dir", dir, "links", "list", "WRK-001")
	if links, _ := list["data"].([]any); len(links) != 0 {
		t.Fatalf("rejected link must not be stored; got %#v", list["data"])
	}

	ok := mustRunCLI(t, "--dir", dir, "links", "add", "WRK-001", "--url", "https://example.com/spec")
	link, _ := ok["data"].(map[string]any)
	if link["url"] != "https://example.com/spec" || link["title"] != "https://example.com/spec" {
		t.Fatalf("expected the title to default to the URL; got %#v", link)
	}
}

func TestDeletePromptDefaultsToNo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")
	mustRunCLI(t, "--dir", dir, "projects", "create", "--column", "To Do")

	// No --yes and no terminal input: the prompt reads EOF and declines.
	declined := mustRunCLI(t, "--dir", dir, "projects", "delete", "WRK-001")
	if d, _ := declined["data"].(map[string]any); d["deleted"] != false {
		t.Fatalf("expected deleted=false without confirmation; got %#v", declined["data"])
	}

	gone := mustRunCLI(t, "--dir", dir, "projects", "delete", "WRK-001", "--yes")
	if d, _ := gone["data"].(map[string]any); d["deleted"] != true {
		t.Fatalf("expected deleted=true with --yes; got %#v", gone["data"])
	}

	list := mustRunCLI(t, "--dir", dir, "projects", "list")
	if rows, _ := list["data"].([]any); len(rows) != 0 {
		t.Fatalf("expected no projects left; got %#v", list["data"])
	}
}

func TestColumnsReorderViaCLI(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")
	mustRunCLI(t, "--dir", dir, "columns", "add", "Review")

	env := mustRunCLI(t, "--dir", dir, "columns", "reorder", "--from", "3", "--to", "0")
	rows, _ := env["data"].([]any)
	var got []string
	for _, r := range rows {
		row, _ := r.(map[string]any)
		got = append(got, row["title"].(string))
	}
	want := []string{"Review", "To Do", "In Progress", "Done"}
	if len(got) != len(want) {
		t.Fatalf("columns: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("columns: got %v want %v", got, want)
		}
	}
	for i, r := range rows {
		row, _ := r.(map[string]any)
		if order, _ := row["order"].(float64); int(order) != i {
			t.Fatalf("column %d: order %v out of step", i, row["order"])
		}
	}
}

func TestImportExportRoundTripAcrossStores(t *testing.T) {
	t.Parallel()

	dir1 := t.TempDir()
	dir2 := t.TempDir()

	mustRunCLI(t, "--dir", dir1, "boards", "create", "--name", "Work", "--prefix", "WRK")
	mustRunCLI(t, "--dir", dir1, "projects", "create", "--column", "To Do")
	mustRunCLI(t, "--dir", dir1, "projects", "update", "WRK-001", "--name", "Ship it", "--description", "All the steps")
	mustRunCLI(t, "--dir", dir1, "links", "add", "WRK-001", "--url", "https://example.com/plan", "--title", "Plan")
	mustRunCLI(t, "--dir", dir1, "comments", "add", "WRK-001", "--body", "Kickoff done")

	snapPath := filepath.Join(t.TempDir(), "snap.json")
	exp := mustRunCLI(t, "--dir", dir1, "export", "json", "--out", snapPath)
	if d, _ := exp["data"].(map[string]any); d["file"] != snapPath {
		t.Fatalf("export payload: %#v", exp["data"])
	}

	// Importing into an empty store never prompts.
	imp := mustRunCLI(t, "--dir", dir2, "import", snapPath)
	d, _ := imp["data"].(map[string]any)
	if d["imported"] != true {
		t.Fatalf("expected import into empty store to proceed; got %#v", imp["data"])
	}
	if boards, _ := d["boards"].(float64); boards != 1 {
		t.Fatalf("imported boards: got %v want 1", d["boards"])
	}

	// Importing over existing boards without --yes reads EOF and declines.
	imp2 := mustRunCLI(t, "--dir", dir2, "import", snapPath)
	if d, _ := imp2["data"].(map[string]any); d["imported"] != false {
		t.Fatalf("expected a declined import; got %#v", imp2["data"])
	}
	imp3 := mustRunCLI(t, "--dir", dir2, "import", snapPath, "--yes")
	if d, _ := imp3["data"].(map[string]any); d["imported"] != true {
		t.Fatalf("expected a forced import; got %#v", imp3["data"])
	}

	// The imported card is indistinguishable from the original, ids,
	// timestamps and activity included.
	out1, _, err := runCLI(t, []string{"--dir", dir1, "projects", "show", "WRK-001"})
	if err != nil {
		t.Fatalf("show on source store: %v", err)
	}
	out2, _, err := runCLI(t, []string{"--dir", dir2, "projects", "show", "WRK-001"})
	if err != nil {
		t.Fatalf("show on imported store: %v", err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatalf("imported card differs from the original\nsource:\n%s\nimported:\n%s", out1, out2)
	}

	// Stdout export emits the snapshot itself, not the envelope.
	raw, _, err := runCLI(t, []string{"--dir", dir1, "export", "json", "--out", "-"})
	if err != nil {
		t.Fatalf("export to stdout: %v", err)
	}
	var snap map[string]any
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("stdout export is not valid JSON: %v\n%s", err, raw)
	}
	if boards, _ := snap["boards"].([]any); len(boards) != 1 {
		t.Fatalf("stdout snapshot boards: %#v", snap["boards"])
	}
	if snap["version"] != "1.0" {
		t.Fatalf("snapshot version: %v", snap["version"])
	}
}

func TestStatusReportsHealthyStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ini := mustRunCLI(t, "--dir", dir, "init")
	d, _ := ini["data"].(map[string]any)
	if id, _ := d["storeId"].(string); id == "" {
		t.Fatalf("init payload missing storeId: %#v", ini["data"])
	}
	if d["boards"] != float64(0) {
		t.Fatalf("init payload: %#v", ini["data"])
	}

	env := mustRunCLI(t, "--dir", dir, "status")
	data, _ := env["data"].(map[string]any)
	if data["storageAvailable"] != true {
		t.Fatalf("expected a healthy store; got %#v", data)
	}
	if data["dir"] != dir {
		t.Fatalf("status dir: got %v want %v", data["dir"], dir)
	}
	if data["boards"] != float64(0) || data["projects"] != float64(0) {
		t.Fatalf("fresh store counts: %#v", data)
	}
	if data["version"] != "1.0" {
		t.Fatalf("state version: got %v want 1.0", data["version"])
	}
}

func TestStatusVerifyReportsCleanTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")
	mustRunCLI(t, "--dir", dir, "projects", "create", "--column", "To Do")

	env := mustRunCLI(t, "--dir", dir, "status", "--verify")
	data, _ := env["data"].(map[string]any)
	if data["healthy"] != true {
		t.Fatalf("expected healthy tree; got %#v", data)
	}
	issues, ok := data["issues"].([]any)
	if !ok {
		t.Fatalf("issues missing from payload: %#v", data)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues; got %#v", issues)
	}
}

func TestExportMarkdownToStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")
	mustRunCLI(t, "--dir", dir, "projects", "create", "--column", "To Do")
	mustRunCLI(t, "--dir", dir, "projects", "update", "WRK-001", "--name", "Ship the release")

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "export", "markdown", "--out", "-"})
	if err != nil {
		t.Fatalf("export markdown: %v\nstderr:\n%s", err, string(stderr))
	}
	out := string(stdout)
	for _, want := range []string{"# Work [WRK]", "## To Do (1)", "### WRK-001 · Ship the release"} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestImportBacksUpReplacedStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustRunCLI(t, "--dir", dir, "boards", "create", "--name", "Work", "--prefix", "WRK")

	snap := filepath.Join(t.TempDir(), "snap.json")
	mustRunCLI(t, "--dir", dir, "export", "json", "--out", snap)

	env := mustRunCLI(t, "--dir", dir, "import", snap, "--yes")
	data, _ := env["data"].(map[string]any)
	if data["imported"] != true {
		t.Fatalf("import payload: %#v", data)
	}
	backup, _ := data["backup"].(string)
	if backup == "" {
		t.Fatalf("expected a backup path in %#v", data)
	}
	if !strings.HasPrefix(backup, filepath.Join(dir, "backups")) {
		t.Fatalf("backup outside store dir: %q", backup)
	}
	if st, err := os.Stat(backup); err != nil || st.Size() == 0 {
		t.Fatalf("backup file missing or empty: %v", err)
	}
}

func TestDocsListsTopicsAndPrintsRawMarkdown(t *testing.T) {
	t.Parallel()

	env := mustRunCLI(t, "docs")
	data, _ := env["data"].(map[string]any)
	topics, _ := data["topics"].([]any)
	found := false
	for _, tp := range topics {
		if tp == "tui" {
			found = true
		}
	}
	if !found {
		t.Fatalf("tui topic missing from %#v", topics)
	}

	stdout, _, err := runCLI(t, []string{"docs", "tui", "--raw"})
	if err != nil {
		t.Fatalf("docs tui --raw: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# The interactive board") {
		t.Fatalf("unexpected raw docs output: %.60q", string(stdout))
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
}
