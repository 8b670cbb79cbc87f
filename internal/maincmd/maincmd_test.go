package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/smog-lang/smog/internal/filetest"
	"github.com/smog-lang/smog/internal/maincmd"
	"github.com/stretchr/testify/require"
)

// TestTokenizeArchiveFixtures runs the tokenize subcommand against every
// .txtar fixture in testdata/, each bundling an input script and the
// substrings its token dump must contain.
func TestTokenizeArchiveFixtures(t *testing.T) {
	for _, tc := range filetest.ArchiveCases(t, "testdata") {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "input.smog")
			require.NoError(t, os.WriteFile(path, tc.Input, 0600))

			var out, errOut bytes.Buffer
			c := &maincmd.Cmd{}
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}
			require.NoError(t, c.Tokenize(context.Background(), stdio, []string{path}))

			for _, want := range strings.Split(strings.TrimSpace(string(tc.Files["want.txt"])), "\n") {
				require.Contains(t, out.String(), want)
			}
		})
	}
}
