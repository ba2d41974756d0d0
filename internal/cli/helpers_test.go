package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/airdb/internal/testutil"
)

// seededDB returns an airport database holding two continents, one country
// and one region.
func seededDB(t *testing.T) string {
	t.Helper()
	path := testutil.NewAirportDB(t)
	testutil.Exec(t, path, `INSERT INTO continent (continent_id, continent_code, name) VALUES (1, 'AS', 'Asia'), (2, 'EU', 'Europe')`)
	testutil.Exec(t, path, `INSERT INTO country (country_id, country_code, name, continent_id) VALUES (10, 'JP', 'Japan', 1)`)
	testutil.Exec(t, path, `INSERT INTO region (region_id, region_code, local_code, name, continent_id, country_id) VALUES (100, 'JP-13', '13', 'Tokyo', 1, 10)`)
	return path
}

// execute runs the root command with args and returns stdout and the error.
// Log output is discarded.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
